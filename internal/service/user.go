package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/chrisueda/sakewalk/internal/model"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 8

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByToken(ctx context.Context, token string) (*model.User, error)
	SetToken(ctx context.Context, userID, token string) error
	ClearToken(ctx context.Context, userID string) error
	UpdateAccount(ctx context.Context, userID, name, email string) (*model.User, error)
	ToggleHeart(ctx context.Context, userID, sakeID string) (*model.User, error)
}

// UserService handles accounts, sessions and the heart relation
type UserService struct {
	repo  UserRepository
	sakes SakeGetter
}

// UserServiceConfig holds configuration for the user service
type UserServiceConfig struct {
	Repo  UserRepository
	Sakes SakeGetter
}

// NewUserService creates a new user service
func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{repo: cfg.Repo, sakes: cfg.Sakes}
}

// Register creates an account and opens a session
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if req.Password != req.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.openSession(ctx, user)
}

// Login verifies credentials and opens a session
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, user)
}

// Logout invalidates the user's session token
func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.repo.ClearToken(ctx, userID)
}

// Authenticate resolves a bearer token to its user, or nil if unknown
func (s *UserService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.repo.GetByToken(ctx, token)
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateAccount edits name and email
func (s *UserService) UpdateAccount(ctx context.Context, userID string, req *model.UpdateAccountRequest) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := user.Name
	email := user.Email
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return nil, ErrEmailRequired
		}
		email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	return s.repo.UpdateAccount(ctx, userID, name, email)
}

// ToggleHeart flips membership of the sake in the user's heart set and
// returns the updated user. The flip itself is a single conditional update
// at the store, so concurrent toggles of the same sake by the same user
// serialize on the user document instead of racing a read-modify-write.
func (s *UserService) ToggleHeart(ctx context.Context, userID, sakeID string) (*model.User, error) {
	sake, err := s.sakes.GetByID(ctx, sakeID)
	if err != nil {
		return nil, err
	}
	if sake == nil {
		return nil, ErrSakeNotFound
	}

	user, err := s.repo.ToggleHeart(ctx, userID, sake.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) openSession(ctx context.Context, user *model.User) (*model.AuthResponse, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetToken(ctx, user.ID, token); err != nil {
		return nil, err
	}
	return &model.AuthResponse{Token: token, User: user}, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
