package repository

import (
	"context"
	"errors"

	"github.com/chrisueda/sakewalk/internal/database"
	"github.com/chrisueda/sakewalk/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user with an empty heart set
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			email: $email,
			name: $name,
			password_hash: $password_hash,
			hearts: [],
			created: time::now()
		}
	`
	vars := map[string]interface{}{
		"email":         user.Email,
		"name":          user.Name,
		"password_hash": user.PasswordHash,
	}

	row, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return database.ErrDuplicate
		}
		return err
	}
	created, err := parseUser(row)
	if err != nil {
		return err
	}
	user.ID = created.ID
	user.Created = created.Created
	user.Hearts = created.Hearts
	return nil
}

// GetByID retrieves a user by record ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	row, err := r.db.QueryOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUser(row)
}

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := r.db.QueryOne(ctx, `SELECT * FROM user WHERE email = $email`, map[string]interface{}{"email": email})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUser(row)
}

// GetByToken retrieves a user by their current session token
func (r *UserRepository) GetByToken(ctx context.Context, token string) (*model.User, error) {
	row, err := r.db.QueryOne(ctx, `SELECT * FROM user WHERE token = $token`, map[string]interface{}{"token": token})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUser(row)
}

// SetToken stores the opaque session token on the user record
func (r *UserRepository) SetToken(ctx context.Context, userID, token string) error {
	return r.db.Execute(ctx,
		`UPDATE type::record($id) SET token = $token`,
		map[string]interface{}{"id": userID, "token": token})
}

// ClearToken removes the session token, logging the user out everywhere
func (r *UserRepository) ClearToken(ctx context.Context, userID string) error {
	return r.db.Execute(ctx,
		`UPDATE type::record($id) SET token = NONE`,
		map[string]interface{}{"id": userID})
}

// UpdateAccount changes name and email, returning the updated user
func (r *UserRepository) UpdateAccount(ctx context.Context, userID, name, email string) (*model.User, error) {
	query := `
		UPDATE type::record($id) SET name = $name, email = $email
		RETURN AFTER
	`
	row, err := r.db.QueryOne(ctx, query, map[string]interface{}{
		"id":    userID,
		"name":  name,
		"email": email,
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, database.ErrDuplicate
		}
		return nil, err
	}
	return parseUser(row)
}

// ToggleHeart flips membership of a sake ID in the user's heart set and
// returns the updated user. The decision and the write happen inside one
// UPDATE statement so concurrent toggles cannot both observe the same
// membership; SurrealDB's per-document atomicity makes this safe without a
// read-modify-write round trip in application code.
func (r *UserRepository) ToggleHeart(ctx context.Context, userID, sakeID string) (*model.User, error) {
	query := `
		UPDATE type::record($id) SET hearts =
			IF $sake INSIDE hearts THEN
				array::difference(hearts, [$sake])
			ELSE
				array::union(hearts, [$sake])
			END
		RETURN AFTER
	`
	row, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": userID, "sake": sakeID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUser(row)
}

func parseUser(row interface{}) (*model.User, error) {
	m, ok := asObject(row)
	if !ok {
		return nil, errors.New("unexpected user row format")
	}
	return &model.User{
		ID:           recordID(m["id"]),
		Email:        getString(m, "email"),
		Name:         getString(m, "name"),
		Hearts:       getStringSlice(m, "hearts"),
		Created:      getTime(m, "created"),
		PasswordHash: getString(m, "password_hash"),
	}, nil
}
