package model

import "time"

// User is an account that can own locations, review sakes and heart them.
// Hearts is a set of sake record IDs; membership is toggled atomically at
// the store.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Hearts       []string  `json:"hearts"`
	Created      time.Time `json:"created"`
	PasswordHash string    `json:"-"`
}

// HasHearted reports whether the sake ID is in the user's heart set
func (u *User) HasHearted(sakeID string) bool {
	for _, id := range u.Hearts {
		if id == sakeID {
			return true
		}
	}
	return false
}

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// LoginRequest is the payload for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAccountRequest is the payload for editing account details
type UpdateAccountRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// AuthResponse carries the session token returned by register/login
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
