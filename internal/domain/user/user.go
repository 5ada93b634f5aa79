// Package user contains the user aggregate. Users own subscriptions and
// audit entries.
package user

import (
	"fmt"
	"time"
)

const (
	MaxUsernameLength = 80
	MinUsernameLength = 3
	MaxEmailLength    = 120
)

type User struct {
	id           uint
	username     string
	email        string
	passwordHash string
	createdAt    time.Time
}

// NewUser creates a user. passwordHash may be empty; credential hashing is
// the infrastructure layer's concern.
func NewUser(username, email, passwordHash string) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(username) < MinUsernameLength {
		return nil, fmt.Errorf("username must be at least %d characters", MinUsernameLength)
	}
	if len(username) > MaxUsernameLength {
		return nil, fmt.Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(email) > MaxEmailLength {
		return nil, fmt.Errorf("email must be at most %d characters", MaxEmailLength)
	}

	return &User{
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a user from persistence.
func Reconstruct(id uint, username, email, passwordHash string, createdAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	return &User{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) Email() string {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

// HasPassword reports whether credentials were set at registration time.
func (u *User) HasPassword() bool {
	return u.passwordHash != ""
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}
