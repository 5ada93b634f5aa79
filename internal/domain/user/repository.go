package user

import "context"

// Repository is the persistence port for users. Implementations return
// (nil, nil) when no user matches.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
