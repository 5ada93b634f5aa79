package subscription

import (
	"context"
	"time"
)

// Repository is the persistence port for subscriptions. Implementations
// return (nil, nil) when a record does not exist; use cases translate that
// into a not-found error.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	// GetByIDAndUserID scopes the lookup to the owning user. A subscription
	// owned by someone else is indistinguishable from a missing one.
	GetByIDAndUserID(ctx context.Context, id, userID uint) (*Subscription, error)
	// GetActiveByUserID returns active subscriptions ordered by next payment
	// date ascending.
	GetActiveByUserID(ctx context.Context, userID uint) ([]*Subscription, error)
	// GetUpcomingByUserID returns active subscriptions with a next payment
	// date in [from, to], ordered ascending.
	GetUpcomingByUserID(ctx context.Context, userID uint, from, to time.Time) ([]*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
}
