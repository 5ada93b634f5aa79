// Package subscription contains the subscription aggregate: a recurring
// payment owned by a user, carrying its own next-payment-date schedule.
package subscription

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "subtrack/internal/domain/subscription/valueobjects"
)

// MaxNameLength bounds subscription names, counted in characters.
const MaxNameLength = 100

// Subscription is the aggregate root. A soft-deleted subscription stays in
// storage with isActive=false and is excluded from active queries.
type Subscription struct {
	id              uint
	userID          uint
	name            string
	amount          vo.Amount
	periodicity     vo.Periodicity
	startDate       time.Time
	nextPaymentDate time.Time
	isActive        bool
	createdAt       time.Time
	updatedAt       time.Time
}

// NewSubscription creates a subscription. The next payment date is
// initialized to the start date and the subscription starts active.
func NewSubscription(userID uint, name string, amount vo.Amount, periodicity vo.Periodicity, startDate time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	if !vo.ValidPeriodicities[periodicity] {
		return nil, vo.ErrInvalidPeriodicity
	}

	now := time.Now().UTC()
	return &Subscription{
		userID:          userID,
		name:            name,
		amount:          amount,
		periodicity:     periodicity,
		startDate:       startDate,
		nextPaymentDate: startDate,
		isActive:        true,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructParams carries persisted state back into the aggregate.
type ReconstructParams struct {
	ID              uint
	UserID          uint
	Name            string
	Amount          vo.Amount
	Periodicity     vo.Periodicity
	StartDate       time.Time
	NextPaymentDate time.Time
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Reconstruct rebuilds a subscription from persistence. Only the
// infrastructure layer should call this.
func Reconstruct(p ReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !vo.ValidPeriodicities[p.Periodicity] {
		return nil, fmt.Errorf("%w: %q", vo.ErrInvalidPeriodicity, p.Periodicity)
	}

	return &Subscription{
		id:              p.ID,
		userID:          p.UserID,
		name:            p.Name,
		amount:          p.Amount,
		periodicity:     p.Periodicity,
		startDate:       p.StartDate,
		nextPaymentDate: p.NextPaymentDate,
		isActive:        p.IsActive,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint {
	return s.id
}

func (s *Subscription) UserID() uint {
	return s.userID
}

func (s *Subscription) Name() string {
	return s.name
}

func (s *Subscription) Amount() vo.Amount {
	return s.amount
}

func (s *Subscription) Periodicity() vo.Periodicity {
	return s.periodicity
}

func (s *Subscription) StartDate() time.Time {
	return s.startDate
}

func (s *Subscription) NextPaymentDate() time.Time {
	return s.nextPaymentDate
}

func (s *Subscription) IsActive() bool {
	return s.isActive
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// Rename changes the subscription name.
func (s *Subscription) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	s.name = name
	s.touch()
	return nil
}

// ChangeAmount changes the subscription price.
func (s *Subscription) ChangeAmount(amount vo.Amount) {
	s.amount = amount
	s.touch()
}

// ChangePeriodicity changes the billing cadence. Future advancement uses the
// new cadence; the current next payment date is left as is.
func (s *Subscription) ChangePeriodicity(p vo.Periodicity) error {
	if !vo.ValidPeriodicities[p] {
		return vo.ErrInvalidPeriodicity
	}
	s.periodicity = p
	s.touch()
	return nil
}

// RescheduleNextPayment sets an explicit next payment date.
func (s *Subscription) RescheduleNextPayment(date time.Time) {
	s.nextPaymentDate = date
	s.touch()
}

// AdvanceNextPayment moves the next payment date forward by the fixed
// day offset of the current periodicity.
func (s *Subscription) AdvanceNextPayment() {
	s.nextPaymentDate = s.periodicity.NextDate(s.nextPaymentDate)
	s.touch()
}

// Deactivate soft-deletes the subscription. Returns false when it was
// already inactive, so callers can make the operation idempotent without
// emitting duplicate audit entries.
func (s *Subscription) Deactivate() bool {
	if !s.isActive {
		return false
	}
	s.isActive = false
	s.touch()
	return true
}

func (s *Subscription) touch() {
	s.updatedAt = time.Now().UTC()
}
