package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionModel represents the database persistence model for
// subscriptions. Soft-deleted rows keep IsActive=false instead of a
// deleted_at column so history queries can still see them.
type SubscriptionModel struct {
	ID              uint            `gorm:"primarykey"`
	UserID          uint            `gorm:"not null;index:idx_user_subscription"`
	Name            string          `gorm:"not null;size:100"`
	Amount          decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Periodicity     string          `gorm:"not null;size:20"`
	StartDate       time.Time       `gorm:"not null"`
	NextPaymentDate time.Time       `gorm:"not null;index:idx_next_payment_date"`
	IsActive        bool            `gorm:"not null;default:true;index:idx_is_active"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
