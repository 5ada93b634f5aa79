// Package dto defines the plain data structures the subscription use cases
// hand back to the transport layer.
package dto

// SubscriptionDTO is the wire representation of a subscription. Amount is a
// decimal string; dates are YYYY-MM-DD.
type SubscriptionDTO struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Amount          string `json:"amount"`
	Periodicity     string `json:"periodicity"`
	StartDate       string `json:"start_date"`
	NextPaymentDate string `json:"next_payment_date"`
	IsActive        bool   `json:"is_active"`
	CreatedAt       string `json:"created_at"`
}

// UpcomingPaymentDTO is one row of the upcoming-payments report.
type UpcomingPaymentDTO struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Amount          string `json:"amount"`
	NextPaymentDate string `json:"next_payment_date"`
	DaysUntil       int    `json:"days_until"`
}

// MonthlyPaymentDTO is one payment falling inside the summarized month.
type MonthlyPaymentDTO struct {
	Subscription string `json:"subscription"`
	Amount       string `json:"amount"`
	Date         string `json:"date"`
}
