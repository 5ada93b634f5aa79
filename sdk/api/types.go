// Package api provides a Go client for the subtrack HTTP API.
package api

// Credentials carries a registration or login payload.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token  string `json:"token"`
	UserID uint   `json:"user_id"`
}

// SubscriptionInput carries the fields of a create or update request. Nil
// fields are omitted, which the API treats as "leave unchanged" on update.
type SubscriptionInput struct {
	Name            *string `json:"name,omitempty"`
	Amount          *string `json:"amount,omitempty"`
	Periodicity     *string `json:"periodicity,omitempty"`
	StartDate       *string `json:"start_date,omitempty"`
	NextPaymentDate *string `json:"next_payment_date,omitempty"`
}

// Subscription is the wire representation of a subscription. Amount is a
// decimal string; dates are YYYY-MM-DD.
type Subscription struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Amount          string `json:"amount"`
	Periodicity     string `json:"periodicity"`
	StartDate       string `json:"start_date"`
	NextPaymentDate string `json:"next_payment_date"`
	IsActive        bool   `json:"is_active"`
	CreatedAt       string `json:"created_at"`
}

// UpcomingPayment is one row of the upcoming-payments report.
type UpcomingPayment struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Amount          string `json:"amount"`
	NextPaymentDate string `json:"next_payment_date"`
	DaysUntil       int    `json:"days_until"`
}

// UpcomingPaymentsResult is the upcoming-payments report.
type UpcomingPaymentsResult struct {
	UpcomingPayments []UpcomingPayment `json:"upcoming_payments"`
	TotalAmount      string            `json:"total_amount"`
}

// MonthlyPayment is one payment falling inside a summarized month.
type MonthlyPayment struct {
	Subscription string `json:"subscription"`
	Amount       string `json:"amount"`
	Date         string `json:"date"`
}

// MonthlySummary aggregates a user's active subscriptions for one month.
type MonthlySummary struct {
	TotalSubscriptions int              `json:"total_subscriptions"`
	TotalMonthlyAmount string           `json:"total_monthly_amount"`
	UpcomingPayments   []MonthlyPayment `json:"upcoming_payments"`
}

// apiResponse represents the standard API response structure.
type apiResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
