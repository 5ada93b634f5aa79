package usecases

import (
	"subtrack/internal/domain/subscription"
	"subtrack/internal/shared/dateutil"
)

// Audit snapshots are loosely typed field maps; amounts serialize as decimal
// strings and dates as YYYY-MM-DD so entries stay readable without the
// domain types.

func fullSnapshot(sub *subscription.Subscription) map[string]any {
	return map[string]any{
		"name":              sub.Name(),
		"amount":            sub.Amount().String(),
		"periodicity":       sub.Periodicity().String(),
		"start_date":        dateutil.Format(sub.StartDate()),
		"next_payment_date": dateutil.Format(sub.NextPaymentDate()),
		"is_active":         sub.IsActive(),
	}
}

// deleteSnapshot captures what a soft delete records: name, amount and
// periodicity. The next payment date is deliberately not part of it.
func deleteSnapshot(sub *subscription.Subscription) map[string]any {
	return map[string]any{
		"name":        sub.Name(),
		"amount":      sub.Amount().String(),
		"periodicity": sub.Periodicity().String(),
	}
}
