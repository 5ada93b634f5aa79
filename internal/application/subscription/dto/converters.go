package dto

import (
	"time"

	"subtrack/internal/domain/subscription"
	"subtrack/internal/shared/dateutil"
)

func ToSubscriptionDTO(sub *subscription.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}
	return &SubscriptionDTO{
		ID:              sub.ID(),
		Name:            sub.Name(),
		Amount:          sub.Amount().String(),
		Periodicity:     sub.Periodicity().String(),
		StartDate:       dateutil.Format(sub.StartDate()),
		NextPaymentDate: dateutil.Format(sub.NextPaymentDate()),
		IsActive:        sub.IsActive(),
		CreatedAt:       sub.CreatedAt().UTC().Format(time.RFC3339),
	}
}

func ToSubscriptionDTOs(subs []*subscription.Subscription) []*SubscriptionDTO {
	out := make([]*SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		out = append(out, ToSubscriptionDTO(sub))
	}
	return out
}

func ToUpcomingPaymentDTO(sub *subscription.Subscription, today time.Time) *UpcomingPaymentDTO {
	return &UpcomingPaymentDTO{
		ID:              sub.ID(),
		Name:            sub.Name(),
		Amount:          sub.Amount().String(),
		NextPaymentDate: dateutil.Format(sub.NextPaymentDate()),
		DaysUntil:       dateutil.DaysUntil(today, sub.NextPaymentDate()),
	}
}

func ToMonthlyPaymentDTO(sub *subscription.Subscription) *MonthlyPaymentDTO {
	return &MonthlyPaymentDTO{
		Subscription: sub.Name(),
		Amount:       sub.Amount().String(),
		Date:         dateutil.Format(sub.NextPaymentDate()),
	}
}
