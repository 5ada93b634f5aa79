package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"subtrack/internal/domain/subscription"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/dateutil"
	"subtrack/internal/shared/logger"
)

type MonthlySummaryQuery struct {
	UserID uint
	Year   int
	Month  int
}

type MonthlySummaryResult struct {
	TotalSubscriptions int
	TotalMonthlyAmount decimal.Decimal
	// UpcomingPayments lists the subscriptions whose next payment date
	// falls literally inside the summarized month.
	UpcomingPayments []*subscription.Subscription
}

type MonthlySummaryUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewMonthlySummaryUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *MonthlySummaryUseCase {
	return &MonthlySummaryUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute summarizes a user's active subscriptions for a given month.
//
// The inclusion filter compares the start date's year and month components
// independently with <= (a subscription started 2023-12 is counted for
// 2024-06, but one started 2024-07 is not counted for 2025-06). This is a
// known approximation kept intact for compatibility with the audit history
// of existing deployments.
func (uc *MonthlySummaryUseCase) Execute(ctx context.Context, query MonthlySummaryQuery) (*MonthlySummaryResult, error) {
	if query.Month < 1 || query.Month > 12 {
		return nil, apperrors.NewFieldValidationError(map[string]string{"month": "Month must be between 1 and 12"})
	}
	if query.Year <= 0 {
		return nil, apperrors.NewFieldValidationError(map[string]string{"year": "Year is required"})
	}

	subs, err := uc.subscriptionRepo.GetActiveByUserID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load subscriptions for summary", "error", err, "user_id", query.UserID)
		return nil, apperrors.NewInternalError("failed to build monthly summary", err.Error())
	}

	total := decimal.Zero
	count := 0
	var payments []*subscription.Subscription

	for _, sub := range subs {
		start := sub.StartDate()
		if start.Year() <= query.Year && int(start.Month()) <= query.Month {
			count++
			total = total.Add(sub.Amount().Decimal())

			if dateutil.InYearMonth(sub.NextPaymentDate(), query.Year, time.Month(query.Month)) {
				payments = append(payments, sub)
			}
		}
	}

	return &MonthlySummaryResult{
		TotalSubscriptions: count,
		TotalMonthlyAmount: total,
		UpcomingPayments:   payments,
	}, nil
}
