package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"subtrack/internal/domain/subscription"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/dateutil"
	"subtrack/internal/shared/logger"
)

// DefaultUpcomingHorizonDays is used when a query does not specify a window.
const DefaultUpcomingHorizonDays = 30

type ListUpcomingPaymentsQuery struct {
	UserID      uint
	HorizonDays int
}

type ListUpcomingPaymentsResult struct {
	Subscriptions []*subscription.Subscription
	TotalAmount   decimal.Decimal
}

type ListUpcomingPaymentsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListUpcomingPaymentsUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ListUpcomingPaymentsUseCase {
	return &ListUpcomingPaymentsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute returns active subscriptions whose next payment date falls within
// [today, today+horizon], ordered ascending, together with the sum of their
// amounts.
func (uc *ListUpcomingPaymentsUseCase) Execute(ctx context.Context, query ListUpcomingPaymentsQuery) (*ListUpcomingPaymentsResult, error) {
	horizon := query.HorizonDays
	if horizon <= 0 {
		horizon = DefaultUpcomingHorizonDays
	}

	today := dateutil.Today()
	until := today.AddDate(0, 0, horizon)

	subs, err := uc.subscriptionRepo.GetUpcomingByUserID(ctx, query.UserID, today, until)
	if err != nil {
		uc.logger.Errorw("failed to list upcoming payments", "error", err, "user_id", query.UserID)
		return nil, apperrors.NewInternalError("failed to list upcoming payments", err.Error())
	}

	total := decimal.Zero
	for _, sub := range subs {
		total = total.Add(sub.Amount().Decimal())
	}

	return &ListUpcomingPaymentsResult{
		Subscriptions: subs,
		TotalAmount:   total,
	}, nil
}
