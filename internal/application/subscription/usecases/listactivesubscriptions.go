package usecases

import (
	"context"

	"subtrack/internal/domain/subscription"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
)

type ListActiveSubscriptionsQuery struct {
	UserID uint
}

type ListActiveSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListActiveSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *ListActiveSubscriptionsUseCase {
	return &ListActiveSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute returns the user's active subscriptions ordered by next payment
// date ascending. Soft-deleted subscriptions never appear.
func (uc *ListActiveSubscriptionsUseCase) Execute(ctx context.Context, query ListActiveSubscriptionsQuery) ([]*subscription.Subscription, error) {
	subs, err := uc.subscriptionRepo.GetActiveByUserID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list active subscriptions", "error", err, "user_id", query.UserID)
		return nil, apperrors.NewInternalError("failed to list subscriptions", err.Error())
	}
	return subs, nil
}
