package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/domain/audit"
	"subtrack/internal/domain/subscription"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/dateutil"
	"subtrack/internal/shared/logger"
)

type AdvanceNextPaymentCommand struct {
	UserID         uint
	SubscriptionID uint
}

// AdvanceNextPaymentUseCase rolls a subscription's next payment date forward
// by its periodicity's fixed day offset. Invoked on demand (no scheduler);
// the lookup is scoped to the requesting user, who is also the audit actor.
type AdvanceNextPaymentUseCase struct {
	subscriptionRepo subscription.Repository
	auditRepo        audit.Repository
	tx               TransactionRunner
	logger           logger.Interface
}

func NewAdvanceNextPaymentUseCase(
	subscriptionRepo subscription.Repository,
	auditRepo audit.Repository,
	tx TransactionRunner,
	logger logger.Interface,
) *AdvanceNextPaymentUseCase {
	return &AdvanceNextPaymentUseCase{
		subscriptionRepo: subscriptionRepo,
		auditRepo:        auditRepo,
		tx:               tx,
		logger:           logger,
	}
}

func (uc *AdvanceNextPaymentUseCase) Execute(ctx context.Context, cmd AdvanceNextPaymentCommand) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByIDAndUserID(ctx, cmd.SubscriptionID, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to look up subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, apperrors.NewInternalError("failed to advance next payment", err.Error())
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("Subscription not found")
	}

	oldDate := dateutil.Format(sub.NextPaymentDate())
	sub.AdvanceNextPayment()
	newDate := dateutil.Format(sub.NextPaymentDate())

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			return fmt.Errorf("failed to persist subscription: %w", err)
		}

		entry, err := audit.NewEntry(
			sub.UserID(),
			audit.ActionUpdateNextPayment,
			audit.TableSubscriptions,
			sub.ID(),
			map[string]any{"next_payment_date": oldDate},
			map[string]any{"next_payment_date": newDate},
		)
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		if err := uc.auditRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to persist audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("advance next payment transaction failed", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, apperrors.NewInternalError("failed to advance next payment", err.Error())
	}

	uc.logger.Infow("next payment date advanced",
		"subscription_id", sub.ID(),
		"from", oldDate,
		"to", newDate,
	)
	return sub, nil
}
