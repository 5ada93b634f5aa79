package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/domain/audit"
	"subtrack/internal/domain/subscription"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
)

type DeleteSubscriptionCommand struct {
	UserID         uint
	SubscriptionID uint
}

type DeleteSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	auditRepo        audit.Repository
	tx               TransactionRunner
	logger           logger.Interface
}

func NewDeleteSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	auditRepo audit.Repository,
	tx TransactionRunner,
	logger logger.Interface,
) *DeleteSubscriptionUseCase {
	return &DeleteSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		auditRepo:        auditRepo,
		tx:               tx,
		logger:           logger,
	}
}

// Execute soft-deletes a subscription. Deleting an already-inactive
// subscription succeeds silently and emits no additional audit entry.
func (uc *DeleteSubscriptionUseCase) Execute(ctx context.Context, cmd DeleteSubscriptionCommand) error {
	sub, err := uc.subscriptionRepo.GetByIDAndUserID(ctx, cmd.SubscriptionID, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to look up subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return apperrors.NewInternalError("failed to delete subscription", err.Error())
	}
	if sub == nil {
		return apperrors.NewNotFoundError("Subscription not found")
	}

	// Snapshot before deactivation; the delete audit records name, amount
	// and periodicity only.
	oldValues := deleteSnapshot(sub)

	if !sub.Deactivate() {
		uc.logger.Debugw("subscription already inactive", "subscription_id", sub.ID())
		return nil
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			return fmt.Errorf("failed to persist subscription: %w", err)
		}

		entry, err := audit.NewEntry(cmd.UserID, audit.ActionDelete, audit.TableSubscriptions, sub.ID(), oldValues, nil)
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		if err := uc.auditRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to persist audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("subscription delete transaction failed", "error", err, "subscription_id", cmd.SubscriptionID)
		return apperrors.NewInternalError("failed to delete subscription", err.Error())
	}

	uc.logger.Infow("subscription soft-deleted", "subscription_id", sub.ID(), "user_id", cmd.UserID)
	return nil
}
