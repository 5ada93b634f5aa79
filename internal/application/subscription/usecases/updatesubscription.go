package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/application/subscription/validation"
	"subtrack/internal/domain/audit"
	"subtrack/internal/domain/subscription"
	vo "subtrack/internal/domain/subscription/valueobjects"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/dateutil"
	"subtrack/internal/shared/logger"
)

type UpdateSubscriptionCommand struct {
	UserID         uint
	SubscriptionID uint
	Fields         validation.Input
}

type UpdateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	auditRepo        audit.Repository
	tx               TransactionRunner
	logger           logger.Interface
}

func NewUpdateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	auditRepo audit.Repository,
	tx TransactionRunner,
	logger logger.Interface,
) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		auditRepo:        auditRepo,
		tx:               tx,
		logger:           logger,
	}
}

// Execute applies a partial update. Only fields present in the command are
// validated and changed; the audit entry captures before and after values of
// exactly those fields.
func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, cmd UpdateSubscriptionCommand) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetByIDAndUserID(ctx, cmd.SubscriptionID, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to look up subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, apperrors.NewInternalError("failed to update subscription", err.Error())
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("Subscription not found")
	}

	fields := validation.Sanitize(cmd.Fields)
	if errs := validation.ValidateUpdate(fields); len(errs) > 0 {
		uc.logger.Warnw("subscription update rejected by validation", "subscription_id", cmd.SubscriptionID, "fields", errs)
		return nil, apperrors.NewFieldValidationError(errs)
	}

	oldValues := map[string]any{}
	newValues := map[string]any{}

	if fields.Name != nil {
		oldValues["name"] = sub.Name()
		if err := sub.Rename(*fields.Name); err != nil {
			return nil, apperrors.NewFieldValidationError(map[string]string{"name": err.Error()})
		}
		newValues["name"] = sub.Name()
	}

	if fields.Amount != nil {
		amount, err := vo.ParseAmount(*fields.Amount)
		if err != nil {
			return nil, apperrors.NewFieldValidationError(map[string]string{"amount": "Invalid amount format"})
		}
		oldValues["amount"] = sub.Amount().String()
		sub.ChangeAmount(amount)
		newValues["amount"] = sub.Amount().String()
	}

	if fields.Periodicity != nil {
		periodicity, err := vo.ParsePeriodicity(*fields.Periodicity)
		if err != nil {
			return nil, apperrors.NewFieldValidationError(map[string]string{"periodicity": "Invalid periodicity"})
		}
		oldValues["periodicity"] = sub.Periodicity().String()
		if err := sub.ChangePeriodicity(periodicity); err != nil {
			return nil, apperrors.NewFieldValidationError(map[string]string{"periodicity": "Invalid periodicity"})
		}
		newValues["periodicity"] = sub.Periodicity().String()
	}

	if fields.NextPaymentDate != nil {
		date, err := dateutil.Parse(*fields.NextPaymentDate)
		if err != nil {
			return nil, apperrors.NewFieldValidationError(map[string]string{"next_payment_date": "Invalid date format. Use YYYY-MM-DD"})
		}
		oldValues["next_payment_date"] = dateutil.Format(sub.NextPaymentDate())
		sub.RescheduleNextPayment(date)
		newValues["next_payment_date"] = dateutil.Format(sub.NextPaymentDate())
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			return fmt.Errorf("failed to persist subscription: %w", err)
		}

		entry, err := audit.NewEntry(cmd.UserID, audit.ActionUpdate, audit.TableSubscriptions, sub.ID(), oldValues, newValues)
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		if err := uc.auditRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to persist audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("subscription update transaction failed", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, apperrors.NewInternalError("failed to update subscription", err.Error())
	}

	uc.logger.Infow("subscription updated", "subscription_id", sub.ID(), "user_id", cmd.UserID)
	return sub, nil
}
