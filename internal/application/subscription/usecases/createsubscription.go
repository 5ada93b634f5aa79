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

type CreateSubscriptionCommand struct {
	UserID uint
	Fields validation.Input
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	auditRepo        audit.Repository
	tx               TransactionRunner
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	auditRepo audit.Repository,
	tx TransactionRunner,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		auditRepo:        auditRepo,
		tx:               tx,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*subscription.Subscription, error) {
	fields := validation.Sanitize(cmd.Fields)

	if errs := validation.ValidateCreate(fields); len(errs) > 0 {
		uc.logger.Warnw("subscription create rejected by validation", "user_id", cmd.UserID, "fields", errs)
		return nil, apperrors.NewFieldValidationError(errs)
	}

	// Validation guarantees presence and format of every field from here on.
	amount, err := vo.ParseAmount(*fields.Amount)
	if err != nil {
		return nil, apperrors.NewFieldValidationError(map[string]string{"amount": "Invalid amount format"})
	}

	periodicity, err := vo.ParsePeriodicity(*fields.Periodicity)
	if err != nil {
		return nil, apperrors.NewFieldValidationError(map[string]string{"periodicity": "Invalid periodicity"})
	}

	startDate, err := dateutil.Parse(*fields.StartDate)
	if err != nil {
		return nil, apperrors.NewFieldValidationError(map[string]string{"start_date": "Invalid date format. Use YYYY-MM-DD"})
	}

	sub, err := subscription.NewSubscription(cmd.UserID, *fields.Name, amount, periodicity, startDate)
	if err != nil {
		uc.logger.Errorw("failed to build subscription aggregate", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
			return fmt.Errorf("failed to persist subscription: %w", err)
		}

		entry, err := audit.NewEntry(cmd.UserID, audit.ActionCreate, audit.TableSubscriptions, sub.ID(), nil, fullSnapshot(sub))
		if err != nil {
			return fmt.Errorf("failed to build audit entry: %w", err)
		}
		if err := uc.auditRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to persist audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("subscription create transaction failed", "error", err, "user_id", cmd.UserID)
		return nil, apperrors.NewInternalError("failed to create subscription", err.Error())
	}

	uc.logger.Infow("subscription created", "subscription_id", sub.ID(), "user_id", cmd.UserID)
	return sub, nil
}
