// Package repository provides gorm-backed implementations of the domain
// persistence ports.
package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"subtrack/internal/domain/subscription"
	"subtrack/internal/infrastructure/persistence/mappers"
	"subtrack/internal/infrastructure/persistence/models"
	"subtrack/internal/shared/db"
	"subtrack/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := sub.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "user_id", model.UserID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetByIDAndUserID(ctx context.Context, id, userID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "id", id, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetActiveByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("next_payment_date asc").
		Find(&subscriptionModels).Error
	if err != nil {
		r.logger.Errorw("failed to list active subscriptions", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return r.mapper.ToEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) GetUpcomingByUserID(ctx context.Context, userID uint, from, to time.Time) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND is_active = ? AND next_payment_date >= ? AND next_payment_date <= ?",
			userID, true, from, to).
		Order("next_payment_date asc").
		Find(&subscriptionModels).Error
	if err != nil {
		r.logger.Errorw("failed to list upcoming payments", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list upcoming payments: %w", err)
	}

	return r.mapper.ToEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":              model.Name,
			"amount":            model.Amount,
			"periodicity":       model.Periodicity,
			"start_date":        model.StartDate,
			"next_payment_date": model.NextPaymentDate,
			"is_active":         model.IsActive,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("subscription %d not found", model.ID)
	}

	r.logger.Infow("subscription updated", "id", model.ID)
	return nil
}
