package mappers

import (
	"fmt"

	"subtrack/internal/domain/subscription"
	vo "subtrack/internal/domain/subscription/valueobjects"
	"subtrack/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	amount, err := vo.NewAmount(model.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %s: %w", model.Amount, err)
	}

	periodicity, err := vo.ParsePeriodicity(model.Periodicity)
	if err != nil {
		return nil, fmt.Errorf("invalid stored periodicity %q: %w", model.Periodicity, err)
	}

	entity, err := subscription.Reconstruct(subscription.ReconstructParams{
		ID:              model.ID,
		UserID:          model.UserID,
		Name:            model.Name,
		Amount:          amount,
		Periodicity:     periodicity,
		StartDate:       model.StartDate,
		NextPaymentDate: model.NextPaymentDate,
		IsActive:        model.IsActive,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionModel{
		ID:              entity.ID(),
		UserID:          entity.UserID(),
		Name:            entity.Name(),
		Amount:          entity.Amount().Decimal(),
		Periodicity:     string(entity.Periodicity()),
		StartDate:       entity.StartDate(),
		NextPaymentDate: entity.NextPaymentDate(),
		IsActive:        entity.IsActive(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(subscriptionModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subscriptionModels))
	for _, model := range subscriptionModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
