package mappers

import (
	"fmt"

	"subtrack/internal/domain/user"
	"subtrack/internal/infrastructure/persistence/models"
)

type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) (*models.UserModel, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	passwordHash := ""
	if model.PasswordHash != nil {
		passwordHash = *model.PasswordHash
	}

	entity, err := user.Reconstruct(model.ID, model.Username, model.Email, passwordHash, model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}
	return entity, nil
}

func (m *UserMapperImpl) ToModel(entity *user.User) (*models.UserModel, error) {
	if entity == nil {
		return nil, nil
	}

	var passwordHash *string
	if entity.HasPassword() {
		h := entity.PasswordHash()
		passwordHash = &h
	}

	return &models.UserModel{
		ID:           entity.ID(),
		Username:     entity.Username(),
		Email:        entity.Email(),
		PasswordHash: passwordHash,
		CreatedAt:    entity.CreatedAt(),
	}, nil
}
