package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"subtrack/internal/domain/user"
	"subtrack/internal/infrastructure/persistence/mappers"
	"subtrack/internal/infrastructure/persistence/models"
	"subtrack/internal/shared/db"
	"subtrack/internal/shared/logger"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model, err := r.mapper.ToModel(u)
	if err != nil {
		r.logger.Errorw("failed to map user entity to model", "error", err)
		return fmt.Errorf("failed to map user entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := u.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID)
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("email = ?", email).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}
