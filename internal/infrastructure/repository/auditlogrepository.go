package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"subtrack/internal/domain/audit"
	"subtrack/internal/infrastructure/persistence/mappers"
	"subtrack/internal/shared/db"
	"subtrack/internal/shared/logger"
)

type AuditLogRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AuditLogMapper
	logger logger.Interface
}

func NewAuditLogRepository(db *gorm.DB, logger logger.Interface) audit.Repository {
	return &AuditLogRepositoryImpl{
		db:     db,
		mapper: mappers.NewAuditLogMapper(),
		logger: logger,
	}
}

func (r *AuditLogRepositoryImpl) Create(ctx context.Context, entry *audit.Entry) error {
	model, err := r.mapper.ToModel(entry)
	if err != nil {
		r.logger.Errorw("failed to map audit entry to model", "error", err)
		return fmt.Errorf("failed to map audit entry: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create audit entry in database", "error", err)
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	if err := entry.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set audit entry ID: %w", err)
	}

	return nil
}
