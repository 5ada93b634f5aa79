package migration

import (
	"subtrack/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.SubscriptionModel{},
		&models.AuditLogModel{},
	}
}
