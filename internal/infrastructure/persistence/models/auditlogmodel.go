package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLogModel represents the database persistence model for audit entries.
// Rows are append-only; there is no UpdatedAt.
type AuditLogModel struct {
	ID          uint           `gorm:"primarykey"`
	UserID      uint           `gorm:"not null;index:idx_audit_user"`
	Action      string         `gorm:"not null;size:20"`
	TargetTable string         `gorm:"column:table_name;not null;size:50"`
	RecordID    uint           `gorm:"not null;index:idx_audit_record"`
	OldValues   datatypes.JSON `gorm:"type:json"`
	NewValues   datatypes.JSON `gorm:"type:json"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}
