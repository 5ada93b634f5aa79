package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"subtrack/internal/domain/audit"
	"subtrack/internal/infrastructure/persistence/models"
)

type AuditLogMapper interface {
	ToEntity(model *models.AuditLogModel) (*audit.Entry, error)
	ToModel(entity *audit.Entry) (*models.AuditLogModel, error)
	ToEntities(models []*models.AuditLogModel) ([]*audit.Entry, error)
}

type AuditLogMapperImpl struct{}

func NewAuditLogMapper() AuditLogMapper {
	return &AuditLogMapperImpl{}
}

func (m *AuditLogMapperImpl) ToEntity(model *models.AuditLogModel) (*audit.Entry, error) {
	if model == nil {
		return nil, nil
	}

	oldValues, err := unmarshalSnapshot(model.OldValues)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal old values: %w", err)
	}
	newValues, err := unmarshalSnapshot(model.NewValues)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal new values: %w", err)
	}

	entity, err := audit.ReconstructEntry(
		model.ID,
		model.UserID,
		model.Action,
		model.TargetTable,
		model.RecordID,
		oldValues,
		newValues,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct audit entry: %w", err)
	}

	return entity, nil
}

func (m *AuditLogMapperImpl) ToModel(entity *audit.Entry) (*models.AuditLogModel, error) {
	if entity == nil {
		return nil, nil
	}

	oldValues, err := marshalSnapshot(entity.OldValues())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal old values: %w", err)
	}
	newValues, err := marshalSnapshot(entity.NewValues())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal new values: %w", err)
	}

	return &models.AuditLogModel{
		ID:          entity.ID(),
		UserID:      entity.UserID(),
		Action:      entity.Action(),
		TargetTable: entity.TableName(),
		RecordID:    entity.RecordID(),
		OldValues:   oldValues,
		NewValues:   newValues,
		CreatedAt:   entity.CreatedAt(),
	}, nil
}

func (m *AuditLogMapperImpl) ToEntities(auditModels []*models.AuditLogModel) ([]*audit.Entry, error) {
	entities := make([]*audit.Entry, 0, len(auditModels))
	for _, model := range auditModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func marshalSnapshot(values map[string]any) (datatypes.JSON, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func unmarshalSnapshot(data datatypes.JSON) (map[string]any, error) {
	if data == nil {
		return nil, nil
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
