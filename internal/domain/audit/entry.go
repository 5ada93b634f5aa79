// Package audit contains the append-only audit trail of subscription
// mutations. Entries are immutable once created: actor, action, target and
// the before/after value snapshots.
package audit

import (
	"errors"
	"time"
)

const (
	ActionCreate            = "CREATE"
	ActionUpdate            = "UPDATE"
	ActionDelete            = "DELETE"
	ActionUpdateNextPayment = "UPDATE_NEXT_PAYMENT"
)

var ValidActions = map[string]bool{
	ActionCreate:            true,
	ActionUpdate:            true,
	ActionDelete:            true,
	ActionUpdateNextPayment: true,
}

// TableSubscriptions is the target table every subscription mutation logs
// against.
const TableSubscriptions = "subscriptions"

var ErrInvalidAction = errors.New("invalid audit action")

// Entry is an immutable audit record. Snapshots are loosely typed field
// maps because different actions capture different field subsets.
type Entry struct {
	id        uint
	userID    uint
	action    string
	tableName string
	recordID  uint
	oldValues map[string]any
	newValues map[string]any
	createdAt time.Time
}

// NewEntry creates an audit entry. Either snapshot may be nil.
func NewEntry(userID uint, action, tableName string, recordID uint, oldValues, newValues map[string]any) (*Entry, error) {
	if userID == 0 {
		return nil, errors.New("user ID is required")
	}
	if !ValidActions[action] {
		return nil, ErrInvalidAction
	}
	if tableName == "" {
		return nil, errors.New("table name is required")
	}
	if recordID == 0 {
		return nil, errors.New("record ID is required")
	}

	return &Entry{
		userID:    userID,
		action:    action,
		tableName: tableName,
		recordID:  recordID,
		oldValues: copyValues(oldValues),
		newValues: copyValues(newValues),
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructEntry rebuilds an entry from persistence.
func ReconstructEntry(id, userID uint, action, tableName string, recordID uint, oldValues, newValues map[string]any, createdAt time.Time) (*Entry, error) {
	if id == 0 {
		return nil, errors.New("entry ID cannot be zero")
	}
	if !ValidActions[action] {
		return nil, ErrInvalidAction
	}

	return &Entry{
		id:        id,
		userID:    userID,
		action:    action,
		tableName: tableName,
		recordID:  recordID,
		oldValues: copyValues(oldValues),
		newValues: copyValues(newValues),
		createdAt: createdAt,
	}, nil
}

func (e *Entry) ID() uint {
	return e.id
}

func (e *Entry) UserID() uint {
	return e.userID
}

func (e *Entry) Action() string {
	return e.action
}

func (e *Entry) TableName() string {
	return e.tableName
}

func (e *Entry) RecordID() uint {
	return e.recordID
}

// OldValues returns a copy of the before-mutation snapshot, nil when the
// action captured none.
func (e *Entry) OldValues() map[string]any {
	return copyValues(e.oldValues)
}

// NewValues returns a copy of the after-mutation snapshot, nil when the
// action captured none.
func (e *Entry) NewValues() map[string]any {
	return copyValues(e.newValues)
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// SetID sets the entry ID (only for persistence layer use)
func (e *Entry) SetID(id uint) error {
	if e.id != 0 {
		return errors.New("entry ID is already set")
	}
	if id == 0 {
		return errors.New("entry ID cannot be zero")
	}
	e.id = id
	return nil
}

// copyValues shields the entry's snapshots from later mutation by callers.
func copyValues(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
