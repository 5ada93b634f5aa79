// Package db provides database utilities, chiefly the unit-of-work used by
// mutating service operations. Every mutating use case runs its entity write
// and its audit write inside a single transaction so both persist or neither
// does.
package db

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key under which an open transaction travels.
type txKey struct{}

// TransactionManager owns the transaction scope for service operations.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction executes fn within a database transaction. The transaction
// is placed in the context so repositories called from fn join it via
// GetTxFromContext. Any error from fn rolls back the whole unit of work.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// GetTxFromContext returns the transaction carried by ctx, or defaultDB when
// the caller is not inside a unit of work.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
