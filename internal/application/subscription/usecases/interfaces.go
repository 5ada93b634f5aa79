package usecases

import "context"

// TransactionRunner is the unit-of-work port. shared/db.TransactionManager
// implements it against gorm; tests substitute a pass-through.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
