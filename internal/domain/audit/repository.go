package audit

import "context"

// Repository is the write-only persistence port for audit entries. The core
// appends entries; no read or query API is exposed.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
}
