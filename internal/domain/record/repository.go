package record

import (
	"context"
	"time"
)

// Repository is the record store adapter. Each call is an independent round
// trip; implementations enforce email uniqueness themselves and report it as
// ErrDuplicateEmail, anything else unexpected as *StoreError.
type Repository interface {
	Get(ctx context.Context, id string) (*Record, error)
	FindOne(ctx context.Context, filter Filter) (*Record, error)
	// Find возвращает записи, новые первыми.
	Find(ctx context.Context, filter Filter) ([]Record, error)
	Insert(ctx context.Context, rec *Record) (*Record, error)
	Patch(ctx context.Context, id string, patch Patch, updatedAt time.Time) (*Record, error)
	Delete(ctx context.Context, id string) (*Record, error)
	Close() error
}
