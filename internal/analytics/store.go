package analytics

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=analytics_test

// Store persists calculation records and serves the most recent ones, newest
// first by id. Implementations assign ids atomically and monotonically and
// set created_at at insert time.
type Store interface {
	LogTdee(ctx context.Context, params TdeeParams) (*TdeeCalculation, error)
	LogOneRepMax(ctx context.Context, params OneRepMaxParams) (*OneRepMaxCalculation, error)
	GetRecent(ctx context.Context, limit int) ([]TdeeCalculation, error)
	GetRecentOneRepMax(ctx context.Context, limit int) ([]OneRepMaxCalculation, error)
}

var (
	_ Store = (*PsqlRepo)(nil)
	_ Store = (*RedisRepo)(nil)
	_ Store = (*MemoryRepo)(nil)
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
