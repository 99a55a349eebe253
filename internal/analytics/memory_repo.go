package analytics

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is a process-local Store, used in development and tests.
type MemoryRepo struct {
	mu        sync.RWMutex
	tdee      []TdeeCalculation
	oneRepMax []OneRepMaxCalculation
	tdeeSeq   int64
	oneRepSeq int64
	now       func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		now: time.Now,
	}
}

func (r *MemoryRepo) LogTdee(_ context.Context, params TdeeParams) (*TdeeCalculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tdeeSeq++
	rec := params.record(r.tdeeSeq, r.now().UTC())
	r.tdee = append(r.tdee, rec)
	return &rec, nil
}

func (r *MemoryRepo) LogOneRepMax(_ context.Context, params OneRepMaxParams) (*OneRepMaxCalculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.oneRepSeq++
	rec := params.record(r.oneRepSeq, r.now().UTC())
	r.oneRepMax = append(r.oneRepMax, rec)
	return &rec, nil
}

// records are appended in id order, so walking backwards gives newest first
func (r *MemoryRepo) GetRecent(_ context.Context, limit int) ([]TdeeCalculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return newestFirst(r.tdee, ClampLimit(limit)), nil
}

func (r *MemoryRepo) GetRecentOneRepMax(_ context.Context, limit int) ([]OneRepMaxCalculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return newestFirst(r.oneRepMax, ClampLimit(limit)), nil
}

func newestFirst[T any](records []T, limit int) []T {
	n := min(limit, len(records))
	out := make([]T, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		out = append(out, records[i])
	}
	return out
}
