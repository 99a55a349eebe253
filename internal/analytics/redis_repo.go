package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitcalc/internal/telemetry/tracing"
)

const redisKeyPrefix = "analytics"

// RedisRepo keeps each table in a sorted set scored by id, so that reverse
// range reads are always newest-first, and takes ids from an INCR counter.
type RedisRepo struct {
	rdb redis.Cmdable
	now func() time.Time
}

func NewRedisRepo(rdb redis.Cmdable) *RedisRepo {
	return &RedisRepo{
		rdb: rdb,
		now: time.Now,
	}
}

func seqKey(table string) string {
	return redisKeyPrefix + ":" + table + ":seq"
}

func recordsKey(table string) string {
	return redisKeyPrefix + ":" + table + ":records"
}

func (r *RedisRepo) LogTdee(ctx context.Context, params TdeeParams) (_ *TdeeCalculation, err error) {
	ctx, span := tracing.Start(ctx, "repo.analytics.redis.tdee.log")
	defer func() { tracing.EndSpan(span, err) }()

	id, err := r.rdb.Incr(ctx, seqKey(TableTdee)).Result()
	if err != nil {
		return nil, storageErr("next tdee calculation id", err)
	}

	rec := params.record(id, r.now().UTC())
	if err := r.add(ctx, TableTdee, id, rec); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("id", id))
	return &rec, nil
}

func (r *RedisRepo) LogOneRepMax(ctx context.Context, params OneRepMaxParams) (_ *OneRepMaxCalculation, err error) {
	ctx, span := tracing.Start(ctx, "repo.analytics.redis.onerepmax.log")
	defer func() { tracing.EndSpan(span, err) }()

	id, err := r.rdb.Incr(ctx, seqKey(TableOneRepMax)).Result()
	if err != nil {
		return nil, storageErr("next one rep max calculation id", err)
	}

	rec := params.record(id, r.now().UTC())
	if err := r.add(ctx, TableOneRepMax, id, rec); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("id", id))
	return &rec, nil
}

func (r *RedisRepo) add(ctx context.Context, table string, id int64, rec any) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return storageErr("marshal "+table, err)
	}

	if err := r.rdb.ZAdd(ctx, recordsKey(table), &redis.Z{
		Score:  float64(id),
		Member: string(payload),
	}).Err(); err != nil {
		return storageErr("add "+table, err)
	}
	return nil
}

func (r *RedisRepo) GetRecent(ctx context.Context, limit int) (_ []TdeeCalculation, err error) {
	ctx, span := tracing.Start(ctx, "repo.analytics.redis.tdee.recent")
	defer func() { tracing.EndSpan(span, err) }()

	raw, err := r.recent(ctx, TableTdee, limit)
	if err != nil {
		return nil, err
	}

	records := make([]TdeeCalculation, 0, len(raw))
	for _, payload := range raw {
		var rec TdeeCalculation
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, storageErr("unmarshal tdee calculation", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *RedisRepo) GetRecentOneRepMax(ctx context.Context, limit int) (_ []OneRepMaxCalculation, err error) {
	ctx, span := tracing.Start(ctx, "repo.analytics.redis.onerepmax.recent")
	defer func() { tracing.EndSpan(span, err) }()

	raw, err := r.recent(ctx, TableOneRepMax, limit)
	if err != nil {
		return nil, err
	}

	records := make([]OneRepMaxCalculation, 0, len(raw))
	for _, payload := range raw {
		var rec OneRepMaxCalculation
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, storageErr("unmarshal one rep max calculation", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *RedisRepo) recent(ctx context.Context, table string, limit int) ([]string, error) {
	limit = ClampLimit(limit)
	raw, err := r.rdb.ZRevRange(ctx, recordsKey(table), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, storageErr("range "+table, err)
	}
	return raw, nil
}
