package analytics

import (
	"context"
	_ "embed"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitcalc/internal/telemetry/tracing"
)

//go:embed schema.sql
var SchemaSQL string

type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

// Migrate creates the analytics schema and tables if they don't exist yet.
func (r *PsqlRepo) Migrate(ctx context.Context) (err error) {
	ctx, span := tracing.Start(ctx, "repo.analytics.migrate")
	defer func() { tracing.EndSpan(span, err) }()

	if _, err = r.db.Exec(ctx, SchemaSQL); err != nil {
		return storageErr("migrate", err)
	}
	return nil
}

func (r *PsqlRepo) LogTdee(ctx context.Context, params TdeeParams) (_ *TdeeCalculation, err error) {
	ctx, span := tracing.Start(ctx, "repo.analytics.tdee.log")
	defer func() { tracing.EndSpan(span, err) }()

	rec := params.record(0, time.Time{})
	err = r.db.QueryRow(ctx, `
		INSERT INTO analytics.tdee_calculation
			(sex, weight_kg, height_cm, age_years, activity, tdee_kcal, note, user_agent, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`,
		params.Sex, params.WeightKg, params.HeightCm, params.AgeYears,
		params.Activity, params.TdeeKcal,
		params.Note, params.UserAgent, params.ClientID,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, storageErr("insert tdee calculation", err)
	}

	span.SetAttributes(attribute.Int64("id", rec.ID))
	return &rec, nil
}

func (r *PsqlRepo) LogOneRepMax(ctx context.Context, params OneRepMaxParams) (_ *OneRepMaxCalculation, err error) {
	ctx, span := tracing.Start(ctx, "repo.analytics.onerepmax.log")
	defer func() { tracing.EndSpan(span, err) }()

	rec := params.record(0, time.Time{})
	err = r.db.QueryRow(ctx, `
		INSERT INTO analytics.one_rep_max_calculation
			(weight, reps, one_rm, note, user_agent, client_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		params.Weight, params.Reps, params.OneRm,
		params.Note, params.UserAgent, params.ClientID,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, storageErr("insert one rep max calculation", err)
	}

	span.SetAttributes(attribute.Int64("id", rec.ID))
	return &rec, nil
}

func (r *PsqlRepo) GetRecent(ctx context.Context, limit int) (_ []TdeeCalculation, err error) {
	ctx, span := tracing.Start(ctx, "repo.analytics.tdee.recent")
	defer func() { tracing.EndSpan(span, err) }()

	limit = ClampLimit(limit)
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(ctx, `
		SELECT id, created_at, sex, weight_kg, height_cm, age_years, activity, tdee_kcal,
		       note, user_agent, client_id
		FROM analytics.tdee_calculation
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, storageErr("query recent tdee calculations", err)
	}
	defer rows.Close()

	records := make([]TdeeCalculation, 0, limit)
	for rows.Next() {
		var rec TdeeCalculation
		if err := rows.Scan(
			&rec.ID, &rec.CreatedAt, &rec.Sex, &rec.WeightKg, &rec.HeightCm,
			&rec.AgeYears, &rec.Activity, &rec.TdeeKcal,
			&rec.Note, &rec.UserAgent, &rec.ClientID,
		); err != nil {
			return nil, storageErr("scan tdee calculation", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate tdee calculations", err)
	}

	return records, nil
}

func (r *PsqlRepo) GetRecentOneRepMax(ctx context.Context, limit int) (_ []OneRepMaxCalculation, err error) {
	ctx, span := tracing.Start(ctx, "repo.analytics.onerepmax.recent")
	defer func() { tracing.EndSpan(span, err) }()

	limit = ClampLimit(limit)
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(ctx, `
		SELECT id, created_at, weight, reps, one_rm, note, user_agent, client_id
		FROM analytics.one_rep_max_calculation
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, storageErr("query recent one rep max calculations", err)
	}
	defer rows.Close()

	records := make([]OneRepMaxCalculation, 0, limit)
	for rows.Next() {
		var rec OneRepMaxCalculation
		if err := rows.Scan(
			&rec.ID, &rec.CreatedAt, &rec.Weight, &rec.Reps, &rec.OneRm,
			&rec.Note, &rec.UserAgent, &rec.ClientID,
		); err != nil {
			return nil, storageErr("scan one rep max calculation", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate one rep max calculations", err)
	}

	return records, nil
}
