package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surgicare/surgicare/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const sampleCols = `id, hospital, specialty, season, week_start, case_count, created_at`

func scanSample(row pgx.Row) (*VolumeSample, error) {
	var v VolumeSample
	err := row.Scan(&v.ID, &v.Hospital, &v.Specialty, &v.Season, &v.WeekStart, &v.CaseCount, &v.CreatedAt)
	return &v, err
}

func (r *repoPG) Create(ctx context.Context, v *VolumeSample) error {
	v.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO historical_surgical_data (id, hospital, specialty, season, week_start, case_count)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		v.ID, v.Hospital, v.Specialty, v.Season, v.WeekStart, v.CaseCount)
	return db.MapError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*VolumeSample, error) {
	return scanSample(r.pool.QueryRow(ctx, `SELECT `+sampleCols+` FROM historical_surgical_data WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, v *VolumeSample) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE historical_surgical_data SET hospital=$2, specialty=$3, season=$4, week_start=$5, case_count=$6
		WHERE id = $1`,
		v.ID, v.Hospital, v.Specialty, v.Season, v.WeekStart, v.CaseCount)
	return db.MapError(err)
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM historical_surgical_data WHERE id = $1`, id)
	return db.MapError(err)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*VolumeSample, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM historical_surgical_data`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+sampleCols+` FROM historical_surgical_data ORDER BY week_start DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*VolumeSample
	for rows.Next() {
		v, err := scanSample(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}
