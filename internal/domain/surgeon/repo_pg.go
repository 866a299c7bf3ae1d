package surgeon

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

const detailCols = `user_id, specialty, hospital, years_experience, certifications, consultation_fee, created_at, updated_at`

func scanDetails(row pgx.Row) (*Details, error) {
	var d Details
	err := row.Scan(&d.UserID, &d.Specialty, &d.Hospital, &d.YearsExperience, &d.Certifications, &d.ConsultationFee, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *repoPG) Upsert(ctx context.Context, d *Details) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO surgeon_details (user_id, specialty, hospital, years_experience, certifications, consultation_fee)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (user_id) DO UPDATE SET
			specialty = EXCLUDED.specialty,
			hospital = EXCLUDED.hospital,
			years_experience = EXCLUDED.years_experience,
			certifications = EXCLUDED.certifications,
			consultation_fee = EXCLUDED.consultation_fee,
			updated_at = NOW()`,
		d.UserID, d.Specialty, d.Hospital, d.YearsExperience, d.Certifications, d.ConsultationFee)
	return db.MapError(err)
}

func (r *repoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Details, error) {
	return scanDetails(r.pool.QueryRow(ctx, `SELECT `+detailCols+` FROM surgeon_details WHERE user_id = $1`, userID))
}

func (r *repoPG) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM surgeon_details WHERE user_id = $1`, userID)
	return db.MapError(err)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Details, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM surgeon_details`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+detailCols+` FROM surgeon_details ORDER BY specialty, created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Details
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}
