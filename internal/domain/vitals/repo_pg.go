package vitals

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

const vitalCols = `id, patient_id, recorded_by, heart_rate, systolic_bp, diastolic_bp,
	temperature, oxygen_saturation, respiratory_rate, note, measured_at, created_at`

func scanVitalSign(row pgx.Row) (*VitalSign, error) {
	var v VitalSign
	err := row.Scan(&v.ID, &v.PatientID, &v.RecordedBy, &v.HeartRate, &v.SystolicBP, &v.DiastolicBP,
		&v.Temperature, &v.OxygenSaturation, &v.RespiratoryRate, &v.Note, &v.MeasuredAt, &v.CreatedAt)
	return &v, err
}

func (r *repoPG) Create(ctx context.Context, v *VitalSign) error {
	v.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vital_signs (id, patient_id, recorded_by, heart_rate, systolic_bp, diastolic_bp,
			temperature, oxygen_saturation, respiratory_rate, note, measured_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		v.ID, v.PatientID, v.RecordedBy, v.HeartRate, v.SystolicBP, v.DiastolicBP,
		v.Temperature, v.OxygenSaturation, v.RespiratoryRate, v.Note, v.MeasuredAt)
	return db.MapError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*VitalSign, error) {
	return scanVitalSign(r.pool.QueryRow(ctx, `SELECT `+vitalCols+` FROM vital_signs WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, v *VitalSign) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE vital_signs SET heart_rate=$2, systolic_bp=$3, diastolic_bp=$4, temperature=$5,
			oxygen_saturation=$6, respiratory_rate=$7, note=$8, measured_at=$9
		WHERE id = $1`,
		v.ID, v.HeartRate, v.SystolicBP, v.DiastolicBP, v.Temperature,
		v.OxygenSaturation, v.RespiratoryRate, v.Note, v.MeasuredAt)
	return db.MapError(err)
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM vital_signs WHERE id = $1`, id)
	return db.MapError(err)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*VitalSign, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vital_signs`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+vitalCols+` FROM vital_signs ORDER BY measured_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collect(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*VitalSign, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vital_signs WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+vitalCols+` FROM vital_signs WHERE patient_id = $1 ORDER BY measured_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collect(rows, total)
}

func collect(rows pgx.Rows, total int) ([]*VitalSign, int, error) {
	var items []*VitalSign
	for rows.Next() {
		v, err := scanVitalSign(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}
