package surgery

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surgicare/surgicare/internal/platform/db"
)

// =========== Case Repository ===========

type caseRepoPG struct{ pool *pgxpool.Pool }

func NewCaseRepoPG(pool *pgxpool.Pool) CaseRepository {
	return &caseRepoPG{pool: pool}
}

const caseCols = `id, patient_id, surgeon_id, procedure_name, status, priority,
	scheduled_date, note, created_at, updated_at`

func scanCase(row pgx.Row) (*Case, error) {
	var sc Case
	err := row.Scan(&sc.ID, &sc.PatientID, &sc.SurgeonID, &sc.ProcedureName, &sc.Status, &sc.Priority,
		&sc.ScheduledDate, &sc.Note, &sc.CreatedAt, &sc.UpdatedAt)
	return &sc, err
}

func (r *caseRepoPG) Create(ctx context.Context, sc *Case) error {
	sc.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO surgical_cases (id, patient_id, surgeon_id, procedure_name, status, priority, scheduled_date, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		sc.ID, sc.PatientID, sc.SurgeonID, sc.ProcedureName, sc.Status, sc.Priority, sc.ScheduledDate, sc.Note)
	return db.MapError(err)
}

func (r *caseRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Case, error) {
	return scanCase(r.pool.QueryRow(ctx, `SELECT `+caseCols+` FROM surgical_cases WHERE id = $1`, id))
}

func (r *caseRepoPG) Update(ctx context.Context, sc *Case) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE surgical_cases SET surgeon_id=$2, procedure_name=$3, status=$4, priority=$5,
			scheduled_date=$6, note=$7, updated_at=NOW()
		WHERE id = $1`,
		sc.ID, sc.SurgeonID, sc.ProcedureName, sc.Status, sc.Priority, sc.ScheduledDate, sc.Note)
	return db.MapError(err)
}

func (r *caseRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM surgical_cases WHERE id = $1`, id)
	return db.MapError(err)
}

func (r *caseRepoPG) List(ctx context.Context, limit, offset int) ([]*Case, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM surgical_cases`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+caseCols+` FROM surgical_cases ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectCases(rows, total)
}

func (r *caseRepoPG) ListForParticipant(ctx context.Context, id uuid.UUID, limit, offset int) ([]*Case, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM surgical_cases WHERE patient_id = $1 OR surgeon_id = $1`, id).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+caseCols+` FROM surgical_cases WHERE patient_id = $1 OR surgeon_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, id, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectCases(rows, total)
}

func collectCases(rows pgx.Rows, total int) ([]*Case, int, error) {
	var items []*Case
	for rows.Next() {
		sc, err := scanCase(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, sc)
	}
	return items, total, rows.Err()
}

// =========== History Repository ===========

type historyRepoPG struct{ pool *pgxpool.Pool }

func NewHistoryRepoPG(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepoPG{pool: pool}
}

const historyCols = `id, patient_id, surgeon_id, procedure_name, performed_at, outcome, note, created_at`

func scanHistory(row pgx.Row) (*History, error) {
	var h History
	err := row.Scan(&h.ID, &h.PatientID, &h.SurgeonID, &h.ProcedureName, &h.PerformedAt, &h.Outcome, &h.Note, &h.CreatedAt)
	return &h, err
}

func (r *historyRepoPG) Create(ctx context.Context, h *History) error {
	h.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO surgical_history (id, patient_id, surgeon_id, procedure_name, performed_at, outcome, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		h.ID, h.PatientID, h.SurgeonID, h.ProcedureName, h.PerformedAt, h.Outcome, h.Note)
	return db.MapError(err)
}

func (r *historyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*History, error) {
	return scanHistory(r.pool.QueryRow(ctx, `SELECT `+historyCols+` FROM surgical_history WHERE id = $1`, id))
}

func (r *historyRepoPG) Update(ctx context.Context, h *History) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE surgical_history SET surgeon_id=$2, procedure_name=$3, performed_at=$4, outcome=$5, note=$6
		WHERE id = $1`,
		h.ID, h.SurgeonID, h.ProcedureName, h.PerformedAt, h.Outcome, h.Note)
	return db.MapError(err)
}

func (r *historyRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM surgical_history WHERE id = $1`, id)
	return db.MapError(err)
}

func (r *historyRepoPG) List(ctx context.Context, limit, offset int) ([]*History, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM surgical_history`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+historyCols+` FROM surgical_history ORDER BY performed_at DESC NULLS LAST LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectHistories(rows, total)
}

func (r *historyRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*History, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM surgical_history WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+historyCols+` FROM surgical_history WHERE patient_id = $1 ORDER BY performed_at DESC NULLS LAST LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectHistories(rows, total)
}

func collectHistories(rows pgx.Rows, total int) ([]*History, int, error) {
	var items []*History
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, h)
	}
	return items, total, rows.Err()
}
