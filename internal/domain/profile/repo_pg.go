package profile

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

const profileCols = `id, email, full_name, role, avatar_url, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (id, email, full_name, role, avatar_url)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Email, p.FullName, p.Role, p.AvatarURL)
	return db.MapError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileCols+` FROM profiles WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Profile) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE profiles SET email=$2, full_name=$3, role=$4, avatar_url=$5, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Email, p.FullName, p.Role, p.AvatarURL)
	return db.MapError(err)
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	return db.MapError(err)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Profile, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+profileCols+` FROM profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) RoleOf(ctx context.Context, id uuid.UUID) (string, error) {
	var role string
	err := r.pool.QueryRow(ctx, `SELECT role FROM profiles WHERE id = $1`, id).Scan(&role)
	return role, err
}
