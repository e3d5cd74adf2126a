package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
)

var _ repository.AdminPolicyRepository = (*AdminPolicyRepo)(nil)

const adminPolicyColumns = `id, name, type, coverage, premium, terms, created_at, updated_at`

// AdminPolicyRepo implementación del puerto AdminPolicyRepository sobre PostgreSQL.
type AdminPolicyRepo struct {
	q Querier
}

// NewAdminPolicyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdminPolicyRepository(q Querier) *AdminPolicyRepo {
	return &AdminPolicyRepo{q: q}
}

// Create persiste una póliza nueva. ErrDuplicate si el ID ya existe.
func (r *AdminPolicyRepo) Create(ctx context.Context, p *entity.AdminPolicy) error {
	query := `
		INSERT INTO admin_policies (id, name, type, coverage, premium, terms, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Type, p.Coverage, p.Premium, p.Terms, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert admin policy: %w", err)
	}
	return nil
}

// GetByID obtiene una póliza por ID. Devuelve (nil, nil) si no existe.
func (r *AdminPolicyRepo) GetByID(ctx context.Context, id string) (*entity.AdminPolicy, error) {
	query := `SELECT ` + adminPolicyColumns + ` FROM admin_policies WHERE id = $1`
	p, err := scanAdminPolicy(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin policy: %w", err)
	}
	return p, nil
}

// List devuelve las pólizas en orden de alta.
func (r *AdminPolicyRepo) List(ctx context.Context) ([]*entity.AdminPolicy, error) {
	query := `SELECT ` + adminPolicyColumns + ` FROM admin_policies ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list admin policies: %w", err)
	}
	defer rows.Close()

	var out []*entity.AdminPolicy
	for rows.Next() {
		p, err := scanAdminPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin policy: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update reemplaza los campos editables. ErrNotFound si no existe.
func (r *AdminPolicyRepo) Update(ctx context.Context, p *entity.AdminPolicy) error {
	query := `
		UPDATE admin_policies SET name = $2, type = $3, coverage = $4, premium = $5, terms = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Type, p.Coverage, p.Premium, p.Terms, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update admin policy: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la póliza. ErrNotFound si no existe.
func (r *AdminPolicyRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM admin_policies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin policy: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAdminPolicy(row pgx.Row) (*entity.AdminPolicy, error) {
	var p entity.AdminPolicy
	if err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Coverage, &p.Premium, &p.Terms, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
