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

var _ repository.CustomerPolicyRepository = (*CustomerPolicyRepo)(nil)

const customerPolicyColumns = `id, customer_name, policy_name, status, start_date, premium, next_payment`

// CustomerPolicyRepo implementación del puerto CustomerPolicyRepository sobre PostgreSQL.
type CustomerPolicyRepo struct {
	q Querier
}

// NewCustomerPolicyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerPolicyRepository(q Querier) *CustomerPolicyRepo {
	return &CustomerPolicyRepo{q: q}
}

// List devuelve las pólizas de cliente en orden de alta.
func (r *CustomerPolicyRepo) List(ctx context.Context) ([]*entity.CustomerPolicy, error) {
	query := `SELECT ` + customerPolicyColumns + ` FROM customer_policies ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customer policies: %w", err)
	}
	defer rows.Close()

	var out []*entity.CustomerPolicy
	for rows.Next() {
		p, err := scanCustomerPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer policy: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID obtiene una póliza de cliente. Devuelve (nil, nil) si no existe.
func (r *CustomerPolicyRepo) GetByID(ctx context.Context, id string) (*entity.CustomerPolicy, error) {
	query := `SELECT ` + customerPolicyColumns + ` FROM customer_policies WHERE id = $1`
	p, err := scanCustomerPolicy(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer policy: %w", err)
	}
	return p, nil
}

// MarkClaimed actualiza condicionado al estado para que dos reclamos concurrentes no ganen ambos.
func (r *CustomerPolicyRepo) MarkClaimed(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE customer_policies SET status = 'claimed', updated_at = now() WHERE id = $1 AND status <> 'claimed'`,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark claimed: %w", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customer_policies WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check customer policy: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrAlreadyClaimed
}

func scanCustomerPolicy(row pgx.Row) (*entity.CustomerPolicy, error) {
	var p entity.CustomerPolicy
	var status string
	if err := row.Scan(&p.ID, &p.CustomerName, &p.PolicyName, &status, &p.StartDate, &p.Premium, &p.NextPayment); err != nil {
		return nil, err
	}
	p.Status = entity.CustomerPolicyStatus(status)
	return &p, nil
}
