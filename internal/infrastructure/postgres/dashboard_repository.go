package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// CountServicesByStatus agrupa los servicios visibles para el actor por estado.
func (r *DashboardRepo) CountServicesByStatus(ctx context.Context, actor access.Actor) (map[string]int, error) {
	scope, args, err := access.ScopeQuery("s", actor, 1)
	if err != nil {
		return nil, err
	}
	where := "TRUE"
	if scope != "" {
		where = scope
	}
	query := fmt.Sprintf(`SELECT s.status, COUNT(*) FROM services s WHERE %s GROUP BY s.status`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count services by status: %w", err)
	}
	defer rows.Close()
	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// CountCustomers cuenta los clientes visibles para el actor.
func (r *DashboardRepo) CountCustomers(ctx context.Context, actor access.Actor) (int, error) {
	scope, args, err := access.ScopeTenancy("c.company_id", "c.branch_id", actor, 1)
	if err != nil {
		return 0, err
	}
	where := "TRUE"
	if scope != "" {
		where = scope
	}
	var n int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM customers c WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// CountPersonnel cuenta los técnicos visibles para el actor.
func (r *DashboardRepo) CountPersonnel(ctx context.Context, actor access.Actor) (int, error) {
	scope, args, err := access.ScopeTenancy("p.company_id", "p.branch_id", actor, 1)
	if err != nil {
		return 0, err
	}
	where := "TRUE"
	if scope != "" {
		where = scope
	}
	var n int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM personnel p WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count personnel: %w", err)
	}
	return n, nil
}

// RecentServices devuelve los últimos servicios visibles para el actor.
func (r *DashboardRepo) RecentServices(ctx context.Context, actor access.Actor, limit int) ([]*entity.Service, error) {
	scope, args, err := access.ScopeQuery("s", actor, 1)
	if err != nil {
		return nil, err
	}
	where := "TRUE"
	if scope != "" {
		where = scope
	}
	query := fmt.Sprintf(`SELECT %s FROM services s WHERE %s ORDER BY s.created_at DESC LIMIT $%d`,
		serviceColumns, where, len(args)+1)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("recent services: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.BranchID, &s.CustomerID, &s.PersonnelID,
			&s.DeviceID, &s.BrandID, &s.ModelID, &s.ComplaintID, &s.OperationID, &s.Description,
			&s.Status, &s.Amount, &s.Warranty, &s.ServiceDate, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
