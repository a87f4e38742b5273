package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

const serviceColumns = `s.id, s.company_id, s.branch_id, s.customer_id, COALESCE(s.personnel_id::text, ''),
	COALESCE(s.device_id::text, ''), COALESCE(s.brand_id::text, ''), COALESCE(s.model_id::text, ''),
	COALESCE(s.complaint_id::text, ''), COALESCE(s.operation_id::text, ''), COALESCE(s.description, ''),
	s.status, s.amount, s.warranty, s.service_date, s.created_at, s.updated_at`

// ServiceRepo implementación de ServiceRepository (usable con pool o tx).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// Create persiste un nuevo servicio.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (id, company_id, branch_id, customer_id, personnel_id, device_id,
			brand_id, model_id, complaint_id, operation_id, description, status, amount,
			warranty, service_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.BranchID, s.CustomerID, nullable(s.PersonnelID), nullable(s.DeviceID),
		nullable(s.BrandID), nullable(s.ModelID), nullable(s.ComplaintID), nullable(s.OperationID),
		nullable(s.Description), s.Status, s.Amount, s.Warranty, s.ServiceDate, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID obtiene un servicio por ID.
func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	query := fmt.Sprintf(`SELECT %s FROM services s WHERE s.id = $1`, serviceColumns)
	var s entity.Service
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CompanyID, &s.BranchID, &s.CustomerID, &s.PersonnelID,
		&s.DeviceID, &s.BrandID, &s.ModelID, &s.ComplaintID, &s.OperationID, &s.Description,
		&s.Status, &s.Amount, &s.Warranty, &s.ServiceDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// Update actualiza un servicio.
func (r *ServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services SET personnel_id = $2, device_id = $3, brand_id = $4, model_id = $5,
			complaint_id = $6, operation_id = $7, description = $8, status = $9, amount = $10,
			warranty = $11, service_date = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, nullable(s.PersonnelID), nullable(s.DeviceID), nullable(s.BrandID), nullable(s.ModelID),
		nullable(s.ComplaintID), nullable(s.OperationID), nullable(s.Description), s.Status, s.Amount,
		s.Warranty, s.ServiceDate, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// Delete elimina un servicio por ID.
func (r *ServiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM services WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

// List lista servicios visibles para el actor con filtros opcionales, total y
// paginación. El predicado de autorización se añade siempre al WHERE; los
// filtros del usuario nunca lo sustituyen.
func (r *ServiceRepo) List(ctx context.Context, actor access.Actor, f repository.ServiceFilter) ([]*entity.Service, int, error) {
	var conds []string
	var args []any

	scope, scopeArgs, err := access.ScopeQuery("s", actor, len(args)+1)
	if err != nil {
		return nil, 0, err
	}
	if scope != "" {
		conds = append(conds, scope)
		args = append(args, scopeArgs...)
	}
	if f.Search != "" {
		conds = append(conds, fmt.Sprintf(`(s.description ILIKE '%%' || $%d || '%%' OR EXISTS (
			SELECT 1 FROM customers c WHERE c.id = s.customer_id
			AND (c.name ILIKE '%%' || $%d || '%%' OR c.phone ILIKE '%%' || $%d || '%%')))`,
			len(args)+1, len(args)+1, len(args)+1))
		args = append(args, f.Search)
	}
	if f.Status != "" {
		conds = append(conds, fmt.Sprintf("s.status = $%d", len(args)+1))
		args = append(args, f.Status)
	}
	if f.PersonnelID != "" {
		conds = append(conds, fmt.Sprintf("s.personnel_id = $%d", len(args)+1))
		args = append(args, f.PersonnelID)
	}
	if f.DateFrom != nil {
		conds = append(conds, fmt.Sprintf("s.service_date >= $%d", len(args)+1))
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		conds = append(conds, fmt.Sprintf("s.service_date <= $%d", len(args)+1))
		args = append(args, *f.DateTo)
	}

	where := "TRUE"
	if len(conds) > 0 {
		where = strings.Join(conds, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM services s WHERE %s`, where)
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM services s WHERE %s ORDER BY s.service_date DESC, s.created_at DESC LIMIT $%d OFFSET $%d`,
		serviceColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
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
			return nil, 0, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}
