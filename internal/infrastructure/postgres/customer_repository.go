package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `c.id, c.company_id, COALESCE(c.branch_id::text, ''), c.name, c.phone,
	COALESCE(c.address, ''), COALESCE(c.city, ''), COALESCE(c.district, ''), c.created_at, c.updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, company_id, branch_id, name, phone, address, city, district, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, nullable(c.BranchID), c.Name, c.Phone,
		nullable(c.Address), nullable(c.City), nullable(c.District), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getBy(ctx, "c.id = $1", []any{id})
}

// GetByCompanyAndPhone obtiene el cliente con ese teléfono dentro de la empresa
// (clave del upsert del flujo de servicios).
func (r *CustomerRepo) GetByCompanyAndPhone(ctx context.Context, companyID, phone string) (*entity.Customer, error) {
	return r.getBy(ctx, "c.company_id = $1 AND c.phone = $2", []any{companyID, phone})
}

func (r *CustomerRepo) getBy(ctx context.Context, cond string, args []any) (*entity.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers c WHERE %s`, customerColumns, cond)
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.CompanyID, &c.BranchID, &c.Name, &c.Phone,
		&c.Address, &c.City, &c.District, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos de contacto del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, phone = $3, address = $4, city = $5, district = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Phone, nullable(c.Address), nullable(c.City), nullable(c.District), c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// List lista clientes visibles para el actor con búsqueda (nombre o teléfono),
// paginación y total. El técnico solo ve clientes de servicios que tiene
// asignados; el resto de roles usa el filtro de tenencia estándar.
func (r *CustomerRepo) List(ctx context.Context, actor access.Actor, search string, limit, offset int) ([]*entity.Customer, int, error) {
	args := []any{search}
	where := `($1 = '' OR c.name ILIKE '%' || $1 || '%' OR c.phone ILIKE '%' || $1 || '%')`

	if actor.Role == access.RoleTechnician {
		if err := actor.Validate(); err != nil {
			return nil, 0, err
		}
		where += fmt.Sprintf(` AND c.company_id = $%d AND EXISTS (
			SELECT 1 FROM services s WHERE s.customer_id = c.id AND s.personnel_id = $%d)`,
			len(args)+1, len(args)+2)
		args = append(args, actor.CompanyID, actor.PersonnelID)
	} else {
		scope, scopeArgs, err := access.ScopeTenancy("c.company_id", "c.branch_id", actor, len(args)+1)
		if err != nil {
			return nil, 0, err
		}
		if scope != "" {
			where += " AND " + scope
			args = append(args, scopeArgs...)
		}
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM customers c WHERE %s`, where)
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM customers c WHERE %s ORDER BY c.name LIMIT $%d OFFSET $%d`,
		customerColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.BranchID, &c.Name, &c.Phone,
			&c.Address, &c.City, &c.District, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}
