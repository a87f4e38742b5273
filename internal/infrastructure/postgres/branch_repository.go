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

var _ repository.BranchRepository = (*BranchRepo)(nil)

const branchColumns = `b.id, b.company_id, b.name, COALESCE(b.manager_name, ''), COALESCE(b.phone, ''),
	b.email, b.password_hash, COALESCE(b.address, ''), COALESCE(b.city, ''), COALESCE(b.district, ''),
	b.status, b.created_at, b.updated_at`

// BranchRepo implementación de BranchRepository (usable con pool o tx).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create persiste una nueva sucursal.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	query := `
		INSERT INTO branches (id, company_id, name, manager_name, phone, email, password_hash,
			address, city, district, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.CompanyID, b.Name, nullable(b.ManagerName), nullable(b.Phone), b.Email, b.PasswordHash,
		nullable(b.Address), nullable(b.City), nullable(b.District), b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	return r.getBy(ctx, "b.id = $1", id)
}

// GetByEmail obtiene una sucursal por su email de credencial (login de sucursal).
func (r *BranchRepo) GetByEmail(ctx context.Context, email string) (*entity.Branch, error) {
	return r.getBy(ctx, "b.email = $1", email)
}

func (r *BranchRepo) getBy(ctx context.Context, cond string, arg any) (*entity.Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM branches b WHERE %s`, branchColumns, cond)
	var b entity.Branch
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&b.ID, &b.CompanyID, &b.Name, &b.ManagerName, &b.Phone, &b.Email, &b.PasswordHash,
		&b.Address, &b.City, &b.District, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// Update actualiza la sucursal (incluye password_hash para el reset de clave).
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	query := `
		UPDATE branches SET name = $2, manager_name = $3, phone = $4, email = $5, password_hash = $6,
			address = $7, city = $8, district = $9, status = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Name, nullable(b.ManagerName), nullable(b.Phone), b.Email, b.PasswordHash,
		nullable(b.Address), nullable(b.City), nullable(b.District), b.Status, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update branch: %w", err)
	}
	return nil
}

// Delete elimina una sucursal por ID.
func (r *BranchRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	return nil
}

// List lista sucursales visibles para el actor, con búsqueda y paginación.
// Para una sucursal el "branch propio" es su propio id (columna b.id).
func (r *BranchRepo) List(ctx context.Context, actor access.Actor, search string, limit, offset int) ([]*entity.Branch, error) {
	args := []any{search}
	scope, scopeArgs, err := access.ScopeTenancy("b.company_id", "b.id", actor, len(args)+1)
	if err != nil {
		return nil, err
	}
	where := `($1 = '' OR b.name ILIKE '%' || $1 || '%' OR b.city ILIKE '%' || $1 || '%')`
	if scope != "" {
		where += " AND " + scope
		args = append(args, scopeArgs...)
	}
	query := fmt.Sprintf(`SELECT %s FROM branches b WHERE %s ORDER BY b.name LIMIT $%d OFFSET $%d`,
		branchColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(
			&b.ID, &b.CompanyID, &b.Name, &b.ManagerName, &b.Phone, &b.Email, &b.PasswordHash,
			&b.Address, &b.City, &b.District, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
