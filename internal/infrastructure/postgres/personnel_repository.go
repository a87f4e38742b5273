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

var _ repository.PersonnelRepository = (*PersonnelRepo)(nil)

const personnelColumns = `p.id, p.company_id, COALESCE(p.branch_id::text, ''), p.name, COALESCE(p.phone, ''),
	p.email, p.password_hash, p.status, p.created_at, p.updated_at`

// PersonnelRepo implementación de PersonnelRepository (usable con pool o tx).
type PersonnelRepo struct {
	q Querier
}

// NewPersonnelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPersonnelRepository(q Querier) *PersonnelRepo {
	return &PersonnelRepo{q: q}
}

// Create persiste un nuevo técnico.
func (r *PersonnelRepo) Create(ctx context.Context, p *entity.Personnel) error {
	query := `
		INSERT INTO personnel (id, company_id, branch_id, name, phone, email, password_hash,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, nullable(p.BranchID), p.Name, nullable(p.Phone), p.Email, p.PasswordHash,
		p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert personnel: %w", err)
	}
	return nil
}

// GetByID obtiene un técnico por ID.
func (r *PersonnelRepo) GetByID(ctx context.Context, id string) (*entity.Personnel, error) {
	return r.getBy(ctx, "p.id = $1", id)
}

// GetByEmail obtiene un técnico por su email de credencial (login de personal).
func (r *PersonnelRepo) GetByEmail(ctx context.Context, email string) (*entity.Personnel, error) {
	return r.getBy(ctx, "p.email = $1", email)
}

func (r *PersonnelRepo) getBy(ctx context.Context, cond string, arg any) (*entity.Personnel, error) {
	query := fmt.Sprintf(`SELECT %s FROM personnel p WHERE %s`, personnelColumns, cond)
	var p entity.Personnel
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.CompanyID, &p.BranchID, &p.Name, &p.Phone, &p.Email, &p.PasswordHash,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get personnel: %w", err)
	}
	return &p, nil
}

// Update actualiza los datos del técnico.
func (r *PersonnelRepo) Update(ctx context.Context, p *entity.Personnel) error {
	query := `
		UPDATE personnel SET branch_id = $2, name = $3, phone = $4, email = $5, password_hash = $6,
			status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, nullable(p.BranchID), p.Name, nullable(p.Phone), p.Email, p.PasswordHash,
		p.Status, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update personnel: %w", err)
	}
	return nil
}

// Delete elimina un técnico por ID.
func (r *PersonnelRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM personnel WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete personnel: %w", err)
	}
	return nil
}

// List lista técnicos visibles para el actor, con búsqueda y paginación.
func (r *PersonnelRepo) List(ctx context.Context, actor access.Actor, search string, limit, offset int) ([]*entity.Personnel, error) {
	args := []any{search}
	scope, scopeArgs, err := access.ScopeTenancy("p.company_id", "p.branch_id", actor, len(args)+1)
	if err != nil {
		return nil, err
	}
	where := `($1 = '' OR p.name ILIKE '%' || $1 || '%' OR p.email ILIKE '%' || $1 || '%')`
	if scope != "" {
		where += " AND " + scope
		args = append(args, scopeArgs...)
	}
	query := fmt.Sprintf(`SELECT %s FROM personnel p WHERE %s ORDER BY p.name LIMIT $%d OFFSET $%d`,
		personnelColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list personnel: %w", err)
	}
	defer rows.Close()
	var list []*entity.Personnel
	for rows.Next() {
		var p entity.Personnel
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.BranchID, &p.Name, &p.Phone, &p.Email, &p.PasswordHash,
			&p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan personnel: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
