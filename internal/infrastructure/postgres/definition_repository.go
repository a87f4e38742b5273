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

var _ repository.DefinitionRepository = (*DefinitionRepo)(nil)

// DefinitionRepo implementación de DefinitionRepository sobre las cinco tablas
// de catálogo. El nombre de tabla sale siempre de definitionTables (lista
// blanca), nunca de la petición.
type DefinitionRepo struct {
	q Querier
}

// NewDefinitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDefinitionRepository(q Querier) *DefinitionRepo {
	return &DefinitionRepo{q: q}
}

// Create persiste una entrada de catálogo.
func (r *DefinitionRepo) Create(ctx context.Context, d *entity.Definition) error {
	table, ok := definitionTables[d.Kind]
	if !ok {
		return domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, company_id, branch_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`, table)
	_, err := r.q.Exec(ctx, query,
		d.ID, d.CompanyID, nullable(d.BranchID), d.Name, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// GetByID obtiene una entrada del catálogo kind por ID.
func (r *DefinitionRepo) GetByID(ctx context.Context, kind, id string) (*entity.Definition, error) {
	table, ok := definitionTables[kind]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`
		SELECT d.id, d.company_id, COALESCE(d.branch_id::text, ''), d.name, d.created_at, d.updated_at
		FROM %s d WHERE d.id = $1`, table)
	var d entity.Definition
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.CompanyID, &d.BranchID, &d.Name, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	d.Kind = kind
	return &d, nil
}

// Update actualiza una entrada de catálogo.
func (r *DefinitionRepo) Update(ctx context.Context, d *entity.Definition) error {
	table, ok := definitionTables[d.Kind]
	if !ok {
		return domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`UPDATE %s SET name = $2, updated_at = $3 WHERE id = $1`, table)
	_, err := r.q.Exec(ctx, query, d.ID, d.Name, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

// Delete elimina una entrada del catálogo kind por ID.
func (r *DefinitionRepo) Delete(ctx context.Context, kind, id string) error {
	table, ok := definitionTables[kind]
	if !ok {
		return domain.ErrInvalidInput
	}
	if _, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

// List lista el catálogo kind visible para el actor. La asimetría de visibilidad
// (sucursales y técnicos ven solo definiciones a nivel empresa) la pone
// access.ScopeDefinitions.
func (r *DefinitionRepo) List(ctx context.Context, kind string, actor access.Actor) ([]*entity.Definition, error) {
	table, ok := definitionTables[kind]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	scope, args, err := access.ScopeDefinitions("d", actor, 1)
	if err != nil {
		return nil, err
	}
	where := "TRUE"
	if scope != "" {
		where = scope
	}
	query := fmt.Sprintf(`
		SELECT d.id, d.company_id, COALESCE(d.branch_id::text, ''), d.name, d.created_at, d.updated_at
		FROM %s d WHERE %s ORDER BY d.name`, table, where)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	var list []*entity.Definition
	for rows.Next() {
		var d entity.Definition
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.BranchID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		d.Kind = kind
		list = append(list, &d)
	}
	return list, rows.Err()
}
