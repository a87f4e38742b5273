package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, tax_number, COALESCE(address, ''), COALESCE(city, ''), COALESCE(district, ''),
	COALESCE(phone, ''), COALESCE(email, ''), password_hash, service_start_date, service_end_date, status, created_at, updated_at`

// CompanyRepo implementación de CompanyRepository (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, tax_number, address, city, district, phone, email,
			password_hash, service_start_date, service_end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.TaxNumber, nullable(c.Address), nullable(c.City), nullable(c.District),
		nullable(c.Phone), nullable(c.Email), c.PasswordHash,
		c.ServiceStartDate, c.ServiceEndDate, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByTaxNumber obtiene una empresa por NIT.
func (r *CompanyRepo) GetByTaxNumber(ctx context.Context, taxNumber string) (*entity.Company, error) {
	return r.getBy(ctx, "tax_number = $1", taxNumber)
}

// GetByEmail obtiene una empresa por su email de credencial.
func (r *CompanyRepo) GetByEmail(ctx context.Context, email string) (*entity.Company, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *CompanyRepo) getBy(ctx context.Context, cond string, arg any) (*entity.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE %s`, companyColumns, cond)
	var c entity.Company
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.TaxNumber, &c.Address, &c.City, &c.District,
		&c.Phone, &c.Email, &c.PasswordHash, &c.ServiceStartDate, &c.ServiceEndDate,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos y la ventana de suscripción de la empresa.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, address = $3, city = $4, district = $5, phone = $6,
			email = $7, service_start_date = $8, service_end_date = $9, status = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, nullable(c.Address), nullable(c.City), nullable(c.District), nullable(c.Phone),
		nullable(c.Email), c.ServiceStartDate, c.ServiceEndDate, c.Status, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List lista empresas con búsqueda por nombre o NIT y paginación (solo super_admin llega aquí).
func (r *CompanyRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Company, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM companies
		WHERE ($1 = '' OR name ILIKE '%%' || $1 || '%%' OR tax_number ILIKE '%%' || $1 || '%%')
		ORDER BY name LIMIT $2 OFFSET $3`, companyColumns)
	rows, err := r.q.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.TaxNumber, &c.Address, &c.City, &c.District,
			&c.Phone, &c.Email, &c.PasswordHash, &c.ServiceStartDate, &c.ServiceEndDate,
			&c.Status, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ──────────────────────────────────────────────────────────────────────────────

var _ repository.CompanyPurgeRepository = (*CompanyPurgeRepo)(nil)

// definitionTables mapea cada tipo de catálogo a su tabla. Lista blanca: los
// nombres de tabla jamás se interpolan desde entrada externa.
var definitionTables = map[string]string{
	entity.DefinitionDevices:    "devices",
	entity.DefinitionBrands:     "brands",
	entity.DefinitionModels:     "models",
	entity.DefinitionComplaints: "complaints",
	entity.DefinitionOperations: "operations",
}

// CompanyPurgeRepo ejecuta los pasos del borrado en cascada de una empresa.
// Pensado para usarse atado a una transacción (ver TxRunner.RunPurge).
type CompanyPurgeRepo struct {
	q Querier
}

// NewCompanyPurgeRepository construye el adaptador de purga.
func NewCompanyPurgeRepository(q Querier) *CompanyPurgeRepo {
	return &CompanyPurgeRepo{q: q}
}

// CountServices cuenta los servicios registrados de la empresa.
func (r *CompanyPurgeRepo) CountServices(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM services WHERE company_id = $1`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return n, nil
}

// DeleteDefinitions borra todas las filas del catálogo kind de la empresa.
func (r *CompanyPurgeRepo) DeleteDefinitions(ctx context.Context, kind, companyID string) error {
	table, ok := definitionTables[kind]
	if !ok {
		return domain.ErrInvalidInput
	}
	if _, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE company_id = $1`, table), companyID); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

// DeleteCustomers borra los clientes de la empresa.
func (r *CompanyPurgeRepo) DeleteCustomers(ctx context.Context, companyID string) error {
	return r.deleteByCompany(ctx, "customers", companyID)
}

// DeleteUsers borra las cuentas administrativas de la empresa.
func (r *CompanyPurgeRepo) DeleteUsers(ctx context.Context, companyID string) error {
	return r.deleteByCompany(ctx, "users", companyID)
}

// DeletePersonnel borra el personal técnico de la empresa.
func (r *CompanyPurgeRepo) DeletePersonnel(ctx context.Context, companyID string) error {
	return r.deleteByCompany(ctx, "personnel", companyID)
}

// DeleteBranches borra las sucursales de la empresa.
func (r *CompanyPurgeRepo) DeleteBranches(ctx context.Context, companyID string) error {
	return r.deleteByCompany(ctx, "branches", companyID)
}

// DeleteCompany borra la fila de la empresa.
func (r *CompanyPurgeRepo) DeleteCompany(ctx context.Context, companyID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, companyID); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func (r *CompanyPurgeRepo) deleteByCompany(ctx context.Context, table, companyID string) error {
	if _, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE company_id = $1`, table), companyID); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}
