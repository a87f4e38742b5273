package repository

import (
	"context"

	"github.com/jhoicas/servitec-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByTaxNumber(ctx context.Context, taxNumber string) (*entity.Company, error)
	GetByEmail(ctx context.Context, email string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Company, error)
}

// CompanyPurgeRepository es el puerto del borrado en cascada de una empresa.
// El caso de uso dicta el orden de las llamadas (FK-safe); la implementación
// ejecuta cada paso dentro de la transacción en curso.
type CompanyPurgeRepository interface {
	CountServices(ctx context.Context, companyID string) (int, error)
	DeleteDefinitions(ctx context.Context, kind, companyID string) error
	DeleteCustomers(ctx context.Context, companyID string) error
	DeleteUsers(ctx context.Context, companyID string) error
	DeletePersonnel(ctx context.Context, companyID string) error
	DeleteBranches(ctx context.Context, companyID string) error
	DeleteCompany(ctx context.Context, companyID string) error
}
