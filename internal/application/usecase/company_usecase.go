package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
)

// PurgeTxRunner abre la transacción del borrado en cascada de una empresa:
// o se eliminan todas las filas dependientes y la empresa, o ninguna.
type PurgeTxRunner interface {
	Run(ctx context.Context, fn func(purge repository.CompanyPurgeRepository) error) error
}

// CompanyUseCase gestión de empresas. Listado, detalle y borrado en cascada
// son operaciones de super_admin; company_admin solo ve y edita la suya.
type CompanyUseCase struct {
	repo    repository.CompanyRepository
	purgeTx PurgeTxRunner
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, purgeTx PurgeTxRunner) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, purgeTx: purgeTx}
}

// List lista empresas con búsqueda y paginación (solo super_admin).
func (uc *CompanyUseCase) List(ctx context.Context, actor access.Actor, search string, limit, offset int) (*dto.CompanyListResponse, error) {
	if actor.Role != access.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *companyToResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID obtiene una empresa: super_admin cualquiera, company_admin la propia.
func (uc *CompanyUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.CompanyResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if actor.Role != access.RoleSuperAdmin && actor.CompanyID != id {
		return nil, domain.ErrForbidden
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return companyToResponse(company), nil
}

// Update actualiza los datos de la empresa: super_admin cualquiera,
// company_admin la propia (sin tocar la ventana de suscripción).
func (uc *CompanyUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if actor.Role != access.RoleSuperAdmin {
		if actor.Role != access.RoleCompanyAdmin || actor.CompanyID != id {
			return nil, domain.ErrForbidden
		}
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		company.Name = in.Name
	}
	company.Address = in.Address
	company.City = in.City
	company.District = in.District
	company.Phone = in.Phone
	company.Email = in.Email
	if in.Status != "" && actor.Role == access.RoleSuperAdmin {
		company.Status = in.Status
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return companyToResponse(company), nil
}

// ExtendSubscription ajusta la ventana de suscripción (solo super_admin).
func (uc *CompanyUseCase) ExtendSubscription(ctx context.Context, actor access.Actor, id string, in dto.ExtendSubscriptionRequest) (*dto.CompanyResponse, error) {
	if actor.Role != access.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	if in.ServiceEndDate.Before(in.ServiceStartDate) {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	company.ServiceStartDate = in.ServiceStartDate
	company.ServiceEndDate = in.ServiceEndDate
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return companyToResponse(company), nil
}

// Delete elimina la empresa y todas sus filas dependientes en una sola
// transacción, en orden seguro para las FK: catálogos (models → brands →
// devices → complaints → operations) → clientes → usuarios → personal →
// sucursales → empresa. Si quedan servicios registrados, aborta completo
// con ErrCompanyHasServices y no borra nada.
func (uc *CompanyUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if actor.Role != access.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return uc.purgeTx.Run(ctx, func(purge repository.CompanyPurgeRepository) error {
		n, err := purge.CountServices(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrCompanyHasServices
		}
		// El orden importa: models referencia brands/devices, y todo lo demás
		// referencia company; invertirlo viola las FK.
		for _, kind := range []string{
			entity.DefinitionModels,
			entity.DefinitionBrands,
			entity.DefinitionDevices,
			entity.DefinitionComplaints,
			entity.DefinitionOperations,
		} {
			if err := purge.DeleteDefinitions(ctx, kind, id); err != nil {
				return err
			}
		}
		if err := purge.DeleteCustomers(ctx, id); err != nil {
			return err
		}
		if err := purge.DeleteUsers(ctx, id); err != nil {
			return err
		}
		if err := purge.DeletePersonnel(ctx, id); err != nil {
			return err
		}
		if err := purge.DeleteBranches(ctx, id); err != nil {
			return err
		}
		return purge.DeleteCompany(ctx, id)
	})
}

func companyToResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:               c.ID,
		Name:             c.Name,
		TaxNumber:        c.TaxNumber,
		Address:          c.Address,
		City:             c.City,
		District:         c.District,
		Phone:            c.Phone,
		Email:            c.Email,
		ServiceStartDate: c.ServiceStartDate,
		ServiceEndDate:   c.ServiceEndDate,
		Status:           c.Status,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
