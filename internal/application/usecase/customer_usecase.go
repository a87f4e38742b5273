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

// CustomerUseCase consulta y mantenimiento de clientes. El alta ocurre en el
// flujo de servicios (upsert por teléfono dentro de la empresa).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// GetByID obtiene un cliente con chequeo de acceso directo.
func (uc *CustomerUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(customer, actor); err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

// Update actualiza los datos de contacto de un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(customer, actor); err != nil {
		return nil, err
	}
	if in.Name != "" {
		customer.Name = in.Name
	}
	customer.Address = in.Address
	customer.City = in.City
	customer.District = in.District
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

// Delete elimina un cliente (company_admin o super_admin).
func (uc *CustomerUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(customer, actor); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List lista los clientes visibles para el actor, con búsqueda por subcadena
// (nombre o teléfono) y paginación.
func (uc *CustomerUseCase) List(ctx context.Context, actor access.Actor, search string, limit, offset int) (*dto.CustomerListResponse, error) {
	list, total, err := uc.repo.List(ctx, actor, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *customerToResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

func customerToResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		BranchID:  c.BranchID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		District:  c.District,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
