package usecase

import (
	"context"

	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
)

// ServiceOrderGenerator es el puerto del generador de la orden de servicio
// imprimible. La implementación (Maroto) vive en infrastructure.
type ServiceOrderGenerator interface {
	GenerateServiceOrder(
		ctx context.Context,
		svc *entity.Service,
		company *entity.Company,
		customer *entity.Customer,
		technician *entity.Personnel,
	) ([]byte, error)
}

// ServiceOrderPDFUseCase arma la orden de servicio en PDF (ficha imprimible
// que el técnico lleva a campo). Aplica el mismo chequeo de acceso directo
// que la vista del servicio.
type ServiceOrderPDFUseCase struct {
	serviceRepo   repository.ServiceRepository
	companyRepo   repository.CompanyRepository
	customerRepo  repository.CustomerRepository
	personnelRepo repository.PersonnelRepository
	generator     ServiceOrderGenerator
}

// NewServiceOrderPDFUseCase construye el caso de uso.
func NewServiceOrderPDFUseCase(
	serviceRepo repository.ServiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	personnelRepo repository.PersonnelRepository,
	generator ServiceOrderGenerator,
) *ServiceOrderPDFUseCase {
	return &ServiceOrderPDFUseCase{
		serviceRepo:   serviceRepo,
		companyRepo:   companyRepo,
		customerRepo:  customerRepo,
		personnelRepo: personnelRepo,
		generator:     generator,
	}
}

// Generate devuelve los bytes del PDF de la orden de servicio.
func (uc *ServiceOrderPDFUseCase) Generate(ctx context.Context, actor access.Actor, serviceID string) ([]byte, error) {
	svc, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(svc, actor); err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, svc.CompanyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ctx, svc.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	var technician *entity.Personnel
	if svc.PersonnelID != "" {
		// La orden sale igualmente si el técnico ya no existe.
		technician, _ = uc.personnelRepo.GetByID(ctx, svc.PersonnelID)
	}
	return uc.generator.GenerateServiceOrder(ctx, svc, company, customer, technician)
}
