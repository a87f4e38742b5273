package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
)

// ServiceTxRunner abre la transacción del flujo de servicios: el upsert del
// cliente y la escritura del servicio se confirman juntos o se revierten juntos.
type ServiceTxRunner interface {
	Run(ctx context.Context, fn func(customerRepo repository.CustomerRepository, serviceRepo repository.ServiceRepository) error) error
}

// ServiceUseCase casos de uso de tickets de servicio: alta con upsert de
// cliente, búsqueda filtrada, detalle, edición, asignación de técnico y baja.
type ServiceUseCase struct {
	txRunner ServiceTxRunner
	repo     repository.ServiceRepository
	now      func() time.Time
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(txRunner ServiceTxRunner, repo repository.ServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{txRunner: txRunner, repo: repo, now: time.Now}
}

// Create da de alta un servicio. Si ya existe un cliente con ese teléfono en
// la empresa, se actualizan su nombre y dirección; si no, se crea. Cliente y
// servicio se escriben en una sola transacción. Otra empresa con un cliente
// del mismo teléfono no se ve afectada.
func (uc *ServiceUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleBranchManager {
		return nil, domain.ErrForbidden
	}
	if in.CustomerName == "" || in.CustomerPhone == "" {
		return nil, domain.ErrInvalidInput
	}
	branchID := in.BranchID
	if actor.Role == access.RoleBranchManager {
		branchID = actor.BranchID
	}
	if branchID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	serviceDate := now
	if in.ServiceDate != nil {
		serviceDate = *in.ServiceDate
	}
	svc := &entity.Service{
		ID:          uuid.New().String(),
		CompanyID:   actor.CompanyID,
		BranchID:    branchID,
		PersonnelID: in.PersonnelID,
		DeviceID:    in.DeviceID,
		BrandID:     in.BrandID,
		ModelID:     in.ModelID,
		ComplaintID: in.ComplaintID,
		OperationID: in.OperationID,
		Description: in.Description,
		Status:      entity.ServiceStatusOpen,
		Amount:      in.Amount,
		Warranty:    in.Warranty,
		ServiceDate: serviceDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(customerRepo repository.CustomerRepository, serviceRepo repository.ServiceRepository) error {
		customer, err := customerRepo.GetByCompanyAndPhone(ctx, actor.CompanyID, in.CustomerPhone)
		if err != nil {
			return err
		}
		if customer != nil {
			// Upsert: mismo teléfono en la misma empresa actualiza, no duplica.
			customer.Name = in.CustomerName
			customer.Address = in.CustomerAddress
			customer.City = in.CustomerCity
			customer.District = in.CustomerDistrict
			customer.UpdatedAt = now
			if err := customerRepo.Update(ctx, customer); err != nil {
				return err
			}
		} else {
			customer = &entity.Customer{
				ID:        uuid.New().String(),
				CompanyID: actor.CompanyID,
				BranchID:  branchID,
				Name:      in.CustomerName,
				Phone:     in.CustomerPhone,
				Address:   in.CustomerAddress,
				City:      in.CustomerCity,
				District:  in.CustomerDistrict,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := customerRepo.Create(ctx, customer); err != nil {
				return err
			}
		}
		svc.CustomerID = customer.ID
		return serviceRepo.Create(ctx, svc)
	})
	if err != nil {
		return nil, err
	}
	return serviceToResponse(svc), nil
}

// GetByID obtiene un servicio con chequeo de acceso directo: un id válido de
// otra sucursal u otra empresa se deniega aunque la fila exista.
func (uc *ServiceUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(svc, actor); err != nil {
		return nil, err
	}
	return serviceToResponse(svc), nil
}

// Update edita un servicio. El técnico asignado solo puede cambiar estado y
// descripción; los roles de gestión editan el resto de campos.
func (uc *ServiceUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(svc, actor); err != nil {
		return nil, err
	}
	if in.Status != "" {
		if !entity.ValidServiceStatus(in.Status) {
			return nil, domain.ErrInvalidInput
		}
		svc.Status = in.Status
	}
	if in.Description != "" {
		svc.Description = in.Description
	}
	if actor.Role != access.RoleTechnician {
		svc.PersonnelID = in.PersonnelID
		svc.DeviceID = in.DeviceID
		svc.BrandID = in.BrandID
		svc.ModelID = in.ModelID
		svc.ComplaintID = in.ComplaintID
		svc.OperationID = in.OperationID
		svc.Amount = in.Amount
		svc.Warranty = in.Warranty
	}
	svc.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return serviceToResponse(svc), nil
}

// Assign asigna o reasigna el técnico del servicio (roles de gestión).
func (uc *ServiceUseCase) Assign(ctx context.Context, actor access.Actor, id string, in dto.AssignServiceRequest) (*dto.ServiceResponse, error) {
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleBranchManager && actor.Role != access.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(svc, actor); err != nil {
		return nil, err
	}
	svc.PersonnelID = in.PersonnelID
	if svc.Status == entity.ServiceStatusOpen && in.PersonnelID != "" {
		svc.Status = entity.ServiceStatusInProgress
	}
	svc.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return serviceToResponse(svc), nil
}

// Delete elimina un servicio (roles de gestión).
func (uc *ServiceUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleBranchManager && actor.Role != access.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	svc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if svc == nil {
		return domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(svc, actor); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List busca servicios con los filtros dados; el alcance del actor se aplica
// siempre en la consulta, encima de cualquier filtro pedido.
func (uc *ServiceUseCase) List(ctx context.Context, actor access.Actor, in dto.ServiceSearchRequest) (*dto.ServiceListResponse, error) {
	in.DefaultPage()
	f := repository.ServiceFilter{
		Search:      in.Search,
		Status:      in.Status,
		PersonnelID: in.PersonnelID,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	if in.Status != "" && !entity.ValidServiceStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.DateFrom != "" {
		t, err := time.Parse("2006-01-02", in.DateFrom)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.DateFrom = &t
	}
	if in.DateTo != "" {
		t, err := time.Parse("2006-01-02", in.DateTo)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// Inclusivo hasta el final del día.
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.DateTo = &end
	}
	list, total, err := uc.repo.List(ctx, actor, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *serviceToResponse(s))
	}
	return &dto.ServiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

func serviceToResponse(s *entity.Service) *dto.ServiceResponse {
	if s == nil {
		return nil
	}
	return &dto.ServiceResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		BranchID:    s.BranchID,
		CustomerID:  s.CustomerID,
		PersonnelID: s.PersonnelID,
		DeviceID:    s.DeviceID,
		BrandID:     s.BrandID,
		ModelID:     s.ModelID,
		ComplaintID: s.ComplaintID,
		OperationID: s.OperationID,
		Description: s.Description,
		Status:      s.Status,
		Amount:      s.Amount,
		Warranty:    s.Warranty,
		ServiceDate: s.ServiceDate,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
