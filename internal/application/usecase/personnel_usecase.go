package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
)

// PersonnelUseCase gestión de personal técnico. company_admin gestiona toda la
// empresa; branch_manager solo su sucursal (el alta fuerza su branch_id).
type PersonnelUseCase struct {
	repo repository.PersonnelRepository
}

// NewPersonnelUseCase construye el caso de uso.
func NewPersonnelUseCase(repo repository.PersonnelRepository) *PersonnelUseCase {
	return &PersonnelUseCase{repo: repo}
}

// Create crea personal. Un branch_manager solo puede dar de alta en su sucursal.
func (uc *PersonnelUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreatePersonnelRequest) (*dto.PersonnelResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleBranchManager {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	branchID := in.BranchID
	if actor.Role == access.RoleBranchManager {
		branchID = actor.BranchID
	}
	if prev, _ := uc.repo.GetByEmail(ctx, in.Email); prev != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Personnel{
		ID:           uuid.New().String(),
		CompanyID:    actor.CompanyID,
		BranchID:     branchID,
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: string(hash),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return personnelToResponse(p), nil
}

// GetByID obtiene un registro de personal con chequeo de acceso directo.
// Un técnico solo puede ver su propio registro.
func (uc *PersonnelUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.PersonnelResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(p, actor); err != nil {
		return nil, err
	}
	return personnelToResponse(p), nil
}

// Update actualiza personal (company_admin o branch_manager de su sucursal).
func (uc *PersonnelUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdatePersonnelRequest) (*dto.PersonnelResponse, error) {
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleBranchManager && actor.Role != access.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(p, actor); err != nil {
		return nil, err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	p.Phone = in.Phone
	// Reasignar de sucursal es cosa de company_admin; un branch_manager no
	// puede mover personal fuera de su alcance.
	if actor.Role != access.RoleBranchManager {
		p.BranchID = in.BranchID
	}
	if in.Status != "" {
		p.Status = in.Status
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return personnelToResponse(p), nil
}

// Delete elimina personal con el mismo alcance que Update.
func (uc *PersonnelUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleBranchManager && actor.Role != access.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(p, actor); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List lista el personal visible para el actor.
func (uc *PersonnelUseCase) List(ctx context.Context, actor access.Actor, search string, limit, offset int) (*dto.PersonnelListResponse, error) {
	list, err := uc.repo.List(ctx, actor, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PersonnelResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *personnelToResponse(p))
	}
	return &dto.PersonnelListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func personnelToResponse(p *entity.Personnel) *dto.PersonnelResponse {
	if p == nil {
		return nil
	}
	return &dto.PersonnelResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		BranchID:  p.BranchID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
