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

// BranchUseCase gestión de sucursales. Alta, edición y baja son de
// company_admin (o super_admin); branch_manager solo consulta la suya.
type BranchUseCase struct {
	repo repository.BranchRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo}
}

// Create crea una sucursal con su credencial propia, dentro de la empresa del actor.
func (uc *BranchUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if actor.Role != access.RoleCompanyAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if prev, _ := uc.repo.GetByEmail(ctx, in.Email); prev != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:           uuid.New().String(),
		CompanyID:    actor.CompanyID,
		Name:         in.Name,
		ManagerName:  in.ManagerName,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: string(hash),
		Address:      in.Address,
		City:         in.City,
		District:     in.District,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branchToResponse(branch), nil
}

// GetByID obtiene una sucursal aplicando el chequeo de acceso directo.
func (uc *BranchUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(branch, actor); err != nil {
		return nil, err
	}
	return branchToResponse(branch), nil
}

// Update actualiza una sucursal (company_admin o super_admin).
func (uc *BranchUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	branch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(branch, actor); err != nil {
		return nil, err
	}
	if in.Name != "" {
		branch.Name = in.Name
	}
	branch.ManagerName = in.ManagerName
	branch.Phone = in.Phone
	branch.Address = in.Address
	branch.City = in.City
	branch.District = in.District
	if in.Status != "" {
		branch.Status = in.Status
	}
	branch.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branchToResponse(branch), nil
}

// ResetPassword reemplaza la credencial de la sucursal (company_admin).
func (uc *BranchUseCase) ResetPassword(ctx context.Context, actor access.Actor, id string, in dto.ResetBranchPasswordRequest) error {
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	if len(in.Password) < 8 {
		return domain.ErrInvalidInput
	}
	branch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(branch, actor); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	branch.PasswordHash = string(hash)
	branch.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, branch)
}

// Delete elimina una sucursal (company_admin o super_admin).
func (uc *BranchUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	branch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(branch, actor); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List lista sucursales visibles para el actor, con búsqueda y paginación.
func (uc *BranchUseCase) List(ctx context.Context, actor access.Actor, search string, limit, offset int) (*dto.BranchListResponse, error) {
	list, err := uc.repo.List(ctx, actor, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *branchToResponse(b))
	}
	return &dto.BranchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func branchToResponse(b *entity.Branch) *dto.BranchResponse {
	if b == nil {
		return nil
	}
	return &dto.BranchResponse{
		ID:          b.ID,
		CompanyID:   b.CompanyID,
		Name:        b.Name,
		ManagerName: b.ManagerName,
		Phone:       b.Phone,
		Email:       b.Email,
		Address:     b.Address,
		City:        b.City,
		District:    b.District,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
