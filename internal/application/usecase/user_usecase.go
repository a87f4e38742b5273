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

// UserUseCase gestión de cuentas administrativas. company_admin gestiona las
// de su empresa; super_admin las de cualquiera (y es el único que puede crear
// otros super_admin).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea una cuenta administrativa.
func (uc *UserUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, domain.ErrInvalidInput
	}
	role, err := access.ParseRole(in.Role)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if role == access.RoleTechnician {
		// Los técnicos viven en personnel, no en users.
		return nil, domain.ErrInvalidInput
	}
	if role == access.RoleSuperAdmin && actor.Role != access.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	companyID := in.CompanyID
	if actor.Role == access.RoleCompanyAdmin {
		companyID = actor.CompanyID
	}
	if role != access.RoleSuperAdmin && companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if role == access.RoleBranchManager && in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if prev, _ := uc.repo.FindByEmail(ctx, in.Email); prev != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		BranchID:     in.BranchID,
		Name:         name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         string(role),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

// GetByID obtiene una cuenta con chequeo de empresa.
func (uc *UserUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeRecord(user, actor); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

// Update actualiza una cuenta (company_admin de su empresa, super_admin cualquiera).
func (uc *UserUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role == access.RoleCompanyAdmin && user.CompanyID != actor.CompanyID {
		return nil, domain.ErrForbidden
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Role != "" {
		role, err := access.ParseRole(in.Role)
		if err != nil || role == access.RoleTechnician {
			return nil, domain.ErrInvalidInput
		}
		if role == access.RoleSuperAdmin && actor.Role != access.RoleSuperAdmin {
			return nil, domain.ErrForbidden
		}
		user.Role = string(role)
	}
	user.BranchID = in.BranchID
	if in.Status != "" {
		user.Status = in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

// Delete elimina una cuenta con el mismo alcance que Update.
func (uc *UserUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if actor.Role == access.RoleCompanyAdmin && user.CompanyID != actor.CompanyID {
		return domain.ErrForbidden
	}
	if user.ID == actor.UserID {
		// Nadie borra su propia cuenta en caliente.
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

// List lista las cuentas visibles para el actor.
func (uc *UserUseCase) List(ctx context.Context, actor access.Actor, limit, offset int) (*dto.UserListResponse, error) {
	if actor.Role != access.RoleCompanyAdmin && actor.Role != access.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx, actor, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *userToResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func userToResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		BranchID:  u.BranchID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
