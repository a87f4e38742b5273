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

// DefinitionUseCase gestión de catálogos (dispositivos, marcas, modelos,
// averías, operaciones). Solo company_admin escribe; los catálogos de sucursal
// no son visibles para branch_manager ni technician (asimetría deliberada,
// ver access.ScopeDefinitions).
type DefinitionUseCase struct {
	repo repository.DefinitionRepository
}

// NewDefinitionUseCase construye el caso de uso.
func NewDefinitionUseCase(repo repository.DefinitionRepository) *DefinitionUseCase {
	return &DefinitionUseCase{repo: repo}
}

// Create crea una entrada de catálogo en la empresa del actor.
func (uc *DefinitionUseCase) Create(ctx context.Context, actor access.Actor, kind string, in dto.SaveDefinitionRequest) (*dto.DefinitionResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if actor.Role != access.RoleCompanyAdmin {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidDefinitionKind(kind) || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	def := &entity.Definition{
		ID:        uuid.New().String(),
		CompanyID: actor.CompanyID,
		BranchID:  in.BranchID,
		Kind:      kind,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, def); err != nil {
		return nil, err
	}
	return definitionToResponse(def), nil
}

// GetByID obtiene una entrada de catálogo con el chequeo asimétrico.
func (uc *DefinitionUseCase) GetByID(ctx context.Context, actor access.Actor, kind, id string) (*dto.DefinitionResponse, error) {
	if !entity.ValidDefinitionKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	def, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeDefinition(def, actor); err != nil {
		return nil, err
	}
	return definitionToResponse(def), nil
}

// Update renombra o reubica una entrada de catálogo (company_admin).
func (uc *DefinitionUseCase) Update(ctx context.Context, actor access.Actor, kind, id string, in dto.SaveDefinitionRequest) (*dto.DefinitionResponse, error) {
	if actor.Role != access.RoleCompanyAdmin {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidDefinitionKind(kind) || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	def, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.AuthorizeDefinition(def, actor); err != nil {
		return nil, err
	}
	def.Name = in.Name
	def.BranchID = in.BranchID
	def.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, def); err != nil {
		return nil, err
	}
	return definitionToResponse(def), nil
}

// Delete elimina una entrada de catálogo (company_admin).
func (uc *DefinitionUseCase) Delete(ctx context.Context, actor access.Actor, kind, id string) error {
	if actor.Role != access.RoleCompanyAdmin {
		return domain.ErrForbidden
	}
	if !entity.ValidDefinitionKind(kind) {
		return domain.ErrInvalidInput
	}
	def, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return err
	}
	if def == nil {
		return domain.ErrNotFound
	}
	if err := access.AuthorizeDefinition(def, actor); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, kind, id)
}

// List lista un catálogo según la visibilidad del actor.
func (uc *DefinitionUseCase) List(ctx context.Context, actor access.Actor, kind string) ([]dto.DefinitionResponse, error) {
	if !entity.ValidDefinitionKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, kind, actor)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DefinitionResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *definitionToResponse(d))
	}
	return items, nil
}

func definitionToResponse(d *entity.Definition) *dto.DefinitionResponse {
	if d == nil {
		return nil
	}
	return &dto.DefinitionResponse{
		ID:        d.ID,
		CompanyID: d.CompanyID,
		BranchID:  d.BranchID,
		Kind:      d.Kind,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
