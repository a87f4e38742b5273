package repository

import (
	"context"

	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch.
// List aplica el filtro de acceso del actor (access.ScopeTenancy).
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	GetByEmail(ctx context.Context, email string) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, actor access.Actor, search string, limit, offset int) ([]*entity.Branch, error)
}
