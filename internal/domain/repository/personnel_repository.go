package repository

import (
	"context"

	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
)

// PersonnelRepository define el puerto de persistencia para Personnel.
type PersonnelRepository interface {
	Create(ctx context.Context, p *entity.Personnel) error
	GetByID(ctx context.Context, id string) (*entity.Personnel, error)
	GetByEmail(ctx context.Context, email string) (*entity.Personnel, error)
	Update(ctx context.Context, p *entity.Personnel) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, actor access.Actor, search string, limit, offset int) ([]*entity.Personnel, error)
}
