package repository

import (
	"context"

	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
)

// DefinitionRepository define el puerto de persistencia para los catálogos
// (devices, brands, models, complaints, operations). kind selecciona la tabla;
// las implementaciones deben validarlo contra la lista cerrada de entity.
type DefinitionRepository interface {
	Create(ctx context.Context, def *entity.Definition) error
	GetByID(ctx context.Context, kind, id string) (*entity.Definition, error)
	Update(ctx context.Context, def *entity.Definition) error
	Delete(ctx context.Context, kind, id string) error
	List(ctx context.Context, kind string, actor access.Actor) ([]*entity.Definition, error)
}
