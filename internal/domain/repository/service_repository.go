package repository

import (
	"context"
	"time"

	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
)

// ServiceFilter son los criterios de búsqueda del listado de servicios.
// Todos opcionales; el filtro de autorización del actor se aplica siempre aparte.
type ServiceFilter struct {
	Search      string // subcadena sobre descripción / nombre / teléfono del cliente
	Status      string
	PersonnelID string
	DateFrom    *time.Time
	DateTo      *time.Time
	Limit       int
	Offset      int
}

// ServiceRepository define el puerto de persistencia para Service.
// List devuelve además el total sin paginar para los metadatos de página.
type ServiceRepository interface {
	Create(ctx context.Context, svc *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	Update(ctx context.Context, svc *entity.Service) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, actor access.Actor, f ServiceFilter) ([]*entity.Service, int, error)
}
