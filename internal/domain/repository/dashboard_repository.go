package repository

import (
	"context"

	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
)

// DashboardRepository agrupa las consultas de solo lectura del tablero.
// Todas aplican el filtro de acceso del actor.
type DashboardRepository interface {
	CountServicesByStatus(ctx context.Context, actor access.Actor) (map[string]int, error)
	CountCustomers(ctx context.Context, actor access.Actor) (int, error)
	CountPersonnel(ctx context.Context, actor access.Actor) (int, error)
	RecentServices(ctx context.Context, actor access.Actor, limit int) ([]*entity.Service, error)
}
