package usecase

import (
	"context"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/domain/repository"
)

// DashboardUseCase arma el tablero con contadores ya filtrados por el alcance
// del actor: un técnico ve solo sus servicios, un branch_manager su sucursal.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Summary devuelve los contadores y los servicios recientes del actor.
func (uc *DashboardUseCase) Summary(ctx context.Context, actor access.Actor) (*dto.DashboardResponse, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	byStatus, err := uc.repo.CountServicesByStatus(ctx, actor)
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardResponse{
		OpenServices:       byStatus[entity.ServiceStatusOpen],
		InProgressServices: byStatus[entity.ServiceStatusInProgress],
		CompletedServices:  byStatus[entity.ServiceStatusCompleted],
		CancelledServices:  byStatus[entity.ServiceStatusCancelled],
	}

	// Los contadores de clientes y personal no aplican al técnico (no lista
	// esas entidades); su tablero muestra solo sus servicios.
	if actor.Role != access.RoleTechnician {
		if out.Customers, err = uc.repo.CountCustomers(ctx, actor); err != nil {
			return nil, err
		}
		if out.Personnel, err = uc.repo.CountPersonnel(ctx, actor); err != nil {
			return nil, err
		}
	}

	recent, err := uc.repo.RecentServices(ctx, actor, 10)
	if err != nil {
		return nil, err
	}
	out.RecentServices = make([]dto.ServiceResponse, 0, len(recent))
	for _, s := range recent {
		out.RecentServices = append(out.RecentServices, *serviceToResponse(s))
	}
	return out, nil
}
