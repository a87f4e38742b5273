package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servitec-api/internal/application/usecase"
	"github.com/jhoicas/servitec-api/pkg/logger"
)

// DashboardHandler maneja el resumen operativo.
type DashboardHandler struct {
	uc  *usecase.DashboardUseCase
	log *logger.Logger
}

func NewDashboardHandler(uc *usecase.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Summary godoc
// @Summary      Resumen operativo según el alcance del actor
// @Description  Conteos de servicios por estado, clientes, personal y servicios recientes.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), GetActor(c))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}
