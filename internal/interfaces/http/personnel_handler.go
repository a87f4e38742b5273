package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/application/usecase"
	"github.com/jhoicas/servitec-api/pkg/logger"
)

// PersonnelHandler maneja las peticiones HTTP de personal técnico.
type PersonnelHandler struct {
	uc  *usecase.PersonnelUseCase
	log *logger.Logger
}

// NewPersonnelHandler construye el handler de personal.
func NewPersonnelHandler(uc *usecase.PersonnelUseCase, log *logger.Logger) *PersonnelHandler {
	return &PersonnelHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear un técnico (company_admin o branch_manager)
// @Tags         personnel
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePersonnelRequest  true  "datos del técnico"
// @Success      201  {object}  dto.PersonnelResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/personnel [post]
func (h *PersonnelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePersonnelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar técnicos visibles para el actor
// @Tags         personnel
// @Produce      json
// @Param        search  query  string  false  "nombre o email"
// @Success      200  {object}  dto.PersonnelListResponse
// @Router       /api/personnel [get]
func (h *PersonnelHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de página inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), GetActor(c), c.Query("search"), page.Limit, page.Offset)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un técnico (el técnico puede ver su propio registro)
// @Tags         personnel
// @Produce      json
// @Param        id  path  string  true  "id del técnico"
// @Success      200  {object}  dto.PersonnelResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/personnel/{id} [get]
func (h *PersonnelHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar un técnico
// @Tags         personnel
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "id del técnico"
// @Param        body  body  dto.UpdatePersonnelRequest  true  "datos a actualizar"
// @Success      200  {object}  dto.PersonnelResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/personnel/{id} [put]
func (h *PersonnelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePersonnelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un técnico
// @Tags         personnel
// @Produce      json
// @Param        id  path  string  true  "id del técnico"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/personnel/{id} [delete]
func (h *PersonnelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "técnico eliminado"})
}
