package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/application/usecase"
	"github.com/jhoicas/servitec-api/pkg/logger"
)

// DefinitionHandler maneja las peticiones HTTP de catálogos. El parámetro :kind
// selecciona el catálogo (devices, brands, models, complaints, operations); el
// caso de uso lo valida contra la lista cerrada.
type DefinitionHandler struct {
	uc  *usecase.DefinitionUseCase
	log *logger.Logger
}

// NewDefinitionHandler construye el handler de catálogos.
func NewDefinitionHandler(uc *usecase.DefinitionUseCase, log *logger.Logger) *DefinitionHandler {
	return &DefinitionHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar un catálogo visible para el actor
// @Description  Sucursales y técnicos solo ven entradas a nivel empresa.
// @Tags         definitions
// @Produce      json
// @Param        kind  path  string  true  "devices|brands|models|complaints|operations"
// @Success      200  {array}  dto.DefinitionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/definitions/{kind} [get]
func (h *DefinitionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetActor(c), c.Params("kind"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear una entrada de catálogo (company_admin)
// @Tags         definitions
// @Accept       json
// @Produce      json
// @Param        kind  path  string                     true  "tipo de catálogo"
// @Param        body  body  dto.SaveDefinitionRequest  true  "nombre y sucursal opcional"
// @Success      201  {object}  dto.DefinitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/definitions/{kind} [post]
func (h *DefinitionHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveDefinitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), c.Params("kind"), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener una entrada de catálogo
// @Tags         definitions
// @Produce      json
// @Param        kind  path  string  true  "tipo de catálogo"
// @Param        id    path  string  true  "id de la entrada"
// @Success      200  {object}  dto.DefinitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/definitions/{kind}/{id} [get]
func (h *DefinitionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("kind"), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar una entrada de catálogo (company_admin)
// @Tags         definitions
// @Accept       json
// @Produce      json
// @Param        kind  path  string                     true  "tipo de catálogo"
// @Param        id    path  string                     true  "id de la entrada"
// @Param        body  body  dto.SaveDefinitionRequest  true  "nuevo nombre"
// @Success      200  {object}  dto.DefinitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/definitions/{kind}/{id} [put]
func (h *DefinitionHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveDefinitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("kind"), c.Params("id"), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una entrada de catálogo (company_admin)
// @Tags         definitions
// @Produce      json
// @Param        kind  path  string  true  "tipo de catálogo"
// @Param        id    path  string  true  "id de la entrada"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/definitions/{kind}/{id} [delete]
func (h *DefinitionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("kind"), c.Params("id")); err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "entrada eliminada"})
}
