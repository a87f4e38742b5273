package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/application/usecase"
	"github.com/jhoicas/servitec-api/pkg/logger"
)

// ServiceHandler maneja las peticiones HTTP de servicios (tickets de campo).
type ServiceHandler struct {
	uc    *usecase.ServiceUseCase
	pdfUC *usecase.ServiceOrderPDFUseCase
	log   *logger.Logger
}

// NewServiceHandler construye el handler de servicios.
func NewServiceHandler(uc *usecase.ServiceUseCase, pdfUC *usecase.ServiceOrderPDFUseCase, log *logger.Logger) *ServiceHandler {
	return &ServiceHandler{uc: uc, pdfUC: pdfUC, log: log}
}

// Create godoc
// @Summary      Crear un servicio (upsert del cliente por teléfono en la misma transacción)
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceRequest  true  "datos del servicio y del cliente"
// @Success      201  {object}  dto.ServiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
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
// @Summary      Listar servicios visibles para el actor con filtros
// @Tags         services
// @Produce      json
// @Param        search     query  string  false  "descripción, nombre o teléfono del cliente"
// @Param        status     query  string  false  "open|in_progress|completed|cancelled"
// @Param        personnel  query  string  false  "id del técnico asignado"
// @Param        date_from  query  string  false  "YYYY-MM-DD"
// @Param        date_to    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.ServiceListResponse
// @Router       /api/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	var in dto.ServiceSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de búsqueda inválidos"})
	}
	in.DefaultPage()
	out, err := h.uc.List(c.Context(), GetActor(c), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un servicio
// @Tags         services
// @Produce      json
// @Param        id  path  string  true  "id del servicio"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [get]
func (h *ServiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar un servicio (el técnico asignado solo estado y descripción)
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "id del servicio"
// @Param        body  body  dto.UpdateServiceRequest  true  "datos a actualizar"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [put]
func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar o reasignar técnico (roles de gestión)
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "id del servicio"
// @Param        body  body  dto.AssignServiceRequest  true  "id del técnico"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/services/{id}/assign [put]
func (h *ServiceHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Assign(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un servicio (roles de gestión)
// @Tags         services
// @Produce      json
// @Param        id  path  string  true  "id del servicio"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [delete]
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "servicio eliminado"})
}

// PDF godoc
// @Summary      Orden de servicio imprimible (PDF A4)
// @Tags         services
// @Produce      application/pdf
// @Param        id  path  string  true  "id del servicio"
// @Success      200  {file}  file
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/services/{id}/pdf [get]
func (h *ServiceHandler) PDF(c *fiber.Ctx) error {
	data, err := h.pdfUC.Generate(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="orden-servicio.pdf"`)
	return c.Send(data)
}
