package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/application/usecase"
	"github.com/jhoicas/servitec-api/pkg/logger"
)

// BranchHandler maneja las peticiones HTTP de sucursales.
type BranchHandler struct {
	uc  *usecase.BranchUseCase
	log *logger.Logger
}

// NewBranchHandler construye el handler de sucursales.
func NewBranchHandler(uc *usecase.BranchUseCase, log *logger.Logger) *BranchHandler {
	return &BranchHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear una sucursal (company_admin)
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBranchRequest  true  "datos de la sucursal, incluida su credencial"
// @Success      201  {object}  dto.BranchResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/branches [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
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
// @Summary      Listar sucursales visibles para el actor
// @Tags         branches
// @Produce      json
// @Param        search  query  string  false  "nombre o ciudad"
// @Success      200  {object}  dto.BranchListResponse
// @Router       /api/branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener una sucursal
// @Tags         branches
// @Produce      json
// @Param        id  path  string  true  "id de la sucursal"
// @Success      200  {object}  dto.BranchResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/branches/{id} [get]
func (h *BranchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar una sucursal
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "id de la sucursal"
// @Param        body  body  dto.UpdateBranchRequest  true  "datos a actualizar"
// @Success      200  {object}  dto.BranchResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/branches/{id} [put]
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Restablecer la credencial de una sucursal (company_admin)
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "id de la sucursal"
// @Param        body  body  dto.ResetBranchPasswordRequest  true  "nueva contraseña"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/branches/{id}/password [put]
func (h *BranchHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetBranchPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la contraseña debe tener al menos 8 caracteres"})
	}
	if err := h.uc.ResetPassword(c.Context(), GetActor(c), c.Params("id"), in); err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "contraseña actualizada"})
}

// Delete godoc
// @Summary      Eliminar una sucursal (company_admin)
// @Tags         branches
// @Produce      json
// @Param        id  path  string  true  "id de la sucursal"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/branches/{id} [delete]
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "sucursal eliminada"})
}
