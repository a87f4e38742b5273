package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/domain"
	"github.com/jhoicas/servitec-api/pkg/logger"
)

var domainErrors = []error{
	domain.ErrInvalidInput, domain.ErrUserNotFound, domain.ErrUnauthorized,
	domain.ErrSubscriptionExpired, domain.ErrForbidden, domain.ErrNotFound,
	domain.ErrEmailAlreadyExists, domain.ErrDuplicate, domain.ErrCompanyHasServices,
	domain.ErrConflict,
}

// handleError registra los errores no controlados (infraestructura) y responde
// con el mapeo de respondError. Los errores de dominio no se loguean: son
// respuestas esperadas del negocio.
func handleError(c *fiber.Ctx, log *logger.Logger, err error) error {
	known := false
	for _, de := range domainErrors {
		if errors.Is(err, de) {
			known = true
			break
		}
	}
	if !known {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	}
	return respondError(c, err)
}

// respondError mapea los errores de dominio a códigos HTTP. Los errores de
// infraestructura nunca llegan crudos al cliente: se responde INTERNAL y el
// detalle queda para el log del handler.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrSubscriptionExpired):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SUBSCRIPTION_EXPIRED", Message: "la suscripción de la empresa no está vigente"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"})
	case errors.Is(err, domain.ErrCompanyHasServices):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMPANY_HAS_SERVICES", Message: "la empresa tiene servicios registrados; no se puede eliminar"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la operación entra en conflicto con el estado actual"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
