package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/domain/access"
)

// subscriptionChecker es el contrato mínimo que necesita el middleware para
// verificar la ventana de suscripción. Lo implementa *auth.AuthUseCase; el uso
// de interfaz evita el import circular.
type subscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, companyID string) (bool, error)
}

// RequireSubscription devuelve un middleware Fiber que verifica que la empresa
// del actor tenga la suscripción vigente. Debe usarse DESPUÉS de AuthMiddleware.
// super_admin no pertenece a ningún tenant y pasa siempre.
//
// Comportamiento:
//   - 403 Forbidden → suscripción vencida o empresa suspendida.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireSubscription(checker subscriptionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor.Role == access.RoleSuperAdmin {
			return c.Next()
		}
		if actor.CompanyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		active, err := checker.HasActiveSubscription(c.Context(), actor.CompanyID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_CHECK_FAILED",
				Message: "no se pudo verificar la suscripción, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_EXPIRED",
				Message: "la suscripción de la empresa no está vigente",
			})
		}
		return c.Next()
	}
}
