package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/servitec-api/internal/application/dto"
	"github.com/jhoicas/servitec-api/internal/domain/access"
	pkgjwt "github.com/jhoicas/servitec-api/pkg/jwt"
)

// Locals key del Actor autorizado en Fiber.
const LocalActor = "actor"

// AuthMiddleware valida el Bearer Token JWT, construye el access.Actor del
// token y lo deja en c.Locals. El Actor se valida aquí una vez (fail-closed);
// aguas abajo todas las capas lo reciben ya verificado.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		sub, err := pkgjwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		role, err := access.ParseRole(sub.Role)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin rol reconocido"})
		}
		actor := access.Actor{
			Role:        role,
			UserID:      sub.AccountID,
			CompanyID:   sub.CompanyID,
			BranchID:    sub.BranchID,
			PersonnelID: sub.PersonnelID,
		}
		if err := actor.Validate(); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SCOPE", Message: "token sin alcance completo para su rol"})
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// GetActor devuelve el Actor del contexto (después del middleware de auth).
// Si el middleware no corrió devuelve el Actor cero, que falla cerrado.
func GetActor(c *fiber.Ctx) access.Actor {
	v := c.Locals(LocalActor)
	if v == nil {
		return access.Actor{}
	}
	actor, _ := v.(access.Actor)
	return actor
}

// RequireRole devuelve un middleware que solo deja pasar los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...access.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin rol"})
		}
		for _, r := range roles {
			if actor.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}
