package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles exige que user_role esteja entre os roles informados.
func RequireRoles(feature string, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Role ausente no token")
		}
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Sem permissão para acessar "+feature)
		}
		return c.Next()
	}
}
