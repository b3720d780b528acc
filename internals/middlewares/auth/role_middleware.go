package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "iescms_backend/internals/helpers"
	"iescms_backend/internals/helpers/principal"
)

// OnlyRoles: lanjut kalau role principal ada di daftar.
// Daftar kosong = semua user yang sudah login boleh.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	if customMessage == "" {
		customMessage = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		if len(roles) == 0 {
			return c.Next()
		}
		p, ok := principal.From(c.UserContext())
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		for _, allowed := range roles {
			if p.Role == allowed {
				return c.Next()
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, customMessage)
	}
}
