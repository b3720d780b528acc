package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError dipasang sebagai fiber.Config.ErrorHandler: error yang lolos
// dari handler (route tidak ada, body terlalu besar, timeout) tetap keluar
// dengan envelope JSON yang sama.
func FromFiberError(c *fiber.Ctx, err error) error {
	return JsonAppError(c, err)
}
