package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// BindAndValidate: parse body JSON lalu jalankan tag `validate`.
// Error sudah dirender (400 body rusak / 422 validasi); handler cukup return.
func BindAndValidate(c *fiber.Ctx, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, JsonError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := validate.Struct(req); err != nil {
		return false, ValidationError(c, err)
	}
	return true, nil
}

// ✅ Khusus error validasi (validator.v10)
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}

	errorsMap := make(map[string][]string)
	for _, fieldErr := range ve {
		name := fieldErr.Namespace()
		if i := strings.Index(name, "."); i >= 0 {
			name = name[i+1:]
		}
		errorsMap[name] = append(errorsMap[name], fieldErr.Tag())
	}
	return JsonValidationError(c, errorsMap)
}
