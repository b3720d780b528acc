package helper

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iescms_backend/internals/helpers/apperr"
)

func doJSON(t *testing.T, app *fiber.App, path string) (int, ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out ErrorResponse
	require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestJsonAppError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: FromFiberError})
	app.Get("/nf", func(c *fiber.Ctx) error { return JsonAppError(c, apperr.NotFound("event", "x")) })
	app.Get("/sched", func(c *fiber.Ctx) error {
		return JsonAppError(c, apperr.InvalidSchedule("s-1", "days", "empty"))
	})
	app.Get("/down", func(c *fiber.Ctx) error {
		return JsonAppError(c, apperr.Unavailable("select", errors.New("dial tcp: refused")))
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("secret detail") })

	status, body := doJSON(t, app, "/nf")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.ErrorCode)
	assert.Equal(t, "event not found", body.Message)

	status, body = doJSON(t, app, "/sched")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_SCHEDULE", body.ErrorCode)
	assert.Equal(t, "days", body.Field)
	assert.Equal(t, "s-1", body.ScheduleID)

	status, body = doJSON(t, app, "/down")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "storage unavailable", body.Message)

	// lewat ErrorHandler
	status, body = doJSON(t, app, "/boom")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.NotContains(t, body.Message, "secret")

	status, body = doJSON(t, app, "/missing")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.ErrorCode)
	assert.False(t, body.Success)
}
