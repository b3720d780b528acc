package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	"iescms_backend/internals/configs"
	"iescms_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan penting, request context dulu supaya
// logger & recovery dapat request id.
func SetupMiddlewares(app *fiber.App, cfg configs.Config, log *zap.Logger) {
	app.Use(RequestContext(cfg.RequestTimeout))
	app.Use(RecoveryMiddleware(log))
	app.Use(logger.LoggerMiddleware(log))
	app.Use(CorsMiddleware(cfg.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(GlobalRateLimiter(cfg.RateLimitMax))
}
