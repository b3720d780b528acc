// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"iescms_backend/internals/configs"
	attendanceRepo "iescms_backend/internals/features/attendance/attendances/repository"
	attendanceRoute "iescms_backend/internals/features/attendance/attendances/route"
	attendanceService "iescms_backend/internals/features/attendance/attendances/service"
	eventRepo "iescms_backend/internals/features/attendance/events/repository"
	eventRoute "iescms_backend/internals/features/attendance/events/route"
	eventService "iescms_backend/internals/features/attendance/events/service"
	scheduleRepo "iescms_backend/internals/features/attendance/schedules/repository"
	scheduleRoute "iescms_backend/internals/features/attendance/schedules/route"
	scheduleService "iescms_backend/internals/features/attendance/schedules/service"
	"iescms_backend/internals/helpers/notify"
	"iescms_backend/internals/middlewares"
	authMiddleware "iescms_backend/internals/middlewares/auth"
)

var startTime time.Time

// Services: satu set service yang dipakai HTTP & CLI (cron, materialize).
type Services struct {
	ScheduleRepo *scheduleRepo.ScheduleRepository
	Schedules    *scheduleService.ScheduleService
	Events       *eventService.EventService
	Attendance   *attendanceService.AttendanceService
}

func NewServices(db *gorm.DB, cfg configs.Config, log *zap.Logger, notifier notify.Publisher) *Services {
	schedules := scheduleRepo.NewScheduleRepository(db)
	events := eventRepo.NewEventRepository(db)
	attendance := attendanceRepo.NewAttendanceRepository(db)

	return &Services{
		ScheduleRepo: schedules,
		Schedules:    scheduleService.NewScheduleService(schedules, log),
		Events: eventService.NewEventService(
			schedules, events, eventService.NewGenerator(cfg.EventGenerationHorizon), notifier, log,
		),
		Attendance: attendanceService.NewAttendanceService(events, schedules, attendance, log),
	}
}

// SetupRoutes: semua endpoint di bawah /api/attendance (JWT wajib kalau JWT_SECRET diset).
func SetupRoutes(app *fiber.App, db *gorm.DB, svc *Services, cfg configs.Config, log *zap.Logger) {
	startTime = time.Now()

	BaseRoutes(app, db)

	var handlers []fiber.Handler
	if cfg.JWTSecret != "" {
		handlers = append(handlers, authMiddleware.AuthMiddleware(cfg.JWTSecret, log))
	} else {
		log.Warn("JWT_SECRET kosong, /api/attendance tanpa auth")
	}
	api := app.Group("/api/attendance", handlers...)

	write := authMiddleware.OnlyRoles("", cfg.WriteRoles...)
	if cfg.JWTSecret == "" {
		write = func(c *fiber.Ctx) error { return c.Next() }
	}

	log.Info("setting up schedule routes")
	scheduleRoute.ScheduleRoutes(api, svc.Schedules, write)

	log.Info("setting up event routes")
	eventRoute.EventRoutes(api, svc.Events, write, middlewares.MaterializeRateLimiter())

	log.Info("setting up attendance routes")
	attendanceRoute.AttendanceRoutes(api, svc.Attendance)
}
