// file: internals/features/attendance/events/route/event_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"iescms_backend/internals/features/attendance/events/controller"
	"iescms_backend/internals/features/attendance/events/service"
)

// EventRoutes: materialisasi + baca event per schedule.
// guards dipasang sebelum create-next-event (role + rate limit).
func EventRoutes(r fiber.Router, svc *service.EventService, guards ...fiber.Handler) {
	ctl := controller.NewEventController(svc)

	grp := r.Group("/schedules/:schedule_id")
	grp.Get("/events", ctl.List)
	grp.Get("/events/:event_id", ctl.Get)

	handlers := append(append([]fiber.Handler{}, guards...), ctl.CreateNext)
	grp.Post("/create-next-event", handlers...)
}
