// file: internals/features/attendance/attendances/route/attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"iescms_backend/internals/features/attendance/attendances/controller"
	"iescms_backend/internals/features/attendance/attendances/service"
)

// AttendanceRoutes: check-in, list kehadiran per event, statistik per schedule.
func AttendanceRoutes(r fiber.Router, svc *service.AttendanceService) {
	ctl := controller.NewAttendanceController(svc)

	r.Get("/events/:event_id/attendances", ctl.List)
	r.Post("/events/:event_id/attendances", ctl.CheckIn)
	r.Get("/schedules/:schedule_id/stats", ctl.Stats)
}
