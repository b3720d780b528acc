// file: internals/features/attendance/schedules/route/schedule_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"iescms_backend/internals/features/attendance/schedules/controller"
	"iescms_backend/internals/features/attendance/schedules/service"
)

// ScheduleRoutes: CRUD schedule + aktivitas. write = guard role untuk mutasi.
func ScheduleRoutes(r fiber.Router, svc *service.ScheduleService, write fiber.Handler) {
	ctl := controller.NewScheduleController(svc)

	grp := r.Group("/schedules")
	grp.Get("/", ctl.List)
	grp.Get("/:schedule_id", ctl.Get)
	grp.Post("/", write, ctl.Create)
	grp.Put("/:schedule_id", write, ctl.Update)

	grp.Post("/:schedule_id/activities", write, ctl.CreateActivity)
	grp.Put("/:schedule_id/activities/:activity_id", write, ctl.UpdateActivity)
	grp.Delete("/:schedule_id/activities/:activity_id", write, ctl.DeleteActivity)
}
