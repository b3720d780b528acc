// file: internals/features/attendance/attendances/controller/attendance_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"iescms_backend/internals/features/attendance/attendances/dto"
	"iescms_backend/internals/features/attendance/attendances/service"
	eventDTO "iescms_backend/internals/features/attendance/events/dto"
	helper "iescms_backend/internals/helpers"
)

const (
	defLimit = 50
	maxLimit = 500
)

type AttendanceController struct {
	Svc *service.AttendanceService
}

func NewAttendanceController(svc *service.AttendanceService) *AttendanceController {
	return &AttendanceController{Svc: svc}
}

/* =========================
   GET /events/:event_id/attendances?activity_id&types&limit&last_id
========================= */

func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	eid, err := helper.ParamUUID(c, "event_id", "event")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	f, err := dto.ParseFilter(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	pg, err := helper.ResolveCursor(c, defLimit, maxLimit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	page, err := ctl.Svc.ListAttendance(c.UserContext(), eid, f, pg.Limit, pg.LastID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(page.Records),
		helper.NewCursorPagination(pg.Limit, page.TotalCount, page.NextCursor))
}

/* =========================
   POST /events/:event_id/attendances
========================= */

func (ctl *AttendanceController) CheckIn(c *fiber.Ctx) error {
	eid, err := helper.ParamUUID(c, "event_id", "event")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.CheckInRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	in, err := req.ToInput(eid)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	m, err := ctl.Svc.CheckIn(c.UserContext(), in)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "attendance recorded", dto.FromModel(m))
}

/* =========================
   GET /schedules/:schedule_id/stats?start_date&end_date
========================= */

func (ctl *AttendanceController) Stats(c *fiber.Ctx) error {
	sid, err := helper.ParamUUID(c, "schedule_id", "schedule")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	f, err := eventDTO.ParseListFilter(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	st, err := ctl.Svc.ScheduleStats(c.UserContext(), sid, f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromStats(st))
}
