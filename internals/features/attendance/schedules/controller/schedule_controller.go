// file: internals/features/attendance/schedules/controller/schedule_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"iescms_backend/internals/features/attendance/schedules/dto"
	"iescms_backend/internals/features/attendance/schedules/service"
	helper "iescms_backend/internals/helpers"
)

const (
	defLimit = 20
	maxLimit = 200
)

type ScheduleController struct {
	Svc *service.ScheduleService
}

func NewScheduleController(svc *service.ScheduleService) *ScheduleController {
	return &ScheduleController{Svc: svc}
}

/* =========================
   GET /schedules?limit&last_id
========================= */

func (ctl *ScheduleController) List(c *fiber.Ctx) error {
	pg, err := helper.ResolveCursor(c, defLimit, maxLimit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	lastID, err := helper.ParseOptionalUUID(pg.LastID, "last_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	page, err := ctl.Svc.ListSchedules(c.UserContext(), pg.Limit, lastID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(page.Schedules),
		helper.NewCursorPagination(pg.Limit, page.TotalCount, page.NextCursor))
}

/* =========================
   GET /schedules/:schedule_id
========================= */

func (ctl *ScheduleController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "schedule_id", "schedule")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctl.Svc.GetSchedule(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

/* =========================
   POST /schedules
========================= */

func (ctl *ScheduleController) Create(c *fiber.Ctx) error {
	var req dto.ScheduleRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	m, err := req.ToModel(uuid.Nil)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	created, err := ctl.Svc.CreateSchedule(c.UserContext(), m)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "schedule created", dto.FromModel(created))
}

/* =========================
   PUT /schedules/:schedule_id
========================= */

func (ctl *ScheduleController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "schedule_id", "schedule")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.ScheduleRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	m, err := req.ToModel(id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	updated, err := ctl.Svc.UpdateSchedule(c.UserContext(), m)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "schedule updated", dto.FromModel(updated))
}
