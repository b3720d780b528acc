// file: internals/features/attendance/events/controller/event_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"iescms_backend/internals/features/attendance/events/dto"
	"iescms_backend/internals/features/attendance/events/service"
	helper "iescms_backend/internals/helpers"
)

const (
	defLimit = 20
	maxLimit = 200
)

type EventController struct {
	Svc *service.EventService
}

func NewEventController(svc *service.EventService) *EventController {
	return &EventController{Svc: svc}
}

/* =========================
   GET /schedules/:schedule_id/events?start_date&end_date&limit&last_id
========================= */

func (ctl *EventController) List(c *fiber.Ctx) error {
	sid, err := helper.ParamUUID(c, "schedule_id", "schedule")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	f, err := dto.ParseListFilter(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	pg, err := helper.ResolveCursor(c, defLimit, maxLimit)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	lastID, err := helper.ParseOptionalUUID(pg.LastID, "last_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	page, err := ctl.Svc.ListEvents(c.UserContext(), sid, f, pg.Limit, lastID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(page.Events),
		helper.NewCursorPagination(pg.Limit, page.TotalCount, page.NextCursor))
}

/* =========================
   GET /schedules/:schedule_id/events/:event_id
========================= */

func (ctl *EventController) Get(c *fiber.Ctx) error {
	sid, err := helper.ParamUUID(c, "schedule_id", "schedule")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	eid, err := helper.ParamUUID(c, "event_id", "event")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	ev, err := ctl.Svc.GetEvent(c.UserContext(), sid, eid)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(ev))
}

/* =========================
   POST /schedules/:schedule_id/create-next-event[?strict=true]
   Default: tanggal yang sudah ada di-skip (200/201 dengan list yang baru saja dibuat).
   strict=true: 409 kalau ada tanggal yang sudah dimaterialisasi.
========================= */

func (ctl *EventController) CreateNext(c *fiber.Ctx) error {
	sid, err := helper.ParamUUID(c, "schedule_id", "schedule")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	created, err := ctl.Svc.CreateNextEvents(c.UserContext(), sid, c.QueryBool("strict"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if len(created) == 0 {
		return helper.JsonOK(c, "no new events", dto.FromModels(created))
	}
	return helper.JsonCreated(c, "events created", dto.FromModels(created))
}
