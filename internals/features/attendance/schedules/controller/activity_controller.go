// file: internals/features/attendance/schedules/controller/activity_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"iescms_backend/internals/features/attendance/schedules/dto"
	helper "iescms_backend/internals/helpers"
)

// Semua endpoint aktivitas mengembalikan schedule terbaru.

/* =========================
   POST /schedules/:schedule_id/activities
========================= */

func (ctl *ScheduleController) CreateActivity(c *fiber.Ctx) error {
	sid, err := helper.ParamUUID(c, "schedule_id", "schedule")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.ActivityRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	m, err := ctl.Svc.CreateActivity(c.UserContext(), sid, req.ToModel(sid, uuid.Nil))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "activity created", dto.FromModel(m))
}

/* =========================
   PUT /schedules/:schedule_id/activities/:activity_id
========================= */

func (ctl *ScheduleController) UpdateActivity(c *fiber.Ctx) error {
	sid, err := helper.ParamUUID(c, "schedule_id", "schedule")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	aid, err := helper.ParamUUID(c, "activity_id", "activity")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.ActivityRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	m, err := ctl.Svc.UpdateActivity(c.UserContext(), sid, req.ToModel(sid, aid))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "activity updated", dto.FromModel(m))
}

/* =========================
   DELETE /schedules/:schedule_id/activities/:activity_id
========================= */

func (ctl *ScheduleController) DeleteActivity(c *fiber.Ctx) error {
	sid, err := helper.ParamUUID(c, "schedule_id", "schedule")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	aid, err := helper.ParamUUID(c, "activity_id", "activity")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	m, err := ctl.Svc.DeleteActivity(c.UserContext(), sid, aid)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "activity deleted", dto.FromModel(m))
}
