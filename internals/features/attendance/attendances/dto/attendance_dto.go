// file: internals/features/attendance/attendances/dto/attendance_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"iescms_backend/internals/features/attendance/attendances/model"
	"iescms_backend/internals/features/attendance/attendances/service"
	helper "iescms_backend/internals/helpers"
	"iescms_backend/internals/helpers/apperr"
	"iescms_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST
========================================================= */

type CheckInRequest struct {
	ActivityID     string     `json:"activityId"     validate:"required,uuid"`
	PersonID       string     `json:"personId"       validate:"required,uuid"`
	AttendanceType string     `json:"attendanceType" validate:"required,oneof=Regular Guest Volunteer"`
	CheckInTime    *time.Time `json:"checkInTime,omitempty"`
}

func (r CheckInRequest) ToInput(eventID uuid.UUID) (service.CheckInInput, error) {
	activityID, err := uuid.Parse(strings.TrimSpace(r.ActivityID))
	if err != nil {
		return service.CheckInInput{}, apperr.InvalidArgument("activityId", "invalid uuid")
	}
	personID, err := uuid.Parse(strings.TrimSpace(r.PersonID))
	if err != nil {
		return service.CheckInInput{}, apperr.InvalidArgument("personId", "invalid uuid")
	}
	return service.CheckInInput{
		EventID:     eventID,
		ActivityID:  activityID,
		PersonID:    personID,
		Type:        model.AttendanceType(r.AttendanceType),
		CheckInTime: r.CheckInTime,
	}, nil
}

/* =========================================================
   Query: ?activity_id=&types=Regular,Guest
   (alias activityId / attendanceTypes, boleh diulang)
========================================================= */

func ParseFilter(c *fiber.Ctx) (service.Filter, error) {
	var f service.Filter

	raw := strings.TrimSpace(c.Query("activity_id"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("activityId"))
	}
	activityID, err := helper.ParseOptionalUUID(raw, "activity_id")
	if err != nil {
		return f, err
	}
	f.ActivityID = activityID

	args := c.Context().QueryArgs()
	for _, key := range []string{"types", "attendanceTypes"} {
		for _, v := range args.PeekMulti(key) {
			for _, part := range strings.Split(string(v), ",") {
				if part = strings.TrimSpace(part); part != "" {
					f.AttendanceTypes = append(f.AttendanceTypes, model.AttendanceType(part))
				}
			}
		}
	}
	return f, nil
}

/* =========================================================
   RESPONSE
========================================================= */

type AttendanceResponse struct {
	ID             uuid.UUID            `json:"id"`
	EventID        uuid.UUID            `json:"eventId"`
	ActivityID     uuid.UUID            `json:"activityId"`
	PersonID       uuid.UUID            `json:"personId"`
	AttendanceType model.AttendanceType `json:"attendanceType"`
	CheckInTime    time.Time            `json:"checkInTime"`
	CreatedAt      time.Time            `json:"createdAt"`
}

func FromModel(m *model.EventAttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		ID:             m.EventAttendanceID,
		EventID:        m.EventAttendanceEventID,
		ActivityID:     m.EventAttendanceActivityID,
		PersonID:       m.EventAttendancePersonID,
		AttendanceType: m.EventAttendanceType,
		CheckInTime:    m.EventAttendanceCheckInTime.UTC(),
		CreatedAt:      m.EventAttendanceCreatedAt.UTC(),
	}
}

func FromModels(rows []model.EventAttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

// Stats

type AttendanceCount struct {
	AttendanceType model.AttendanceType `json:"attendanceType"`
	Count          int64                `json:"count"`
}

type EventStatsResponse struct {
	ID              uuid.UUID         `json:"id"`
	Date            string            `json:"date"`
	Name            string            `json:"name"`
	AttendanceCount []AttendanceCount `json:"attendanceCount"`
}

type ScheduleStatsResponse struct {
	ID         uuid.UUID            `json:"id"`
	EventStats []EventStatsResponse `json:"eventStats"`
}

func FromStats(st *service.ScheduleStats) ScheduleStatsResponse {
	out := ScheduleStatsResponse{ID: st.ScheduleID, EventStats: make([]EventStatsResponse, 0, len(st.Events))}
	for _, e := range st.Events {
		es := EventStatsResponse{
			ID:              e.EventID,
			Date:            e.Date.UTC().Format(dbtime.DateLayout),
			Name:            e.Name,
			AttendanceCount: make([]AttendanceCount, 0, len(e.AttendanceCount)),
		}
		for _, c := range e.AttendanceCount {
			es.AttendanceCount = append(es.AttendanceCount, AttendanceCount{AttendanceType: c.AttendanceType, Count: c.Count})
		}
		out.EventStats = append(out.EventStats, es)
	}
	return out
}
