// file: internals/features/attendance/schedules/dto/schedule_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"iescms_backend/internals/features/attendance/schedules/model"
	"iescms_backend/internals/helpers/apperr"
	"iescms_backend/internals/helpers/dbtime"
)

/* =========================================================
   Helpers
========================================================= */

// parseScheduleDate terima "YYYY-MM-DD" atau RFC3339 (instant → tanggal lokal schedule).
func parseScheduleDate(s string, offsetMinutes int) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := dbtime.ParseDate(s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return dbtime.LocalDateOf(t, offsetMinutes), true
	}
	return time.Time{}, false
}

func requiredDate(raw *string, field string, offset int) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return time.Time{}, apperr.InvalidSchedule("", field, field+" is required")
	}
	t, ok := parseScheduleDate(*raw, offset)
	if !ok {
		return time.Time{}, apperr.InvalidSchedule("", field, "expected YYYY-MM-DD")
	}
	return t, nil
}

func datePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(dbtime.DateLayout)
	return &s
}

/* =========================================================
   REQUEST
========================================================= */

type ActivityRequest struct {
	Name           string `json:"name"           validate:"required,max=160"`
	Hour           int    `json:"hour"`
	Minute         int    `json:"minute"`
	TimezoneOffset *int   `json:"timezoneOffset"`
}

func (r ActivityRequest) ToModel(scheduleID, activityID uuid.UUID) *model.ActivityModel {
	return &model.ActivityModel{
		EventScheduleActivityID:             activityID,
		EventScheduleActivityScheduleID:     scheduleID,
		EventScheduleActivityName:           strings.TrimSpace(r.Name),
		EventScheduleActivityHour:           r.Hour,
		EventScheduleActivityMinute:         r.Minute,
		EventScheduleActivityTimezoneOffset: r.TimezoneOffset,
	}
}

// ScheduleRequest: satu kontrak untuk semua varian.
// Hanya field milik varian `type` yang dibaca.
type ScheduleRequest struct {
	Name           string `json:"name"           validate:"required,max=160"`
	Type           string `json:"type"           validate:"required,oneof=OneTime Weekly Daily"`
	TimezoneOffset int    `json:"timezoneOffset"`

	Date      *string `json:"date,omitempty"`
	Days      []int   `json:"days,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`

	// hanya dipakai saat create
	Activities []ActivityRequest `json:"activities" validate:"omitempty,dive"`
}

func (r ScheduleRequest) recurrence() (model.Recurrence, error) {
	switch model.ScheduleType(r.Type) {
	case model.ScheduleTypeOneTime:
		d, err := requiredDate(r.Date, "date", r.TimezoneOffset)
		if err != nil {
			return nil, err
		}
		return model.OneTimeRecurrence{Date: d}, nil
	case model.ScheduleTypeWeekly:
		return model.WeeklyRecurrence{Days: r.Days}, nil
	case model.ScheduleTypeDaily:
		start, err := requiredDate(r.StartDate, "startDate", r.TimezoneOffset)
		if err != nil {
			return nil, err
		}
		end, err := requiredDate(r.EndDate, "endDate", r.TimezoneOffset)
		if err != nil {
			return nil, err
		}
		return model.DailyRecurrence{StartDate: start, EndDate: end}, nil
	default:
		return nil, apperr.InvalidSchedule("", "type", "unknown schedule type")
	}
}

// ToModel: id = uuid.Nil untuk create (diisi service).
func (r ScheduleRequest) ToModel(id uuid.UUID) (*model.EventScheduleModel, error) {
	m := &model.EventScheduleModel{
		EventScheduleID:             id,
		EventScheduleName:           strings.TrimSpace(r.Name),
		EventScheduleTimezoneOffset: r.TimezoneOffset,
	}
	rec, err := r.recurrence()
	if err != nil {
		if id != uuid.Nil {
			return nil, apperr.WithSchedule(err, id.String())
		}
		return nil, err
	}
	if err := m.SetRecurrence(rec); err != nil {
		return nil, err
	}

	for _, a := range r.Activities {
		m.Activities = append(m.Activities, *a.ToModel(id, uuid.Nil))
	}
	return m, nil
}

/* =========================================================
   RESPONSE
========================================================= */

type ActivityResponse struct {
	ID             uuid.UUID `json:"id"`
	ScheduleID     uuid.UUID `json:"scheduleId"`
	Name           string    `json:"name"`
	Hour           int       `json:"hour"`
	Minute         int       `json:"minute"`
	TimezoneOffset *int      `json:"timezoneOffset,omitempty"`
}

type ScheduleResponse struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Type           model.ScheduleType `json:"type"`
	TimezoneOffset int                `json:"timezoneOffset"`
	Activities     []ActivityResponse `json:"activities"`

	Date      *string `json:"date,omitempty"`
	Days      []int   `json:"days,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromActivityModel(a model.ActivityModel) ActivityResponse {
	return ActivityResponse{
		ID:             a.EventScheduleActivityID,
		ScheduleID:     a.EventScheduleActivityScheduleID,
		Name:           a.EventScheduleActivityName,
		Hour:           a.EventScheduleActivityHour,
		Minute:         a.EventScheduleActivityMinute,
		TimezoneOffset: a.EventScheduleActivityTimezoneOffset,
	}
}

func FromModel(m *model.EventScheduleModel) ScheduleResponse {
	out := ScheduleResponse{
		ID:             m.EventScheduleID,
		Name:           m.EventScheduleName,
		Type:           m.EventScheduleType,
		TimezoneOffset: m.EventScheduleTimezoneOffset,
		Activities:     make([]ActivityResponse, 0, len(m.Activities)),
		CreatedAt:      m.EventScheduleCreatedAt,
		UpdatedAt:      m.EventScheduleUpdatedAt,
	}
	for _, a := range m.Activities {
		out.Activities = append(out.Activities, FromActivityModel(a))
	}

	switch m.EventScheduleType {
	case model.ScheduleTypeOneTime:
		out.Date = datePtr(m.EventScheduleDate)
	case model.ScheduleTypeWeekly:
		out.Days = append([]int{}, m.EventScheduleDays...)
	case model.ScheduleTypeDaily:
		out.StartDate = datePtr(m.EventScheduleStartDate)
		out.EndDate = datePtr(m.EventScheduleEndDate)
	}
	return out
}

func FromModels(rows []model.EventScheduleModel) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
