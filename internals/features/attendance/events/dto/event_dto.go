// file: internals/features/attendance/events/dto/event_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"iescms_backend/internals/features/attendance/events/model"
	"iescms_backend/internals/features/attendance/events/repository"
	"iescms_backend/internals/helpers/apperr"
	"iescms_backend/internals/helpers/dbtime"
)

type EventActivityResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Time time.Time `json:"time"`
}

type EventResponse struct {
	ID         uuid.UUID               `json:"id"`
	ScheduleID uuid.UUID               `json:"eventScheduleId"`
	Date       string                  `json:"date"`
	Name       string                  `json:"name"`
	Activities []EventActivityResponse `json:"activities"`
	CreatedAt  time.Time               `json:"createdAt"`
}

func FromModel(m *model.ChurchEventModel) EventResponse {
	out := EventResponse{
		ID:         m.ChurchEventID,
		ScheduleID: m.ChurchEventScheduleID,
		Date:       m.ChurchEventDate.UTC().Format(dbtime.DateLayout),
		Name:       m.ChurchEventName,
		Activities: make([]EventActivityResponse, 0, len(m.ChurchEventActivities)),
		CreatedAt:  m.ChurchEventCreatedAt,
	}
	for _, a := range m.ChurchEventActivities {
		out.Activities = append(out.Activities, EventActivityResponse{ID: a.ID, Name: a.Name, Time: a.Time.UTC()})
	}
	return out
}

func FromModels(rows []model.ChurchEventModel) []EventResponse {
	out := make([]EventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

/* =========================================================
   Query: ?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD (alias startDate/endDate)
========================================================= */

// parseDateQuery: key snake_case atau alias camelCase; "YYYY-MM-DD" atau RFC3339.
func parseDateQuery(c *fiber.Ctx, key, alias string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		raw = strings.TrimSpace(c.Query(alias))
	}
	if raw == "" {
		return nil, nil
	}
	if t, err := dbtime.ParseDate(raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		d := dbtime.DateOf(t.UTC())
		return &d, nil
	}
	return nil, apperr.InvalidArgument(key, "expected YYYY-MM-DD")
}

func ParseListFilter(c *fiber.Ctx) (repository.ListFilter, error) {
	var f repository.ListFilter
	var err error
	if f.StartDate, err = parseDateQuery(c, "start_date", "startDate"); err != nil {
		return f, err
	}
	if f.EndDate, err = parseDateQuery(c, "end_date", "endDate"); err != nil {
		return f, err
	}
	return f, nil
}
