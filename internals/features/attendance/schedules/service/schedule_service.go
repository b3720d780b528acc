// file: internals/features/attendance/schedules/service/schedule_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"iescms_backend/internals/features/attendance/schedules/model"
	"iescms_backend/internals/helpers/apperr"
)

// Batas offset zona waktu (menit): UTC-12:00 .. UTC+14:00
const (
	MinTimezoneOffset = -12 * 60
	MaxTimezoneOffset = 14 * 60
)

type ScheduleRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.EventScheduleModel, error)
	List(ctx context.Context, limit int, lastID *uuid.UUID) ([]model.EventScheduleModel, int64, error)
	Create(ctx context.Context, s *model.EventScheduleModel) error
	UpdateHeader(ctx context.Context, s *model.EventScheduleModel) error
	CreateActivity(ctx context.Context, a *model.ActivityModel) error
	UpdateActivity(ctx context.Context, a *model.ActivityModel) error
	DeleteActivity(ctx context.Context, scheduleID, activityID uuid.UUID) error
}

type ScheduleService struct {
	Repo ScheduleRepository
	Log  *zap.Logger
}

func NewScheduleService(repo ScheduleRepository, log *zap.Logger) *ScheduleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScheduleService{Repo: repo, Log: log.Named("schedule")}
}

/* =========================================================
   VALIDATION
========================================================= */

func validateOffset(scheduleID, field string, offset int) error {
	if offset < MinTimezoneOffset || offset > MaxTimezoneOffset {
		return apperr.InvalidSchedule(scheduleID, field, fmt.Sprintf("timezone offset out of range: %d", offset))
	}
	return nil
}

// ValidateHeader cek nama, offset dan field varian.
func ValidateHeader(s *model.EventScheduleModel) error {
	sid := ""
	if s.EventScheduleID != uuid.Nil {
		sid = s.EventScheduleID.String()
	}
	if strings.TrimSpace(s.EventScheduleName) == "" {
		return apperr.InvalidSchedule(sid, "name", "name is required")
	}
	if err := validateOffset(sid, "timezoneOffset", s.EventScheduleTimezoneOffset); err != nil {
		return err
	}

	rec, err := s.Recurrence()
	if err != nil {
		return apperr.WithSchedule(err, sid)
	}
	switch r := rec.(type) {
	case model.OneTimeRecurrence:
		if r.Date.IsZero() {
			return apperr.InvalidSchedule(sid, "date", "one-time schedule requires a date")
		}
	case model.WeeklyRecurrence:
		if len(r.Days) == 0 {
			return apperr.InvalidSchedule(sid, "days", "weekly schedule requires at least one weekday")
		}
		for _, d := range r.Days {
			if d < 0 || d > 6 {
				return apperr.InvalidSchedule(sid, "days", fmt.Sprintf("weekday out of range: %d", d))
			}
		}
	case model.DailyRecurrence:
		if r.StartDate.After(r.EndDate) {
			return apperr.InvalidSchedule(sid, "startDate", "start date is after end date")
		}
	}
	return nil
}

func ValidateActivity(a *model.ActivityModel) error {
	if strings.TrimSpace(a.EventScheduleActivityName) == "" {
		return apperr.InvalidArgument("name", "activity name is required")
	}
	if err := ValidateClock(a.EventScheduleActivityHour, a.EventScheduleActivityMinute); err != nil {
		return err
	}
	if a.EventScheduleActivityTimezoneOffset != nil {
		return validateOffset(a.EventScheduleActivityScheduleID.String(), "activities.timezoneOffset", *a.EventScheduleActivityTimezoneOffset)
	}
	return nil
}

/* =========================================================
   QUERIES
========================================================= */

func (s *ScheduleService) GetSchedule(ctx context.Context, id uuid.UUID) (*model.EventScheduleModel, error) {
	return s.Repo.Get(ctx, id)
}

type SchedulePage struct {
	Schedules  []model.EventScheduleModel
	TotalCount int64
	NextCursor string
}

// ListSchedules: urut (created_at, id), ambil limit+1 untuk NextCursor.
func (s *ScheduleService) ListSchedules(ctx context.Context, limit int, lastID *uuid.UUID) (*SchedulePage, error) {
	if limit <= 0 {
		return nil, apperr.InvalidArgument("limit", fmt.Sprintf("limit must be positive, got %d", limit))
	}
	rows, total, err := s.Repo.List(ctx, limit+1, lastID)
	if err != nil {
		return nil, err
	}
	page := &SchedulePage{Schedules: rows, TotalCount: total}
	if len(rows) > limit {
		page.Schedules = rows[:limit]
		page.NextCursor = rows[limit-1].EventScheduleID.String()
	}
	return page, nil
}

/* =========================================================
   COMMANDS
========================================================= */

func (s *ScheduleService) CreateSchedule(ctx context.Context, m *model.EventScheduleModel) (*model.EventScheduleModel, error) {
	if err := ValidateHeader(m); err != nil {
		return nil, err
	}
	if m.EventScheduleID == uuid.Nil {
		m.EventScheduleID = uuid.New()
	}
	for i := range m.Activities {
		a := &m.Activities[i]
		a.EventScheduleActivityScheduleID = m.EventScheduleID
		if err := ValidateActivity(a); err != nil {
			return nil, apperr.WithSchedule(err, m.EventScheduleID.String())
		}
		if a.EventScheduleActivityID == uuid.Nil {
			a.EventScheduleActivityID = uuid.New()
		}
	}

	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.Log.Info("schedule created",
		zap.String("schedule_id", m.EventScheduleID.String()),
		zap.String("type", string(m.EventScheduleType)),
		zap.Int("activities", len(m.Activities)))
	return s.Repo.Get(ctx, m.EventScheduleID)
}

// UpdateSchedule: full replace header + varian. Aktivitas lewat endpoint sendiri.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, m *model.EventScheduleModel) (*model.EventScheduleModel, error) {
	if err := ValidateHeader(m); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateHeader(ctx, m); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, m.EventScheduleID)
}

func (s *ScheduleService) CreateActivity(ctx context.Context, scheduleID uuid.UUID, a *model.ActivityModel) (*model.EventScheduleModel, error) {
	a.EventScheduleActivityScheduleID = scheduleID
	if err := ValidateActivity(a); err != nil {
		return nil, apperr.WithSchedule(err, scheduleID.String())
	}
	if a.EventScheduleActivityID == uuid.Nil {
		a.EventScheduleActivityID = uuid.New()
	}
	if err := s.Repo.CreateActivity(ctx, a); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, scheduleID)
}

func (s *ScheduleService) UpdateActivity(ctx context.Context, scheduleID uuid.UUID, a *model.ActivityModel) (*model.EventScheduleModel, error) {
	a.EventScheduleActivityScheduleID = scheduleID
	if err := ValidateActivity(a); err != nil {
		return nil, apperr.WithSchedule(err, scheduleID.String())
	}
	if err := s.Repo.UpdateActivity(ctx, a); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, scheduleID)
}

func (s *ScheduleService) DeleteActivity(ctx context.Context, scheduleID, activityID uuid.UUID) (*model.EventScheduleModel, error) {
	if err := s.Repo.DeleteActivity(ctx, scheduleID, activityID); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, scheduleID)
}
