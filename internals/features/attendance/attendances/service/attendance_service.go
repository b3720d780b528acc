// file: internals/features/attendance/attendances/service/attendance_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"iescms_backend/internals/features/attendance/attendances/model"
	"iescms_backend/internals/features/attendance/attendances/repository"
	eventModel "iescms_backend/internals/features/attendance/events/model"
	eventRepo "iescms_backend/internals/features/attendance/events/repository"
	scheduleModel "iescms_backend/internals/features/attendance/schedules/model"
	"iescms_backend/internals/helpers/apperr"
)

type EventLookup interface {
	GetByID(ctx context.Context, eventID uuid.UUID) (*eventModel.ChurchEventModel, error)
	All(ctx context.Context, scheduleID uuid.UUID, f eventRepo.ListFilter) ([]eventModel.ChurchEventModel, error)
}

type ScheduleReader interface {
	Get(ctx context.Context, id uuid.UUID) (*scheduleModel.EventScheduleModel, error)
}

type AttendanceStore interface {
	AttendanceReader
	Create(ctx context.Context, m *model.EventAttendanceModel) error
	CountByType(ctx context.Context, eventIDs []uuid.UUID) ([]repository.TypeCount, error)
}

type AttendanceService struct {
	Events    EventLookup
	Schedules ScheduleReader
	Store     AttendanceStore
	Query     *QueryEngine
	Now       func() time.Time
	Log       *zap.Logger
}

func NewAttendanceService(events EventLookup, schedules ScheduleReader, store AttendanceStore, log *zap.Logger) *AttendanceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AttendanceService{
		Events:    events,
		Schedules: schedules,
		Store:     store,
		Query:     NewQueryEngine(store),
		Now:       time.Now,
		Log:       log.Named("attendance"),
	}
}

/* =========================================================
   ListAttendance
========================================================= */

// ListAttendance: event wajib ada (NotFound), sisanya QueryEngine.List.
func (s *AttendanceService) ListAttendance(ctx context.Context, eventID uuid.UUID, f Filter, limit int, cursor string) (*Page, error) {
	if limit <= 0 {
		return nil, apperr.InvalidArgument("limit", fmt.Sprintf("limit must be positive, got %d", limit))
	}
	if _, err := s.Events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.Query.List(ctx, eventID, f, limit, cursor)
}

/* =========================================================
   CheckIn
========================================================= */

type CheckInInput struct {
	EventID     uuid.UUID
	ActivityID  uuid.UUID
	PersonID    uuid.UUID
	Type        model.AttendanceType
	CheckInTime *time.Time
}

func (s *AttendanceService) CheckIn(ctx context.Context, in CheckInInput) (*model.EventAttendanceModel, error) {
	if !in.Type.Valid() {
		return nil, apperr.InvalidArgument("attendanceType", fmt.Sprintf("unknown attendance type %q", in.Type))
	}
	if in.PersonID == uuid.Nil {
		return nil, apperr.InvalidArgument("personId", "personId is required")
	}

	ev, err := s.Events.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if !ev.HasActivity(in.ActivityID) {
		return nil, apperr.InvalidArgument("activityId", "activity is not part of this event")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	checkIn := s.Now().UTC()
	if in.CheckInTime != nil {
		checkIn = in.CheckInTime.UTC()
	}

	m := &model.EventAttendanceModel{
		EventAttendanceID:          id,
		EventAttendanceEventID:     in.EventID,
		EventAttendanceActivityID:  in.ActivityID,
		EventAttendanceType:        in.Type,
		EventAttendancePersonID:    in.PersonID,
		EventAttendanceCheckInTime: checkIn,
	}
	if err := s.Store.Create(ctx, m); err != nil {
		return nil, err
	}

	s.Log.Info("attendance recorded",
		zap.String("event_id", in.EventID.String()),
		zap.String("activity_id", in.ActivityID.String()),
		zap.String("type", string(in.Type)))
	return m, nil
}

/* =========================================================
   ScheduleStats
   - satu entri per event dalam rentang, semua tipe (0 kalau kosong)
========================================================= */

type TypeCountStat struct {
	AttendanceType model.AttendanceType
	Count          int64
}

type EventStats struct {
	EventID         uuid.UUID
	Date            time.Time
	Name            string
	AttendanceCount []TypeCountStat
}

type ScheduleStats struct {
	ScheduleID uuid.UUID
	Events     []EventStats
}

func (s *AttendanceService) ScheduleStats(ctx context.Context, scheduleID uuid.UUID, f eventRepo.ListFilter) (*ScheduleStats, error) {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return nil, apperr.InvalidArgument("start_date", "start_date is after end_date")
	}
	if _, err := s.Schedules.Get(ctx, scheduleID); err != nil {
		return nil, err
	}

	events, err := s.Events.All(ctx, scheduleID, f)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ChurchEventID)
	}
	counts, err := s.Store.CountByType(ctx, ids)
	if err != nil {
		return nil, err
	}

	byEvent := make(map[uuid.UUID]map[model.AttendanceType]int64, len(events))
	for _, c := range counts {
		if byEvent[c.EventID] == nil {
			byEvent[c.EventID] = map[model.AttendanceType]int64{}
		}
		byEvent[c.EventID][c.Type] += c.Total
	}

	out := &ScheduleStats{ScheduleID: scheduleID, Events: make([]EventStats, 0, len(events))}
	for _, e := range events {
		st := EventStats{EventID: e.ChurchEventID, Date: e.ChurchEventDate, Name: e.ChurchEventName}
		for _, t := range model.AllAttendanceTypes {
			st.AttendanceCount = append(st.AttendanceCount, TypeCountStat{AttendanceType: t, Count: byEvent[e.ChurchEventID][t]})
		}
		out.Events = append(out.Events, st)
	}
	return out, nil
}
