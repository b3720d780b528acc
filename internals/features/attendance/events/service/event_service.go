// file: internals/features/attendance/events/service/event_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	eventModel "iescms_backend/internals/features/attendance/events/model"
	"iescms_backend/internals/features/attendance/events/repository"
	scheduleModel "iescms_backend/internals/features/attendance/schedules/model"
	"iescms_backend/internals/helpers/apperr"
	"iescms_backend/internals/helpers/dbtime"
	"iescms_backend/internals/helpers/notify"
)

type ScheduleReader interface {
	Get(ctx context.Context, id uuid.UUID) (*scheduleModel.EventScheduleModel, error)
}

type EventStore interface {
	InsertIfAbsent(ctx context.Context, e *eventModel.ChurchEventModel) (bool, error)
	ExistingDates(ctx context.Context, scheduleID uuid.UUID) (dbtime.DateSet, error)
	Get(ctx context.Context, scheduleID, eventID uuid.UUID) (*eventModel.ChurchEventModel, error)
	List(ctx context.Context, scheduleID uuid.UUID, f repository.ListFilter, limit int, lastID *uuid.UUID) ([]eventModel.ChurchEventModel, int64, error)
}

type EventService struct {
	Schedules ScheduleReader
	Events    EventStore
	Gen       *Generator
	Notifier  notify.Publisher
	Log       *zap.Logger
}

func NewEventService(schedules ScheduleReader, events EventStore, gen *Generator, notifier notify.Publisher, log *zap.Logger) *EventService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EventService{Schedules: schedules, Events: events, Gen: gen, Notifier: notifier, Log: log.Named("event")}
}

// EventsCreatedMessage dikirim ke notifier setiap ada event baru.
type EventsCreatedMessage struct {
	Type       string           `json:"type"`
	ScheduleID uuid.UUID        `json:"schedule_id"`
	Events     []CreatedEventRef `json:"events"`
}

type CreatedEventRef struct {
	ID   uuid.UUID `json:"id"`
	Date string    `json:"date"`
	Name string    `json:"name"`
}

/* =========================================================
   CreateNextEvents
   - idempotent: unique (schedule, date) + INSERT ... DO NOTHING
   - strict=false: yang kalah race di-skip diam-diam
   - strict=true : sisanya tetap disimpan, lalu ConflictError
========================================================= */

func (s *EventService) CreateNextEvents(ctx context.Context, scheduleID uuid.UUID, strict bool) ([]eventModel.ChurchEventModel, error) {
	sched, err := s.Schedules.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	existing, err := s.Events.ExistingDates(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	proposed, err := s.Gen.GenerateNext(sched, existing)
	if err != nil {
		return nil, err
	}

	inserted := make([]eventModel.ChurchEventModel, 0, len(proposed))
	var skipped []string
	for i := range proposed {
		e := proposed[i]
		ok, err := s.Events.InsertIfAbsent(ctx, &e)
		if err != nil {
			return nil, apperr.WithSchedule(err, scheduleID.String())
		}
		if !ok {
			skipped = append(skipped, e.ChurchEventDate.Format(dbtime.DateLayout))
			continue
		}
		inserted = append(inserted, e)
	}

	s.Log.Info("events materialized",
		zap.String("schedule_id", scheduleID.String()),
		zap.Int("proposed", len(proposed)),
		zap.Int("inserted", len(inserted)),
		zap.Strings("skipped", skipped))

	s.publish(ctx, scheduleID, inserted)

	if strict && len(skipped) > 0 {
		return inserted, apperr.WithSchedule(
			apperr.Conflict("event", skipped[0], fmt.Sprintf("%d occurrence(s) already materialized", len(skipped))),
			scheduleID.String(),
		)
	}
	return inserted, nil
}

func (s *EventService) publish(ctx context.Context, scheduleID uuid.UUID, events []eventModel.ChurchEventModel) {
	if len(events) == 0 {
		return
	}
	msg := EventsCreatedMessage{Type: "church_events.created", ScheduleID: scheduleID}
	for _, e := range events {
		msg.Events = append(msg.Events, CreatedEventRef{
			ID:   e.ChurchEventID,
			Date: e.ChurchEventDate.Format(dbtime.DateLayout),
			Name: e.ChurchEventName,
		})
	}
	// best effort, jangan gagalkan request
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.Notifier.Publish(pctx, msg); err != nil {
		s.Log.Warn("publish events failed", zap.String("schedule_id", scheduleID.String()), zap.Error(err))
	}
}

/* =========================================================
   Queries
========================================================= */

func (s *EventService) GetEvent(ctx context.Context, scheduleID, eventID uuid.UUID) (*eventModel.ChurchEventModel, error) {
	return s.Events.Get(ctx, scheduleID, eventID)
}

type EventPage struct {
	Events     []eventModel.ChurchEventModel
	TotalCount int64
	NextCursor string
}

// ListEvents: urut tanggal, cursor = id event terakhir (strict after).
func (s *EventService) ListEvents(ctx context.Context, scheduleID uuid.UUID, f repository.ListFilter, limit int, lastID *uuid.UUID) (*EventPage, error) {
	if limit <= 0 {
		return nil, apperr.InvalidArgument("limit", fmt.Sprintf("limit must be positive, got %d", limit))
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return nil, apperr.InvalidArgument("start_date", "start_date is after end_date")
	}
	if _, err := s.Schedules.Get(ctx, scheduleID); err != nil {
		return nil, err
	}

	rows, total, err := s.Events.List(ctx, scheduleID, f, limit+1, lastID)
	if err != nil {
		return nil, err
	}
	page := &EventPage{Events: rows, TotalCount: total}
	if len(rows) > limit {
		page.Events = rows[:limit]
		page.NextCursor = rows[limit-1].ChurchEventID.String()
	}
	return page, nil
}
