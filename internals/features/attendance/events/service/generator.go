// file: internals/features/attendance/events/service/generator.go
package service

import (
	"time"

	eventModel "iescms_backend/internals/features/attendance/events/model"
	scheduleModel "iescms_backend/internals/features/attendance/schedules/model"
	scheduleService "iescms_backend/internals/features/attendance/schedules/service"
	"iescms_backend/internals/helpers/apperr"
	"iescms_backend/internals/helpers/dbtime"
)

/* =========================================================
   Generator
   - asOf = tanggal event terakhir, kalau belum ada pakai Now()
   - Horizon <= 0 → satu siklus (Weekly: jumlah hari, lainnya 1)
========================================================= */

type Generator struct {
	Now     func() time.Time
	Horizon int
}

func NewGenerator(horizon int) *Generator {
	return &Generator{Now: time.Now, Horizon: horizon}
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g *Generator) horizonFor(rec scheduleModel.Recurrence) int {
	if g.Horizon > 0 {
		return g.Horizon
	}
	if w, ok := rec.(scheduleModel.WeeklyRecurrence); ok {
		uniq := map[int]struct{}{}
		for _, d := range w.Days {
			uniq[d] = struct{}{}
		}
		if len(uniq) > 0 {
			return len(uniq)
		}
	}
	return 1
}

// GenerateNext bikin event untuk occurrence berikutnya (belum disimpan).
// Tanggal yang sudah ada di existing tidak pernah dihasilkan lagi.
func (g *Generator) GenerateNext(s *scheduleModel.EventScheduleModel, existing dbtime.DateSet) ([]eventModel.ChurchEventModel, error) {
	sid := s.EventScheduleID.String()
	if len(s.Activities) == 0 {
		return nil, apperr.InvalidSchedule(sid, "activities", "schedule has no activities")
	}
	rec, err := s.Recurrence()
	if err != nil {
		return nil, apperr.WithSchedule(err, sid)
	}
	if existing == nil {
		existing = dbtime.NewDateSet()
	}

	asOf := g.now()
	if last, ok := existing.Max(); ok {
		asOf = dbtime.StartOfLocalDay(last, s.EventScheduleTimezoneOffset)
	}

	dates, err := scheduleService.NextOccurrences(s, asOf, existing, g.horizonFor(rec))
	if err != nil {
		return nil, apperr.WithSchedule(err, sid)
	}

	out := make([]eventModel.ChurchEventModel, 0, len(dates))
	for _, d := range dates {
		if existing.Has(d) {
			continue
		}
		acts := make([]eventModel.EventActivity, 0, len(s.Activities))
		for _, a := range s.Activities {
			at, err := scheduleService.ResolveActivityTime(a, s.EventScheduleTimezoneOffset, d)
			if err != nil {
				return nil, apperr.WithSchedule(err, sid)
			}
			acts = append(acts, eventModel.EventActivity{
				ID:   a.EventScheduleActivityID,
				Name: a.EventScheduleActivityName,
				Time: at,
			})
		}
		out = append(out, eventModel.ChurchEventModel{
			ChurchEventID:         eventModel.EventIDFor(s.EventScheduleID, d),
			ChurchEventScheduleID: s.EventScheduleID,
			ChurchEventDate:       d,
			ChurchEventName:       s.EventScheduleName,
			ChurchEventActivities: acts,
		})
	}
	return out, nil
}
