// file: internals/features/attendance/schedules/service/recurrence.go
package service

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"iescms_backend/internals/features/attendance/schedules/model"
	"iescms_backend/internals/helpers/apperr"
	"iescms_backend/internals/helpers/dbtime"
)

// 0 = Sunday ... 6 = Saturday
var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

/* =========================================================
   NextOccurrences
   - asOf direduksi ke tanggal kalender di offset schedule
   - hasil: tanggal (midnight UTC), naik, tanpa yang sudah dimaterialisasi
========================================================= */

func NextOccurrences(s *model.EventScheduleModel, asOf time.Time, materialized dbtime.DateSet, horizon int) ([]time.Time, error) {
	if horizon <= 0 {
		return nil, apperr.InvalidArgument("horizon", fmt.Sprintf("horizon must be positive, got %d", horizon))
	}
	rec, err := s.Recurrence()
	if err != nil {
		return nil, err
	}
	if materialized == nil {
		materialized = dbtime.NewDateSet()
	}
	asOfDate := dbtime.LocalDateOf(asOf, s.EventScheduleTimezoneOffset)
	sid := s.EventScheduleID.String()

	switch r := rec.(type) {
	case model.OneTimeRecurrence:
		if r.Date.Before(asOfDate) || materialized.Has(r.Date) {
			return []time.Time{}, nil
		}
		return []time.Time{r.Date}, nil

	case model.WeeklyRecurrence:
		if len(r.Days) == 0 {
			return nil, apperr.InvalidSchedule(sid, "days", "weekly schedule requires at least one weekday")
		}
		byDay := make([]rrule.Weekday, 0, len(r.Days))
		seen := map[int]bool{}
		for _, d := range r.Days {
			if d < 0 || d > 6 {
				return nil, apperr.InvalidSchedule(sid, "days", fmt.Sprintf("weekday out of range: %d", d))
			}
			if !seen[d] {
				seen[d] = true
				byDay = append(byDay, rruleWeekdays[d])
			}
		}
		return expand(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Dtstart:   asOfDate.AddDate(0, 0, 1),
			Byweekday: byDay,
		}, materialized, horizon)

	case model.DailyRecurrence:
		if r.StartDate.After(r.EndDate) {
			return nil, apperr.InvalidSchedule(sid, "startDate", "start date is after end date")
		}
		if !asOfDate.Before(r.EndDate) {
			return []time.Time{}, nil
		}
		from := asOfDate.AddDate(0, 0, 1)
		if r.StartDate.After(from) {
			from = r.StartDate
		}
		return expand(rrule.ROption{
			Freq:    rrule.DAILY,
			Dtstart: from,
			Until:   r.EndDate,
		}, materialized, horizon)

	default:
		return nil, apperr.InvalidSchedule(sid, "type", fmt.Sprintf("unsupported recurrence %T", rec))
	}
}

// expand jalanin rule, buang tanggal yang sudah ada (EXDATE), ambil max horizon.
func expand(opt rrule.ROption, materialized dbtime.DateSet, horizon int) ([]time.Time, error) {
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, apperr.InvalidSchedule("", "recurrence", err.Error())
	}

	var set rrule.Set
	set.RRule(r)
	for d := range materialized {
		if !d.Before(opt.Dtstart) {
			set.ExDate(d)
		}
	}

	out := make([]time.Time, 0, horizon)
	next := set.Iterator()
	for len(out) < horizon {
		t, ok := next()
		if !ok {
			break
		}
		out = append(out, dbtime.DateOf(t))
	}
	return out, nil
}
