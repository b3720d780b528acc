// file: internals/features/attendance/schedules/model/recurrence.go
package model

import (
	"fmt"
	"time"

	"iescms_backend/internals/helpers/apperr"
	"iescms_backend/internals/helpers/dbtime"
)

/* =========================================================
   Recurrence (tagged union)
   Kolom varian di EventScheduleModel hanya dibaca/ditulis lewat sini.
========================================================= */

type Recurrence interface {
	Type() ScheduleType
}

type OneTimeRecurrence struct {
	Date time.Time
}

type WeeklyRecurrence struct {
	Days []int
}

type DailyRecurrence struct {
	StartDate time.Time
	EndDate   time.Time
}

func (OneTimeRecurrence) Type() ScheduleType { return ScheduleTypeOneTime }
func (WeeklyRecurrence) Type() ScheduleType  { return ScheduleTypeWeekly }
func (DailyRecurrence) Type() ScheduleType   { return ScheduleTypeDaily }

// Recurrence reads the variant fields selected by EventScheduleType.
func (m *EventScheduleModel) Recurrence() (Recurrence, error) {
	sid := m.EventScheduleID.String()
	switch m.EventScheduleType {
	case ScheduleTypeOneTime:
		if m.EventScheduleDate == nil {
			return nil, apperr.InvalidSchedule(sid, "date", "one-time schedule requires a date")
		}
		return OneTimeRecurrence{Date: dbtime.DateOf(*m.EventScheduleDate)}, nil
	case ScheduleTypeWeekly:
		days := make([]int, len(m.EventScheduleDays))
		copy(days, m.EventScheduleDays)
		return WeeklyRecurrence{Days: days}, nil
	case ScheduleTypeDaily:
		if m.EventScheduleStartDate == nil {
			return nil, apperr.InvalidSchedule(sid, "startDate", "daily schedule requires a start date")
		}
		if m.EventScheduleEndDate == nil {
			return nil, apperr.InvalidSchedule(sid, "endDate", "daily schedule requires an end date")
		}
		return DailyRecurrence{
			StartDate: dbtime.DateOf(*m.EventScheduleStartDate),
			EndDate:   dbtime.DateOf(*m.EventScheduleEndDate),
		}, nil
	default:
		return nil, apperr.InvalidSchedule(sid, "type", fmt.Sprintf("unknown schedule type %q", m.EventScheduleType))
	}
}

// SetRecurrence switches the schedule to r and clears the other variants.
func (m *EventScheduleModel) SetRecurrence(r Recurrence) error {
	m.EventScheduleDate = nil
	m.EventScheduleDays = nil
	m.EventScheduleStartDate = nil
	m.EventScheduleEndDate = nil

	switch v := r.(type) {
	case OneTimeRecurrence:
		d := dbtime.DateOf(v.Date)
		m.EventScheduleDate = &d
	case WeeklyRecurrence:
		m.EventScheduleDays = append(WeekdaySet{}, v.Days...)
	case DailyRecurrence:
		s, e := dbtime.DateOf(v.StartDate), dbtime.DateOf(v.EndDate)
		m.EventScheduleStartDate = &s
		m.EventScheduleEndDate = &e
	default:
		return apperr.InvalidSchedule(m.EventScheduleID.String(), "type", fmt.Sprintf("unsupported recurrence %T", r))
	}
	m.EventScheduleType = r.Type()
	return nil
}
