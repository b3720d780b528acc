// file: internals/features/attendance/schedules/service/time_resolver.go
package service

import (
	"time"

	"iescms_backend/internals/features/attendance/schedules/model"
	"iescms_backend/internals/helpers/apperr"
	"iescms_backend/internals/helpers/dbtime"
)

// ValidateClock cek range jam/menit aktivitas.
func ValidateClock(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return apperr.InvalidTime("hour", hour)
	}
	if minute < 0 || minute > 59 {
		return apperr.InvalidTime("minute", minute)
	}
	return nil
}

// ResolveActivityTime: tanggal occurrence + jam:menit lokal aktivitas → instant UTC.
// Offset aktivitas dipakai kalau ada, selain itu offset schedule.
func ResolveActivityTime(activity model.ActivityModel, scheduleOffset int, occurrenceDate time.Time) (time.Time, error) {
	if err := ValidateClock(activity.EventScheduleActivityHour, activity.EventScheduleActivityMinute); err != nil {
		return time.Time{}, err
	}
	return dbtime.CombineLocalDateAndClock(
		dbtime.DateOf(occurrenceDate),
		activity.EventScheduleActivityHour,
		activity.EventScheduleActivityMinute,
		activity.EffectiveOffset(scheduleOffset),
	), nil
}
