// file: internals/features/attendance/schedules/model/event_schedule_model.go
package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/* =========================================================
   Enum
========================================================= */

type ScheduleType string

const (
	ScheduleTypeOneTime ScheduleType = "OneTime"
	ScheduleTypeWeekly  ScheduleType = "Weekly"
	ScheduleTypeDaily   ScheduleType = "Daily"
)

/* =========================================================
   WeekdaySet
   - 0 = Sunday ... 6 = Saturday
   - Postgres: int[] (lib/pq), dialect lain: text "{0,3}"
========================================================= */

type WeekdaySet []int

func (s WeekdaySet) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	arr := make(pq.Int64Array, len(s))
	for i, d := range s {
		arr[i] = int64(d)
	}
	return arr.Value()
}

func (s *WeekdaySet) Scan(src any) error {
	var arr pq.Int64Array
	if err := arr.Scan(src); err != nil {
		return err
	}
	if arr == nil {
		*s = nil
		return nil
	}
	out := make(WeekdaySet, len(arr))
	for i, d := range arr {
		out[i] = int(d)
	}
	*s = out
	return nil
}

func (WeekdaySet) GormDataType() string { return "int[]" }

func (WeekdaySet) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "int[]"
	}
	return "text"
}

/* =========================================================
   Main Model
========================================================= */

type EventScheduleModel struct {
	EventScheduleID             uuid.UUID    `gorm:"column:event_schedule_id;type:uuid;primaryKey" json:"event_schedule_id"`
	EventScheduleName           string       `gorm:"column:event_schedule_name;type:varchar(160);not null" json:"event_schedule_name"`
	EventScheduleType           ScheduleType `gorm:"column:event_schedule_type;type:varchar(16);not null" json:"event_schedule_type"`
	EventScheduleTimezoneOffset int          `gorm:"column:event_schedule_timezone_offset;not null;default:0" json:"event_schedule_timezone_offset"`

	// OneTime
	EventScheduleDate *time.Time `gorm:"column:event_schedule_date;type:date" json:"event_schedule_date,omitempty"`
	// Weekly
	EventScheduleDays WeekdaySet `gorm:"column:event_schedule_days" json:"event_schedule_days,omitempty"`
	// Daily (inclusive)
	EventScheduleStartDate *time.Time `gorm:"column:event_schedule_start_date;type:date" json:"event_schedule_start_date,omitempty"`
	EventScheduleEndDate   *time.Time `gorm:"column:event_schedule_end_date;type:date" json:"event_schedule_end_date,omitempty"`

	Activities []ActivityModel `gorm:"foreignKey:EventScheduleActivityScheduleID;references:EventScheduleID;constraint:OnDelete:CASCADE" json:"activities"`

	EventScheduleCreatedAt time.Time `gorm:"column:event_schedule_created_at;not null;autoCreateTime" json:"event_schedule_created_at"`
	EventScheduleUpdatedAt time.Time `gorm:"column:event_schedule_updated_at;not null;autoUpdateTime" json:"event_schedule_updated_at"`
}

func (EventScheduleModel) TableName() string { return "event_schedules" }

type ActivityModel struct {
	EventScheduleActivityID         uuid.UUID `gorm:"column:event_schedule_activity_id;type:uuid;primaryKey" json:"event_schedule_activity_id"`
	EventScheduleActivityScheduleID uuid.UUID `gorm:"column:event_schedule_activity_schedule_id;type:uuid;not null;index" json:"event_schedule_activity_schedule_id"`
	EventScheduleActivityName       string    `gorm:"column:event_schedule_activity_name;type:varchar(160);not null" json:"event_schedule_activity_name"`
	EventScheduleActivityHour       int       `gorm:"column:event_schedule_activity_hour;not null" json:"event_schedule_activity_hour"`
	EventScheduleActivityMinute     int       `gorm:"column:event_schedule_activity_minute;not null" json:"event_schedule_activity_minute"`

	// nil = ikut offset schedule
	EventScheduleActivityTimezoneOffset *int `gorm:"column:event_schedule_activity_timezone_offset" json:"event_schedule_activity_timezone_offset,omitempty"`

	EventScheduleActivityCreatedAt time.Time `gorm:"column:event_schedule_activity_created_at;not null;autoCreateTime" json:"event_schedule_activity_created_at"`
	EventScheduleActivityUpdatedAt time.Time `gorm:"column:event_schedule_activity_updated_at;not null;autoUpdateTime" json:"event_schedule_activity_updated_at"`
}

func (ActivityModel) TableName() string { return "event_schedule_activities" }

// EffectiveOffset returns the activity's own offset, falling back to the
// owning schedule's.
func (a ActivityModel) EffectiveOffset(scheduleOffset int) int {
	if a.EventScheduleActivityTimezoneOffset != nil {
		return *a.EventScheduleActivityTimezoneOffset
	}
	return scheduleOffset
}
