// file: internals/features/attendance/attendances/model/event_attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
   Enum
========================================================= */

type AttendanceType string

const (
	AttendanceTypeRegular   AttendanceType = "Regular"
	AttendanceTypeGuest     AttendanceType = "Guest"
	AttendanceTypeVolunteer AttendanceType = "Volunteer"
)

var AllAttendanceTypes = []AttendanceType{
	AttendanceTypeRegular,
	AttendanceTypeGuest,
	AttendanceTypeVolunteer,
}

func (t AttendanceType) Valid() bool {
	switch t {
	case AttendanceTypeRegular, AttendanceTypeGuest, AttendanceTypeVolunteer:
		return true
	}
	return false
}

/* =========================================================
   Model
   - id UUIDv7 (naik sesuai waktu), urutan list: (created_at, id)
========================================================= */

type EventAttendanceModel struct {
	EventAttendanceID         uuid.UUID      `gorm:"column:event_attendance_id;type:uuid;primaryKey" json:"event_attendance_id"`
	EventAttendanceEventID    uuid.UUID      `gorm:"column:event_attendance_event_id;type:uuid;not null;index:idx_event_attendances_filter,priority:1;uniqueIndex:uq_event_attendances_person,priority:1" json:"event_attendance_event_id"`
	EventAttendanceActivityID uuid.UUID      `gorm:"column:event_attendance_activity_id;type:uuid;not null;index:idx_event_attendances_filter,priority:2;uniqueIndex:uq_event_attendances_person,priority:2" json:"event_attendance_activity_id"`
	EventAttendanceType       AttendanceType `gorm:"column:event_attendance_type;type:varchar(16);not null;index:idx_event_attendances_filter,priority:3" json:"event_attendance_type"`
	EventAttendancePersonID   uuid.UUID      `gorm:"column:event_attendance_person_id;type:uuid;not null;uniqueIndex:uq_event_attendances_person,priority:3" json:"event_attendance_person_id"`

	EventAttendanceCheckInTime time.Time `gorm:"column:event_attendance_check_in_time;not null" json:"event_attendance_check_in_time"`
	EventAttendanceCreatedAt   time.Time `gorm:"column:event_attendance_created_at;not null;autoCreateTime" json:"event_attendance_created_at"`
}

func (EventAttendanceModel) TableName() string { return "event_attendances" }
