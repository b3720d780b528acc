// file: internals/features/attendance/events/model/church_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventActivity: snapshot aktivitas saat event dibuat (tidak ikut berubah
// kalau aktivitas schedule diedit).
type EventActivity struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Time time.Time `json:"time"` // UTC
}

type ChurchEventModel struct {
	ChurchEventID         uuid.UUID `gorm:"column:church_event_id;type:uuid;primaryKey" json:"church_event_id"`
	ChurchEventScheduleID uuid.UUID `gorm:"column:church_event_schedule_id;type:uuid;not null;uniqueIndex:uq_church_events_schedule_date,priority:1" json:"church_event_schedule_id"`
	// tanggal kalender, disimpan midnight UTC
	ChurchEventDate time.Time `gorm:"column:church_event_date;type:date;not null;uniqueIndex:uq_church_events_schedule_date,priority:2" json:"church_event_date"`
	ChurchEventName string    `gorm:"column:church_event_name;type:varchar(160);not null" json:"church_event_name"`

	ChurchEventActivities datatypes.JSONSlice[EventActivity] `gorm:"column:church_event_activities;not null" json:"church_event_activities"`

	ChurchEventCreatedAt time.Time `gorm:"column:church_event_created_at;not null;autoCreateTime" json:"church_event_created_at"`
}

func (ChurchEventModel) TableName() string { return "church_events" }

// EventIDFor: id deterministik per (schedule, tanggal).
func EventIDFor(scheduleID uuid.UUID, date time.Time) uuid.UUID {
	return uuid.NewSHA1(scheduleID, []byte(date.UTC().Format("2006-01-02")))
}

// HasActivity cek apakah activityID ada di snapshot event.
func (e *ChurchEventModel) HasActivity(activityID uuid.UUID) bool {
	for _, a := range e.ChurchEventActivities {
		if a.ID == activityID {
			return true
		}
	}
	return false
}
