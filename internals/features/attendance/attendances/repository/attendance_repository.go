// file: internals/features/attendance/attendances/repository/attendance_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "iescms_backend/internals/databases"
	"iescms_backend/internals/features/attendance/attendances/model"
)

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// Filter: ActivityID nil = semua activity. Types kosong = semua tipe.
type Filter struct {
	ActivityID *uuid.UUID
	Types      []model.AttendanceType
}

// TypeCount: hasil agregasi per (event, tipe).
type TypeCount struct {
	EventID uuid.UUID            `gorm:"column:event_id"`
	Type    model.AttendanceType `gorm:"column:attendance_type"`
	Total   int64                `gorm:"column:total"`
}

/* =========================================================
   WRITE
========================================================= */

// Create: duplikat (event, activity, person) → Conflict.
func (r *AttendanceRepository) Create(ctx context.Context, m *model.EventAttendanceModel) error {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return database.TranslateError("create attendance", "attendance", m.EventAttendanceID.String(), err)
	}
	return nil
}

/* =========================================================
   READ
========================================================= */

func (r *AttendanceRepository) scoped(db *gorm.DB, eventID uuid.UUID, f Filter) *gorm.DB {
	q := db.Model(&model.EventAttendanceModel{}).Where("event_attendance_event_id = ?", eventID)
	if f.ActivityID != nil {
		q = q.Where("event_attendance_activity_id = ?", *f.ActivityID)
	}
	if len(f.Types) > 0 {
		q = q.Where("event_attendance_type IN ?", f.Types)
	}
	return q
}

func (r *AttendanceRepository) Count(ctx context.Context, eventID uuid.UUID, f Filter) (int64, error) {
	var n int64
	if err := r.scoped(r.DB.WithContext(ctx), eventID, f).Count(&n).Error; err != nil {
		return 0, database.TranslateError("count attendance", "attendance", "", err)
	}
	return n, nil
}

// CursorRow: row batas pagination, harus milik eventID. Tidak ada → NotFound.
func (r *AttendanceRepository) CursorRow(ctx context.Context, eventID, id uuid.UUID) (*model.EventAttendanceModel, error) {
	var m model.EventAttendanceModel
	err := r.DB.WithContext(ctx).
		Select("event_attendance_id", "event_attendance_created_at").
		Where("event_attendance_id = ? AND event_attendance_event_id = ?", id, eventID).
		Take(&m).Error
	if err != nil {
		return nil, database.TranslateError("get cursor", "attendance", id.String(), err)
	}
	return &m, nil
}

// ListAfter: urut (created_at, id), strictly setelah row after (nil = dari awal).
func (r *AttendanceRepository) ListAfter(ctx context.Context, eventID uuid.UUID, f Filter, after *model.EventAttendanceModel, limit int) ([]model.EventAttendanceModel, error) {
	q := r.scoped(r.DB.WithContext(ctx), eventID, f)
	if after != nil {
		q = q.Where(
			"event_attendance_created_at > ? OR (event_attendance_created_at = ? AND event_attendance_id > ?)",
			after.EventAttendanceCreatedAt, after.EventAttendanceCreatedAt, after.EventAttendanceID,
		)
	}

	var rows []model.EventAttendanceModel
	err := q.Order("event_attendance_created_at ASC, event_attendance_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, database.TranslateError("list attendance", "attendance", "", err)
	}
	return rows, nil
}

// CountByType: jumlah kehadiran per (event, tipe) untuk daftar event.
func (r *AttendanceRepository) CountByType(ctx context.Context, eventIDs []uuid.UUID) ([]TypeCount, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	var out []TypeCount
	err := r.DB.WithContext(ctx).
		Model(&model.EventAttendanceModel{}).
		Select("event_attendance_event_id AS event_id, event_attendance_type AS attendance_type, COUNT(*) AS total").
		Where("event_attendance_event_id IN ?", eventIDs).
		Group("event_attendance_event_id, event_attendance_type").
		Scan(&out).Error
	if err != nil {
		return nil, database.TranslateError("attendance stats", "attendance", "", err)
	}
	return out, nil
}
