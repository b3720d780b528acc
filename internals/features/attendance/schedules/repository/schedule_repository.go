// file: internals/features/attendance/schedules/repository/schedule_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "iescms_backend/internals/databases"
	"iescms_backend/internals/features/attendance/schedules/model"
	"iescms_backend/internals/helpers/apperr"
)

type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

func preloadActivities(db *gorm.DB) *gorm.DB {
	return db.Order("event_schedule_activity_hour ASC, event_schedule_activity_minute ASC, event_schedule_activity_id ASC")
}

/* =========================================================
   READ
========================================================= */

func (r *ScheduleRepository) Get(ctx context.Context, id uuid.UUID) (*model.EventScheduleModel, error) {
	var m model.EventScheduleModel
	err := r.DB.WithContext(ctx).
		Preload("Activities", preloadActivities).
		Where("event_schedule_id = ?", id).
		Take(&m).Error
	if err != nil {
		return nil, database.TranslateError("get schedule", "schedule", id.String(), err)
	}
	return &m, nil
}

// List: keyset (created_at, id). lastID nil = dari awal.
func (r *ScheduleRepository) List(ctx context.Context, limit int, lastID *uuid.UUID) ([]model.EventScheduleModel, int64, error) {
	db := r.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&model.EventScheduleModel{}).Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError("count schedules", "schedule", "", err)
	}

	q := db.Model(&model.EventScheduleModel{})
	if lastID != nil {
		var cur model.EventScheduleModel
		err := db.Select("event_schedule_id", "event_schedule_created_at").
			Where("event_schedule_id = ?", *lastID).
			Take(&cur).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperr.InvalidArgument("last_id", "unknown cursor")
		}
		if err != nil {
			return nil, 0, database.TranslateError("get cursor", "schedule", lastID.String(), err)
		}
		q = q.Where(
			"event_schedule_created_at > ? OR (event_schedule_created_at = ? AND event_schedule_id > ?)",
			cur.EventScheduleCreatedAt, cur.EventScheduleCreatedAt, cur.EventScheduleID,
		)
	}

	var rows []model.EventScheduleModel
	err := q.Preload("Activities", preloadActivities).
		Order("event_schedule_created_at ASC, event_schedule_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, database.TranslateError("list schedules", "schedule", "", err)
	}
	return rows, total, nil
}

// IDsAfter dipakai job materializer buat jalan ke semua schedule per batch.
func (r *ScheduleRepository) IDsAfter(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB.WithContext(ctx).
		Model(&model.EventScheduleModel{}).
		Where("event_schedule_id > ?", after).
		Order("event_schedule_id ASC").
		Limit(limit).
		Pluck("event_schedule_id", &ids).Error
	if err != nil {
		return nil, database.TranslateError("list schedule ids", "schedule", "", err)
	}
	return ids, nil
}

/* =========================================================
   WRITE
========================================================= */

// Create insert schedule + aktivitasnya dalam satu transaksi.
func (r *ScheduleRepository) Create(ctx context.Context, s *model.EventScheduleModel) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(s).Error
	})
	return database.TranslateError("create schedule", "schedule", s.EventScheduleID.String(), err)
}

// UpdateHeader: replace header + kolom varian. Aktivitas tidak disentuh.
func (r *ScheduleRepository) UpdateHeader(ctx context.Context, s *model.EventScheduleModel) error {
	res := r.DB.WithContext(ctx).
		Model(&model.EventScheduleModel{}).
		Where("event_schedule_id = ?", s.EventScheduleID).
		Select(
			"event_schedule_name",
			"event_schedule_type",
			"event_schedule_timezone_offset",
			"event_schedule_date",
			"event_schedule_days",
			"event_schedule_start_date",
			"event_schedule_end_date",
			"event_schedule_updated_at",
		).
		Updates(s)
	if res.Error != nil {
		return database.TranslateError("update schedule", "schedule", s.EventScheduleID.String(), res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("schedule", s.EventScheduleID.String())
	}
	return nil
}

func (r *ScheduleRepository) CreateActivity(ctx context.Context, a *model.ActivityModel) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.ensureSchedule(tx, a.EventScheduleActivityScheduleID); err != nil {
			return err
		}
		return tx.Create(a).Error
	})
	return database.TranslateError("create activity", "activity", a.EventScheduleActivityID.String(), err)
}

func (r *ScheduleRepository) UpdateActivity(ctx context.Context, a *model.ActivityModel) error {
	res := r.DB.WithContext(ctx).
		Model(&model.ActivityModel{}).
		Where("event_schedule_activity_id = ? AND event_schedule_activity_schedule_id = ?",
			a.EventScheduleActivityID, a.EventScheduleActivityScheduleID).
		Select(
			"event_schedule_activity_name",
			"event_schedule_activity_hour",
			"event_schedule_activity_minute",
			"event_schedule_activity_timezone_offset",
			"event_schedule_activity_updated_at",
		).
		Updates(a)
	if res.Error != nil {
		return database.TranslateError("update activity", "activity", a.EventScheduleActivityID.String(), res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("activity", a.EventScheduleActivityID.String())
	}
	return nil
}

func (r *ScheduleRepository) DeleteActivity(ctx context.Context, scheduleID, activityID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("event_schedule_activity_id = ? AND event_schedule_activity_schedule_id = ?", activityID, scheduleID).
		Delete(&model.ActivityModel{})
	if res.Error != nil {
		return database.TranslateError("delete activity", "activity", activityID.String(), res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("activity", activityID.String())
	}
	return nil
}

func (r *ScheduleRepository) ensureSchedule(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&model.EventScheduleModel{}).Where("event_schedule_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("schedule", id.String())
	}
	return nil
}
