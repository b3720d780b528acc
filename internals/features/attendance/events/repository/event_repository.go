// file: internals/features/attendance/events/repository/event_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "iescms_backend/internals/databases"
	"iescms_backend/internals/features/attendance/events/model"
	"iescms_backend/internals/helpers/apperr"
	"iescms_backend/internals/helpers/dbtime"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

// ListFilter: rentang tanggal inklusif, nil = tanpa batas.
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

/* =========================================================
   WRITE
========================================================= */

// InsertIfAbsent: INSERT ... ON CONFLICT DO NOTHING.
// inserted=false berarti (schedule, date) sudah ada (kalah race / sudah dimaterialisasi).
func (r *EventRepository) InsertIfAbsent(ctx context.Context, e *model.ChurchEventModel) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(e)
	if res.Error != nil {
		return false, database.TranslateError("insert event", "event", e.ChurchEventID.String(), res.Error)
	}
	return res.RowsAffected > 0, nil
}

/* =========================================================
   READ
========================================================= */

func (r *EventRepository) ExistingDates(ctx context.Context, scheduleID uuid.UUID) (dbtime.DateSet, error) {
	var dates []time.Time
	err := r.DB.WithContext(ctx).
		Model(&model.ChurchEventModel{}).
		Where("church_event_schedule_id = ?", scheduleID).
		Pluck("church_event_date", &dates).Error
	if err != nil {
		return nil, database.TranslateError("existing event dates", "schedule", scheduleID.String(), err)
	}
	return dbtime.NewDateSet(dates...), nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID uuid.UUID) (*model.ChurchEventModel, error) {
	var m model.ChurchEventModel
	err := r.DB.WithContext(ctx).
		Where("church_event_id = ?", eventID).
		Take(&m).Error
	if err != nil {
		return nil, database.TranslateError("get event", "event", eventID.String(), err)
	}
	return &m, nil
}

// Get: event harus milik scheduleID, selain itu NotFound.
func (r *EventRepository) Get(ctx context.Context, scheduleID, eventID uuid.UUID) (*model.ChurchEventModel, error) {
	var m model.ChurchEventModel
	err := r.DB.WithContext(ctx).
		Where("church_event_id = ? AND church_event_schedule_id = ?", eventID, scheduleID).
		Take(&m).Error
	if err != nil {
		return nil, database.TranslateError("get event", "event", eventID.String(), err)
	}
	return &m, nil
}

func (r *EventRepository) scoped(db *gorm.DB, scheduleID uuid.UUID, f ListFilter) *gorm.DB {
	q := db.Model(&model.ChurchEventModel{}).Where("church_event_schedule_id = ?", scheduleID)
	if f.StartDate != nil {
		q = q.Where("church_event_date >= ?", dbtime.DateOf(*f.StartDate))
	}
	if f.EndDate != nil {
		q = q.Where("church_event_date <= ?", dbtime.DateOf(*f.EndDate))
	}
	return q
}

// List: urut (date, id), keyset setelah lastID. total = semua yang cocok filter.
func (r *EventRepository) List(ctx context.Context, scheduleID uuid.UUID, f ListFilter, limit int, lastID *uuid.UUID) ([]model.ChurchEventModel, int64, error) {
	db := r.DB.WithContext(ctx)

	var total int64
	if err := r.scoped(db, scheduleID, f).Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError("count events", "event", "", err)
	}

	q := r.scoped(db, scheduleID, f)
	if lastID != nil {
		var cur model.ChurchEventModel
		err := db.Select("church_event_id", "church_event_date").
			Where("church_event_id = ? AND church_event_schedule_id = ?", *lastID, scheduleID).
			Take(&cur).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperr.InvalidArgument("last_id", "unknown cursor")
		}
		if err != nil {
			return nil, 0, database.TranslateError("get cursor", "event", lastID.String(), err)
		}
		q = q.Where(
			"church_event_date > ? OR (church_event_date = ? AND church_event_id > ?)",
			cur.ChurchEventDate, cur.ChurchEventDate, cur.ChurchEventID,
		)
	}

	var rows []model.ChurchEventModel
	err := q.Order("church_event_date ASC, church_event_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, database.TranslateError("list events", "event", "", err)
	}
	return rows, total, nil
}

// All: semua event dalam rentang (dipakai statistik), urut tanggal.
func (r *EventRepository) All(ctx context.Context, scheduleID uuid.UUID, f ListFilter) ([]model.ChurchEventModel, error) {
	var rows []model.ChurchEventModel
	err := r.scoped(r.DB.WithContext(ctx), scheduleID, f).
		Order("church_event_date ASC, church_event_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, database.TranslateError("list events", "event", "", err)
	}
	return rows, nil
}
