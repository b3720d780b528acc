package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"iescms_backend/internals/features/attendance/attendances/model"
	"iescms_backend/internals/features/attendance/attendances/repository"
	"iescms_backend/internals/helpers/apperr"
)

type AttendanceReader interface {
	Count(ctx context.Context, eventID uuid.UUID, f repository.Filter) (int64, error)
	CursorRow(ctx context.Context, eventID, id uuid.UUID) (*model.EventAttendanceModel, error)
	ListAfter(ctx context.Context, eventID uuid.UUID, f repository.Filter, after *model.EventAttendanceModel, limit int) ([]model.EventAttendanceModel, error)
}

// Filter untuk query kehadiran. Types kosong = semua tipe.
type Filter struct {
	ActivityID      *uuid.UUID
	AttendanceTypes []model.AttendanceType
}

type Page struct {
	Records    []model.EventAttendanceModel
	TotalCount int64
	NextCursor string
}

// QueryEngine: filter + keyset pagination, read-only.
type QueryEngine struct {
	Store AttendanceReader
}

func NewQueryEngine(store AttendanceReader) *QueryEngine {
	return &QueryEngine{Store: store}
}

func normalizeTypes(in []model.AttendanceType) ([]model.AttendanceType, error) {
	if len(in) == 0 {
		return model.AllAttendanceTypes, nil
	}
	seen := make(map[model.AttendanceType]bool, len(in))
	out := make([]model.AttendanceType, 0, len(in))
	for _, t := range in {
		if !t.Valid() {
			return nil, apperr.InvalidArgument("types", fmt.Sprintf("unknown attendance type %q", t))
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}

/* =========================================================
   List
   - cursor "" = dari awal, selain itu id row terakhir yang sudah dikirim
   - total selalu dihitung, tidak terpengaruh limit/cursor
   - ambil limit+1 untuk tahu masih ada halaman berikutnya
========================================================= */

func (q *QueryEngine) List(ctx context.Context, eventID uuid.UUID, f Filter, limit int, cursor string) (*Page, error) {
	if limit <= 0 {
		return nil, apperr.InvalidArgument("limit", fmt.Sprintf("limit must be positive, got %d", limit))
	}
	types, err := normalizeTypes(f.AttendanceTypes)
	if err != nil {
		return nil, err
	}
	rf := repository.Filter{ActivityID: f.ActivityID, Types: types}

	var after *model.EventAttendanceModel
	if cursor != "" {
		id, err := uuid.Parse(cursor)
		if err != nil {
			return nil, apperr.InvalidArgument("cursor", "malformed cursor")
		}
		after, err = q.Store.CursorRow(ctx, eventID, id)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.InvalidArgument("cursor", "unknown cursor")
		}
		if err != nil {
			return nil, err
		}
	}

	total, err := q.Store.Count(ctx, eventID, rf)
	if err != nil {
		return nil, err
	}
	rows, err := q.Store.ListAfter(ctx, eventID, rf, after, limit+1)
	if err != nil {
		return nil, err
	}

	page := &Page{Records: rows, TotalCount: total}
	if len(rows) > limit {
		page.Records = rows[:limit]
		page.NextCursor = rows[limit-1].EventAttendanceID.String()
	}
	if page.Records == nil {
		page.Records = []model.EventAttendanceModel{}
	}
	return page, nil
}
