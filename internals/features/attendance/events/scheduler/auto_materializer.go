// file: internals/features/attendance/events/scheduler/auto_materializer.go
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	eventModel "iescms_backend/internals/features/attendance/events/model"
	"iescms_backend/internals/helpers/apperr"
)

type ScheduleLister interface {
	IDsAfter(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error)
}

type EventCreator interface {
	CreateNextEvents(ctx context.Context, scheduleID uuid.UUID, strict bool) ([]eventModel.ChurchEventModel, error)
}

/* =========================================================
   AutoMaterializer
   Jalan ke semua schedule per batch, panggil CreateNextEvents (non-strict).
   Schedule yang invalid (mis. belum punya aktivitas) cuma di-skip.
========================================================= */

type AutoMaterializer struct {
	Schedules ScheduleLister
	Events    EventCreator
	Log       *zap.Logger
	BatchSize int
	// timeout per schedule
	Timeout time.Duration
}

type RunResult struct {
	Schedules int
	Created   int
	Skipped   int
	Failed    int
}

func (m *AutoMaterializer) log() *zap.Logger {
	if m.Log == nil {
		return zap.NewNop()
	}
	return m.Log
}

func (m *AutoMaterializer) RunOnce(ctx context.Context) (RunResult, error) {
	var res RunResult
	batch := m.BatchSize
	if batch <= 0 {
		batch = 100
	}
	timeout := m.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	after := uuid.Nil
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		ids, err := m.Schedules.IDsAfter(ctx, after, batch)
		if err != nil {
			return res, err
		}
		if len(ids) == 0 {
			return res, nil
		}

		for _, id := range ids {
			res.Schedules++
			sctx, cancel := context.WithTimeout(ctx, timeout)
			created, err := m.Events.CreateNextEvents(sctx, id, false)
			cancel()

			switch {
			case err == nil:
				res.Created += len(created)
			case errors.Is(err, apperr.ErrInvalidSchedule), errors.Is(err, apperr.ErrInvalidTime):
				res.Skipped++
				m.log().Debug("skip schedule", zap.String("schedule_id", id.String()), zap.Error(err))
			default:
				res.Failed++
				m.log().Warn("materialize failed", zap.String("schedule_id", id.String()), zap.Error(err))
			}
		}
		after = ids[len(ids)-1]
	}
}

// Start: daftarkan job cron (SkipIfStillRunning) dan jalankan.
// Panggil Stop() pada hasilnya saat shutdown.
func Start(spec string, m *AutoMaterializer) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()

		start := time.Now()
		res, err := m.RunOnce(ctx)
		fields := []zap.Field{
			zap.Int("schedules", res.Schedules),
			zap.Int("created", res.Created),
			zap.Int("skipped", res.Skipped),
			zap.Int("failed", res.Failed),
			zap.Duration("took", time.Since(start)),
		}
		if err != nil {
			m.log().Error("[AUTO-MATERIALIZE] run aborted", append(fields, zap.Error(err))...)
			return
		}
		m.log().Info("[AUTO-MATERIALIZE] run done", fields...)
	})
	if err != nil {
		return nil, fmt.Errorf("add cron %q: %w", spec, err)
	}

	m.log().Info("[AUTO-MATERIALIZE] started", zap.String("schedule", spec))
	c.Start()
	return c, nil
}
