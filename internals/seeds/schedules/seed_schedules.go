package schedules

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"iescms_backend/internals/features/attendance/schedules/dto"
	"iescms_backend/internals/features/attendance/schedules/model"
	"iescms_backend/internals/features/attendance/schedules/service"
)

// SeedSchedulesFromJSON: file berisi []ScheduleRequest (kontrak yang sama
// dengan POST /schedules). Nama yang sudah ada dilewati.
func SeedSchedulesFromJSON(ctx context.Context, db *gorm.DB, svc *service.ScheduleService, filePath string, log *zap.Logger) (int, error) {
	log.Info("📥 Membaca file seed", zap.String("path", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var reqs []dto.ScheduleRequest
	if err := sonic.Unmarshal(file, &reqs); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	created := 0
	for _, r := range reqs {
		var existing model.EventScheduleModel
		err := db.WithContext(ctx).
			Select("event_schedule_id").
			Where("event_schedule_name = ?", r.Name).
			Take(&existing).Error
		if err == nil {
			log.Info("ℹ️ schedule sudah ada, lewati", zap.String("name", r.Name))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		m, err := r.ToModel(uuid.Nil)
		if err != nil {
			return created, fmt.Errorf("schedule %q: %w", r.Name, err)
		}
		if _, err := svc.CreateSchedule(ctx, m); err != nil {
			return created, fmt.Errorf("schedule %q: %w", r.Name, err)
		}
		created++
	}
	log.Info("✅ seed schedules selesai", zap.Int("created", created))
	return created, nil
}
