package seeds

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"iescms_backend/internals/features/attendance/schedules/repository"
	"iescms_backend/internals/features/attendance/schedules/service"
	"iescms_backend/internals/seeds/schedules"
)

const DefaultSchedulesFile = "internals/seeds/schedules/data_schedules.json"

func RunAllSeeds(ctx context.Context, db *gorm.DB, schedulesFile string, log *zap.Logger) error {
	if schedulesFile == "" {
		schedulesFile = DefaultSchedulesFile
	}

	//* Schedules
	svc := service.NewScheduleService(repository.NewScheduleRepository(db), log)
	_, err := schedules.SeedSchedulesFromJSON(ctx, db, svc, schedulesFile, log)
	return err
}
