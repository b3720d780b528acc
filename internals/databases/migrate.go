package database

import (
	"gorm.io/gorm"

	attendanceModel "iescms_backend/internals/features/attendance/attendances/model"
	eventModel "iescms_backend/internals/features/attendance/events/model"
	scheduleModel "iescms_backend/internals/features/attendance/schedules/model"
)

// Migrate bikin/update tabel + index (termasuk unique (schedule, date)).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&scheduleModel.EventScheduleModel{},
		&scheduleModel.ActivityModel{},
		&eventModel.ChurchEventModel{},
		&attendanceModel.EventAttendanceModel{},
	)
}
