package database

import (
	"gorm.io/gorm"

	attendanceModel "staffhub_backend/internals/features/attendance/model"
	holidayModel "staffhub_backend/internals/features/holidays/model"
	leaveModel "staffhub_backend/internals/features/leaves/model"
	projectModel "staffhub_backend/internals/features/projects/model"
	timesheetModel "staffhub_backend/internals/features/timesheets/model"
	authModel "staffhub_backend/internals/features/users/auth/model"
	userModel "staffhub_backend/internals/features/users/user/model"
)

// AllModels is the single source of truth for schema migration; tests reuse
// it against an in-memory database.
func AllModels() []interface{} {
	return []interface{}{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&attendanceModel.AttendanceRecord{},
		&timesheetModel.TimesheetModel{},
		&leaveModel.LeaveApplication{},
		&holidayModel.HolidayModel{},
		&projectModel.ProjectModel{},
		&projectModel.ProjectMemberModel{},
	}
}

// Migrate runs gorm AutoMigrate over every model. Gated behind
// DB_AUTOMIGRATE in main so production schemas stay hand-managed.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
