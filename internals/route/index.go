// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "staffhub_backend/internals/features/attendance/route"
	holidayRoute "staffhub_backend/internals/features/holidays/route"
	leaveRoute "staffhub_backend/internals/features/leaves/route"
	projectRoute "staffhub_backend/internals/features/projects/route"
	timesheetRoute "staffhub_backend/internals/features/timesheets/route"
	authRoute "staffhub_backend/internals/features/users/auth/route"
	userRoute "staffhub_backend/internals/features/users/user/route"
)

var startTime time.Time

// SetupRoutes mounts every feature router on the app.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up UserRoutes...")
	userRoute.UserRoutes(app, db)

	log.Println("[INFO] Setting up AttendanceRoutes...")
	attendanceRoute.AttendanceRoutes(app, db)

	log.Println("[INFO] Setting up TimesheetRoutes...")
	timesheetRoute.TimesheetRoutes(app, db)

	log.Println("[INFO] Setting up LeaveRoutes...")
	leaveRoute.LeaveRoutes(app, db)

	log.Println("[INFO] Setting up HolidayRoutes...")
	holidayRoute.HolidayRoutes(app, db)

	log.Println("[INFO] Setting up ProjectRoutes...")
	projectRoute.ProjectRoutes(app, db)
}
