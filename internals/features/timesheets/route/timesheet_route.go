package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	timesheetController "staffhub_backend/internals/features/timesheets/controller"
	authMiddleware "staffhub_backend/internals/middlewares/auth"
)

// TimesheetRoutes mounts the timesheet endpoints under /users/time_sheet.
// Admins may pass ?userId= to view another employee's sheet; employees are
// always scoped to themselves (enforced in the target-user resolver).
func TimesheetRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := timesheetController.NewTimesheetController(db)

	ts := app.Group("/users/time_sheet", authMiddleware.AuthMiddleware(db))

	ts.Post("/create", ctrl.Create)
	ts.Get("/get_data_range", ctrl.GetDataRange)
	ts.Get("/month_grid", ctrl.MonthGrid)
}
