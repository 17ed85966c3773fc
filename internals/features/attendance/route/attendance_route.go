package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "staffhub_backend/internals/features/attendance/controller"
	authMiddleware "staffhub_backend/internals/middlewares/auth"
)

// AttendanceRoutes mounts daily check-in/out under /users/attendance.
func AttendanceRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := attendanceController.NewAttendanceController(db)

	att := app.Group("/users/attendance", authMiddleware.AuthMiddleware(db))

	att.Post("/check_in", ctrl.CheckIn)
	att.Post("/check_out", ctrl.CheckOut)
	att.Get("/today", ctrl.Today)
	att.Get("/get_range", ctrl.GetRange)
}
