package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"staffhub_backend/internals/constants"
	holidayController "staffhub_backend/internals/features/holidays/controller"
	authMiddleware "staffhub_backend/internals/middlewares/auth"
)

// HolidayRoutes mounts the holiday calendar under /holiday.
func HolidayRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := holidayController.NewHolidayController(db)

	holiday := app.Group("/holiday", authMiddleware.AuthMiddleware(db))
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("holiday administration"), constants.AdminOnly...)

	holiday.Get("/get_holidays", ctrl.GetHolidays)

	holiday.Post("/create", adminOnly, ctrl.Create)
	holiday.Put("/update", adminOnly, ctrl.Update)
	holiday.Delete("/delete", adminOnly, ctrl.Delete)
}
