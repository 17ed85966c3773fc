package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"staffhub_backend/internals/constants"
	leaveController "staffhub_backend/internals/features/leaves/controller"
	authMiddleware "staffhub_backend/internals/middlewares/auth"
)

// LeaveRoutes mounts the leave workflow under /users/leave.
func LeaveRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := leaveController.NewLeaveController(db)

	leave := app.Group("/users/leave", authMiddleware.AuthMiddleware(db))
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("leave administration"), constants.AdminOnly...)

	leave.Post("/apply", ctrl.Apply)
	leave.Get("/view_particular_leaves", ctrl.ViewParticularLeaves)
	leave.Get("/balance", ctrl.Balance)

	leave.Get("/get_all", adminOnly, ctrl.GetAll)
	leave.Put("/approve", adminOnly, ctrl.Approve)
	leave.Put("/reject", adminOnly, ctrl.Reject)
}
