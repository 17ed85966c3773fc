package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"staffhub_backend/internals/constants"
	userController "staffhub_backend/internals/features/users/user/controller"
	authMiddleware "staffhub_backend/internals/middlewares/auth"
)

// UserRoutes mounts employee account management under /users.
// The admin gate sits on the individual routes, never on the shared
// /users prefix, so it cannot bleed into the other /users features.
func UserRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := app.Group("/users")
	auth := authMiddleware.AuthMiddleware(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("employee administration"), constants.AdminOnly...)

	users.Get("/get_user", auth, ctrl.GetUser)
	users.Put("/update", auth, ctrl.Update)
	users.Post("/upload_dp", auth, ctrl.UploadDp)
	users.Get("/dp/:id", auth, ctrl.ServeDp)

	users.Get("/get_all", auth, adminOnly, ctrl.GetAll)
	users.Delete("/delete", auth, adminOnly, ctrl.Delete)
}
