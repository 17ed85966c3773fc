package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"staffhub_backend/internals/constants"
	authController "staffhub_backend/internals/features/users/auth/controller"
	"staffhub_backend/internals/middlewares"
	authMiddleware "staffhub_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the session endpoints.
// login/login_google are the only unauthenticated routes in the whole API.
// Guards are attached per route: a Group("") layer on /users would also
// run on every /users/* route the other features register later.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	users := app.Group("/users")
	auth := authMiddleware.AuthMiddleware(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("account registration"), constants.AdminOnly...)

	users.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	users.Post("/login_google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)

	users.Post("/logout", auth, ctrl.Logout)
	users.Get("/me", auth, ctrl.Me)
	users.Post("/change_password", auth, ctrl.ChangePassword)

	users.Post("/register", middlewares.RegisterRateLimiter(), auth, adminOnly, ctrl.Register)
}
