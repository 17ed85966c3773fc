package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"staffhub_backend/internals/constants"
	projectController "staffhub_backend/internals/features/projects/controller"
	authMiddleware "staffhub_backend/internals/middlewares/auth"
)

// ProjectRoutes mounts project CRUD and membership under /projects.
// Reads are open to any authenticated user, mutations are admin only.
func ProjectRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := projectController.NewProjectController(db)

	projects := app.Group("/projects", authMiddleware.AuthMiddleware(db))
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("project administration"), constants.AdminOnly...)

	projects.Get("/get_all", ctrl.GetAll)
	projects.Get("/get_project", ctrl.GetProject)

	projects.Post("/create", adminOnly, ctrl.Create)
	projects.Put("/update", adminOnly, ctrl.Update)
	projects.Delete("/delete", adminOnly, ctrl.Delete)
	projects.Post("/add_member", adminOnly, ctrl.AddMember)
	projects.Delete("/remove_member", adminOnly, ctrl.RemoveMember)
}
