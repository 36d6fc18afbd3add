package adminRoutes

import (
	controllers "coursehub/controllers/admin"
	"coursehub/middleware"
	validators "coursehub/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminUserRoutes sets up the admin user management routes
func SetupAdminUserRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/users", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/", validators.UserList(), controllers.UserList)
	adminGroup.Delete("/:id", validators.UserID(), controllers.DeleteUser)
	adminGroup.Put("/:id/role", validators.UpdateUserRole(), controllers.UpdateUserRole)
}
