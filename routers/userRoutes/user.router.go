package userRoutes

import (
	courseControllers "coursehub/controllers/course"
	controllers "coursehub/controllers/userControllers"
	"coursehub/middleware"
	validators "coursehub/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up the authenticated user routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, controllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, validators.UpdateProfile(), controllers.UpdateProfile)

	// Courses the caller participates in; registered before /:id so the
	// literal path wins
	userGroup.Get("/courses", middleware.JWTMiddleware, courseControllers.GetUserCourses)

	userGroup.Get("/:id", middleware.JWTMiddleware, validators.UserID(), controllers.GetUserByID)
}
