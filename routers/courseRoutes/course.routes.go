package courseRoutes

import (
	controllers "coursehub/controllers/course"
	"coursehub/middleware"
	validators "coursehub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public and user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Listing syncs stored statuses first so the rows match what is returned
	courseGroup.Get("/list", middleware.CourseStatusSync, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseByID)

	// Enrollment
	courseGroup.Post("/:id/join", middleware.JWTMiddleware, validators.JoinCourse(), controllers.JoinCourse)
	courseGroup.Post("/:id/leave", middleware.JWTMiddleware, validators.LeaveCourse(), controllers.LeaveCourse)
}
