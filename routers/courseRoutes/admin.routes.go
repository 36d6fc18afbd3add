package courseRoutes

import (
	controllers "coursehub/controllers/course"
	"coursehub/middleware"
	validators "coursehub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up the admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/list", middleware.CourseStatusSync, validators.CourseList(), controllers.GetAllCourses)
	adminGroup.Post("/create", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Patch("/:id/youtube", validators.UpdateYoutubeInfo(), controllers.AdminUpdateYoutubeInfo)
	adminGroup.Post("/reconcile", controllers.AdminReconcileStatuses)

	dashGroup := app.Group("/admin/dashboard", middleware.JWTMiddleware, middleware.AdminOnly)
	dashGroup.Get("/stats", controllers.AdminDashboardStats)
	dashGroup.Get("/popular-categories", controllers.AdminPopularCategories)
}
