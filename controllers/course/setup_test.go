package controllers

import (
	"bytes"
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	validators "coursehub/validators/course"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testAuth stands in for the JWT middleware; the acting user comes from a
// request header
func testAuth(c *fiber.Ctx) error {
	if id, err := strconv.Atoi(c.Get("X-Test-User")); err == nil && id > 0 {
		c.Locals("userId", uint(id))
	}
	return c.Next()
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()

	app.Get("/course/list", validators.CourseList(), GetAllCourses)
	app.Get("/course/:id", validators.CourseID(), GetCourseByID)
	app.Post("/course/:id/join", testAuth, validators.JoinCourse(), JoinCourse)
	app.Post("/course/:id/leave", testAuth, validators.LeaveCourse(), LeaveCourse)

	app.Post("/admin/course/create", testAuth, middleware.AdminOnly, validators.CreateCourse(), AdminCreateCourse)
	app.Put("/admin/course/:id", testAuth, middleware.AdminOnly, validators.UpdateCourse(), AdminUpdateCourse)
	app.Delete("/admin/course/:id", testAuth, middleware.AdminOnly, validators.CourseID(), AdminDeleteCourse)
	app.Get("/admin/dashboard/stats", testAuth, middleware.AdminOnly, AdminDashboardStats)
	app.Post("/admin/course/reconcile", testAuth, middleware.AdminOnly, AdminReconcileStatuses)

	return app
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path string, userID uint, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set("X-Test-User", fmt.Sprint(userID))
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed apiResponse
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}

	return resp.StatusCode, parsed
}

func createTestUser(t *testing.T, email, role string) models.User {
	t.Helper()

	user := models.User{
		Email:     email,
		Password:  "hashed",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func createTestCourse(t *testing.T, status string, start, end time.Time, capacity int) models.Course {
	t.Helper()

	course := models.Course{
		Title:           "Go Basics",
		Description:     "An introduction",
		StartDate:       start,
		EndDate:         end,
		Category:        models.CategoryOnlineLive,
		MaxParticipants: capacity,
		Status:          status,
		DeliveryType:    models.DeliveryLive,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func coursePath(course models.Course, suffix string) string {
	return fmt.Sprintf("/course/%d%s", course.ID, suffix)
}
