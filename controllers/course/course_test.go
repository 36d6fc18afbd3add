package controllers

import (
	"coursehub/database"
	"coursehub/models"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetAllCoursesProjectsEffectiveStatus(t *testing.T) {
	app := setupTestApp(t)
	now := time.Now()

	// Stored statuses are stale on purpose
	past := createTestCourse(t, models.StatusActive, now.Add(-48*time.Hour), now.Add(-24*time.Hour), 5)
	future := createTestCourse(t, models.StatusActive, now.Add(24*time.Hour), now.Add(48*time.Hour), 5)
	cancelled := createTestCourse(t, models.StatusCancelled, now.Add(-time.Hour), now.Add(time.Hour), 5)

	code, resp := doRequest(t, app, fiber.MethodGet, "/course/list", 0, nil)
	require.Equal(t, fiber.StatusOK, code)

	var data struct {
		Courses []models.Course `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Courses, 3)

	statuses := make(map[uint]string)
	for _, course := range data.Courses {
		statuses[course.ID] = course.Status
	}
	assert.Equal(t, models.StatusFinished, statuses[past.ID])
	assert.Equal(t, models.StatusPlanned, statuses[future.ID])
	assert.Equal(t, models.StatusCancelled, statuses[cancelled.ID])
}

func TestGetAllCoursesPagination(t *testing.T) {
	app := setupTestApp(t)
	now := time.Now()

	for i := 0; i < 5; i++ {
		createTestCourse(t, models.StatusPlanned, now.Add(time.Duration(i+1)*24*time.Hour), now.Add(time.Duration(i+2)*24*time.Hour), 5)
	}

	code, resp := doRequest(t, app, fiber.MethodGet, "/course/list?page=1&limit=2", 0, nil)
	require.Equal(t, fiber.StatusOK, code)

	var data struct {
		Courses    []models.Course `json:"courses"`
		Pagination struct {
			Total int `json:"total"`
			Page  int `json:"page"`
			Limit int `json:"limit"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Len(t, data.Courses, 2)
	assert.Equal(t, 5, data.Pagination.Total)
}

func TestGetCourseByIDNotFound(t *testing.T) {
	app := setupTestApp(t)

	code, _ := doRequest(t, app, fiber.MethodGet, "/course/999", 0, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestGetCourseByIDParticipantsQueryFailure(t *testing.T) {
	app := setupTestApp(t)
	now := time.Now()

	course := createTestCourse(t, models.StatusActive, now.Add(-time.Hour), now.Add(time.Hour), 5)

	// Losing the users table makes the participants join fail; that must
	// surface as a server error, not an empty participant list
	require.NoError(t, database.Database.Db.Migrator().DropTable(&models.User{}))

	code, resp := doRequest(t, app, fiber.MethodGet, coursePath(course, ""), 0, nil)
	require.Equal(t, fiber.StatusInternalServerError, code)
	assert.False(t, resp.Status)
}

func TestAdminCreateCourse(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)

	body := fiber.Map{
		"title":            "Go for Beginners",
		"description":      "Learn the basics",
		"start_date":       time.Now().Add(-24 * time.Hour).Format(time.RFC3339),
		"end_date":         time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"category":         models.CategoryOnlineCourse,
		"max_participants": 20,
		"topics":           []string{"syntax", "tooling"},
	}

	code, resp := doRequest(t, app, fiber.MethodPost, "/admin/course/create", admin.ID, body)
	require.Equal(t, fiber.StatusCreated, code)

	var course models.Course
	require.NoError(t, json.Unmarshal(resp.Data, &course))

	// Delivery type follows the category, status follows the dates
	assert.Equal(t, models.DeliveryRecorded, course.DeliveryType)
	assert.Equal(t, models.StatusActive, course.Status)
	assert.Equal(t, 0, course.ParticipantCount)
	assert.Equal(t, admin.ID, course.CreatedBy)
}

func TestAdminCreateCourseRejectsNonAdmin(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "user@example.com", models.RoleUser)

	body := fiber.Map{
		"title":            "Nope",
		"description":      "Nope",
		"start_date":       time.Now().Format(time.RFC3339),
		"category":         models.CategoryOnlineLive,
		"max_participants": 5,
	}

	code, _ := doRequest(t, app, fiber.MethodPost, "/admin/course/create", user.ID, body)
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestAdminCreateCourseValidation(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)

	// Classroom courses need a location
	body := fiber.Map{
		"title":            "On site",
		"description":      "In person",
		"start_date":       time.Now().Format(time.RFC3339),
		"category":         models.CategoryClassroom,
		"max_participants": 5,
	}

	code, _ := doRequest(t, app, fiber.MethodPost, "/admin/course/create", admin.ID, body)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
}

func TestAdminUpdateCourseRederivesDeliveryType(t *testing.T) {
	app := setupTestApp(t)
	now := time.Now()

	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)
	course := createTestCourse(t, models.StatusActive, now.Add(-time.Hour), now.Add(time.Hour), 5)

	body := fiber.Map{"category": models.CategoryOnlineCourse}

	code, resp := doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/admin/course/%d", course.ID), admin.ID, body)
	require.Equal(t, fiber.StatusOK, code)

	var updated models.Course
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, models.DeliveryRecorded, updated.DeliveryType)

	// And back again
	body = fiber.Map{"category": models.CategoryOnlineLive}
	code, resp = doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/admin/course/%d", course.ID), admin.ID, body)
	require.Equal(t, fiber.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, models.DeliveryLive, updated.DeliveryType)
}

func TestAdminUpdateCourseRederivesStatusFromDates(t *testing.T) {
	app := setupTestApp(t)
	now := time.Now()

	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)
	course := createTestCourse(t, models.StatusActive, now.Add(-time.Hour), now.Add(time.Hour), 5)

	// Moving the dates into the future turns the course back into planned
	body := fiber.Map{
		"start_date": now.Add(24 * time.Hour).Format(time.RFC3339),
		"end_date":   now.Add(48 * time.Hour).Format(time.RFC3339),
	}

	code, resp := doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/admin/course/%d", course.ID), admin.ID, body)
	require.Equal(t, fiber.StatusOK, code)

	var updated models.Course
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, models.StatusPlanned, updated.Status)
}

func TestAdminUpdateCourseCancelledIsSticky(t *testing.T) {
	app := setupTestApp(t)
	now := time.Now()

	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)
	course := createTestCourse(t, models.StatusActive, now.Add(-time.Hour), now.Add(time.Hour), 5)

	// Cancel it
	code, _ := doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/admin/course/%d", course.ID), admin.ID,
		fiber.Map{"status": models.StatusCancelled})
	require.Equal(t, fiber.StatusOK, code)

	var got models.Course
	require.NoError(t, database.Database.Db.First(&got, course.ID).Error)
	require.Equal(t, models.StatusCancelled, got.Status)

	// No way back out
	code, resp := doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/admin/course/%d", course.ID), admin.ID,
		fiber.Map{"status": models.StatusActive})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, resp.Message, "Cancelled")

	// Unrelated edits keep the cancellation in place
	code, _ = doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/admin/course/%d", course.ID), admin.ID,
		fiber.Map{"title": "Renamed"})
	require.Equal(t, fiber.StatusOK, code)
	require.NoError(t, database.Database.Db.First(&got, course.ID).Error)
	assert.Equal(t, models.StatusCancelled, got.Status)
	assert.Equal(t, "Renamed", got.Title)
}

func TestAdminUpdateCourseKeepsParticipantCount(t *testing.T) {
	app := setupTestApp(t)
	now := time.Now()

	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)
	course := createTestCourse(t, models.StatusActive, now.Add(-time.Hour), now.Add(time.Hour), 5)

	// A join commits between the handler's read and its write; the update
	// must not write the stale counter back over it
	err := database.Database.Db.Callback().Update().Before("gorm:update").Register("join_between_read_and_write", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "courses" {
			tx.Session(&gorm.Session{NewDB: true}).Exec(
				"UPDATE courses SET participant_count = participant_count + 1 WHERE id = ? AND participant_count < max_participants",
				course.ID,
			)
		}
	})
	require.NoError(t, err)

	code, _ := doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/admin/course/%d", course.ID), admin.ID, fiber.Map{"title": "Renamed"})
	require.Equal(t, fiber.StatusOK, code)

	var got models.Course
	require.NoError(t, database.Database.Db.First(&got, course.ID).Error)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, 1, got.ParticipantCount)
}

func TestAdminDeleteCourse(t *testing.T) {
	app := setupTestApp(t)
	now := time.Now()

	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)
	user := createTestUser(t, "user@example.com", models.RoleUser)
	course := createTestCourse(t, models.StatusActive, now.Add(-time.Hour), now.Add(time.Hour), 5)

	code, _ := doRequest(t, app, fiber.MethodPost, coursePath(course, "/join"), user.ID, nil)
	require.Equal(t, fiber.StatusOK, code)

	code, _ = doRequest(t, app, fiber.MethodDelete, fmt.Sprintf("/admin/course/%d", course.ID), admin.ID, nil)
	require.Equal(t, fiber.StatusOK, code)

	// Course and its participant set are gone for good
	var courseCount, enrollmentCount int64
	database.Database.Db.Unscoped().Model(&models.Course{}).Where("id = ?", course.ID).Count(&courseCount)
	database.Database.Db.Unscoped().Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrollmentCount)
	assert.EqualValues(t, 0, courseCount)
	assert.EqualValues(t, 0, enrollmentCount)

	code, _ = doRequest(t, app, fiber.MethodDelete, fmt.Sprintf("/admin/course/%d", course.ID), admin.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestAdminReconcileStatuses(t *testing.T) {
	app := setupTestApp(t)
	now := time.Now()

	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)
	stale := createTestCourse(t, models.StatusActive, now.Add(-48*time.Hour), now.Add(-24*time.Hour), 5)

	code, resp := doRequest(t, app, fiber.MethodPost, "/admin/course/reconcile", admin.ID, nil)
	require.Equal(t, fiber.StatusOK, code)

	var data struct {
		Updated int64 `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.EqualValues(t, 1, data.Updated)

	var got models.Course
	require.NoError(t, database.Database.Db.First(&got, stale.ID).Error)
	assert.Equal(t, models.StatusFinished, got.Status)
}

func TestAdminDashboardStats(t *testing.T) {
	app := setupTestApp(t)
	now := time.Now()

	admin := createTestUser(t, "admin@example.com", models.RoleAdmin)
	user := createTestUser(t, "user@example.com", models.RoleUser)
	course := createTestCourse(t, models.StatusActive, now.Add(-time.Hour), now.Add(time.Hour), 5)
	createTestCourse(t, models.StatusFinished, now.Add(-48*time.Hour), now.Add(-24*time.Hour), 5)

	code, _ := doRequest(t, app, fiber.MethodPost, coursePath(course, "/join"), user.ID, nil)
	require.Equal(t, fiber.StatusOK, code)

	code, resp := doRequest(t, app, fiber.MethodGet, "/admin/dashboard/stats", admin.ID, nil)
	require.Equal(t, fiber.StatusOK, code)

	var data struct {
		Stats struct {
			TotalCourses      int64 `json:"total_courses"`
			TotalParticipants int64 `json:"total_participants"`
			ActiveCourses     int64 `json:"active_courses"`
			FinishedCourses   int64 `json:"finished_courses"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.EqualValues(t, 2, data.Stats.TotalCourses)
	assert.EqualValues(t, 1, data.Stats.TotalParticipants)
	assert.EqualValues(t, 1, data.Stats.ActiveCourses)
	assert.EqualValues(t, 1, data.Stats.FinishedCourses)
}
