package controllers

import (
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// withEffectiveStatus projects the derived lifecycle status onto the courses
// about to be returned. Nothing is persisted here.
func withEffectiveStatus(courses []models.Course, now time.Time) []models.Course {
	for i := range courses {
		courses[i].Status = courses[i].EffectiveStatus(now)
	}
	return courses
}

// GetAllCourses lists courses with their effective status
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int
		Limit *int
	})
	if !ok {
		// No pagination requested, return everything
		var courses []models.Course
		if err := database.Database.Db.Order("start_date asc").Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
			"courses": withEffectiveStatus(courses, time.Now()),
		})
	}

	// Set default pagination
	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Course{})

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).Order("start_date asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": withEffectiveStatus(courses, time.Now()),
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseByID returns a single course with its effective status and the
// names of its participants
func GetCourseByID(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	course.Status = course.EffectiveStatus(time.Now())

	type Participant struct {
		UserID    uint   `json:"user_id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	var participants []Participant
	if err := database.Database.Db.Model(&models.Enrollment{}).
		Select("enrollments.user_id, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Where("enrollments.course_id = ?", course.ID).
		Order("enrollments.id asc").
		Scan(&participants).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch participants!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":       course,
		"participants": participants,
	})
}

// GetUserCourses lists the courses the caller participates in
func GetUserCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Order("courses.start_date asc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": withEffectiveStatus(courses, time.Now()),
	})
}
