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

// JoinCourse adds the caller to a course's participant set.
// Checks run in order: course exists, not already enrolled, course still
// joinable, seat available. First failure wins.
func JoinCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	// Check if user is already enrolled
	var existing models.Enrollment
	err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}

	// Eligibility is checked against the derived status, not the stored one;
	// the stored value can be stale between sweeps.
	switch course.EffectiveStatus(time.Now()) {
	case models.StatusFinished:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot join a finished course!", nil)
	case models.StatusCancelled:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot join a cancelled course!", nil)
	}

	// The guarded increment reserves the seat; two racing joins cannot both
	// take the last one. The unique index on (user_id, course_id) closes the
	// duplicate-join race the same way.
	tx := database.Database.Db.Begin()

	res := tx.Model(&models.Course{}).
		Where("id = ? AND participant_count < max_participants", course.ID).
		Update("participant_count", gorm.Expr("participant_count + 1"))
	if res.Error != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join course!", nil)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This course is already full!", nil)
	}

	enrollment := models.Enrollment{
		UserID:   userID,
		CourseID: course.ID,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		// A concurrent join slipped in between the membership check and the
		// insert; the unique index reports it here.
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Joined course successfully!", nil)
}

// LeaveCourse removes the caller from a course's participant set
func LeaveCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are not enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}

	tx := database.Database.Db.Begin()

	// Hard delete, the seat is gone for good
	if err := tx.Unscoped().Delete(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to leave course!", nil)
	}

	if err := tx.Model(&models.Course{}).
		Where("id = ? AND participant_count > 0", course.ID).
		Update("participant_count", gorm.Expr("participant_count - 1")).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to leave course!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Left course successfully!", nil)
}
