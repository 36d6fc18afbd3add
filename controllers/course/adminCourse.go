package controllers

import (
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	"coursehub/utils"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func topicsJSON(topics []string) datatypes.JSON {
	if topics == nil {
		topics = []string{}
	}
	raw, _ := json.Marshal(topics)
	return datatypes.JSON(raw)
}

// AdminCreateCourse creates a new course. The initial status is derived from
// the dates unless the request itself cancels the course; the delivery type
// always follows the category.
func AdminCreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title           string
		Description     string
		StartDate       time.Time
		EndDate         time.Time
		StartTime       string
		EndTime         string
		Category        string
		Location        string
		MaxParticipants int
		Status          string
		Topics          []string
		YoutubeURL      string
		ThumbnailURL    string
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:            reqData.Title,
		Description:      reqData.Description,
		StartDate:        reqData.StartDate,
		EndDate:          reqData.EndDate,
		StartTime:        reqData.StartTime,
		EndTime:          reqData.EndTime,
		Category:         reqData.Category,
		Location:         reqData.Location,
		MaxParticipants:  reqData.MaxParticipants,
		ParticipantCount: 0,
		DeliveryType:     models.DeliveryTypeFor(reqData.Category),
		YoutubeURL:       reqData.YoutubeURL,
		ThumbnailURL:     reqData.ThumbnailURL,
		Topics:           topicsJSON(reqData.Topics),
		CreatedBy:        userID,
	}

	if reqData.Status == models.StatusCancelled {
		course.Status = models.StatusCancelled
	} else {
		course.Status = course.EffectiveStatus(time.Now())
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse applies a partial update. The delivery type is re-derived
// when the category changes, and the status is re-derived from the dates
// afterwards. A cancelled course stays cancelled.
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title           *string
		Description     *string
		StartDate       *time.Time
		EndDate         *time.Time
		StartTime       *string
		EndTime         *string
		Category        *string
		Location        *string
		MaxParticipants *int
		Status          *string
		Topics          *[]string
		YoutubeURL      *string
		ThumbnailURL    *string
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Cancellation is one way: a cancelled course cannot be moved back
	if course.Status == models.StatusCancelled && reqData.Status != nil && *reqData.Status != models.StatusCancelled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cancelled courses cannot be reactivated!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.StartDate != nil {
		course.StartDate = *reqData.StartDate
	}
	if reqData.EndDate != nil {
		course.EndDate = *reqData.EndDate
	}
	if reqData.StartTime != nil {
		course.StartTime = *reqData.StartTime
	}
	if reqData.EndTime != nil {
		course.EndTime = *reqData.EndTime
	}
	if reqData.Category != nil {
		course.Category = *reqData.Category
		course.DeliveryType = models.DeliveryTypeFor(*reqData.Category)
	}
	if reqData.Location != nil {
		course.Location = *reqData.Location
	}
	if reqData.MaxParticipants != nil {
		course.MaxParticipants = *reqData.MaxParticipants
	}
	if reqData.Status != nil {
		course.Status = *reqData.Status
	}
	if reqData.Topics != nil {
		course.Topics = topicsJSON(*reqData.Topics)
	}
	if reqData.YoutubeURL != nil {
		course.YoutubeURL = *reqData.YoutubeURL
	}
	if reqData.ThumbnailURL != nil {
		course.ThumbnailURL = *reqData.ThumbnailURL
	}

	// Re-derive after the dates may have moved; cancelled sticks
	course.Status = course.EffectiveStatus(time.Now())

	// participant_count is only ever written by the guarded join/leave
	// updates; writing the stale value read above would undo a concurrent join
	if err := database.Database.Db.Omit("participant_count").Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse removes a course for good, enrollments included
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	tx := database.Database.Db.Begin()

	if err := tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.Enrollment{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if err := tx.Unscoped().Delete(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminReconcileStatuses runs the status sweep on demand and reports how many
// rows it rewrote
func AdminReconcileStatuses(c *fiber.Ctx) error {
	count, err := utils.ReconcileCourseStatuses(database.Database.Db, time.Now())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Status reconciliation finished with errors!", fiber.Map{
			"updated": count,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course statuses reconciled successfully!", fiber.Map{
		"updated": count,
	})
}

// AdminUpdateYoutubeInfo patches the recording link of a course
func AdminUpdateYoutubeInfo(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	youtubeURL := c.Locals("youtubeURL").(string)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	course.YoutubeURL = youtubeURL

	if err := database.Database.Db.Omit("participant_count").Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update YouTube info!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "YouTube info updated successfully!", course)
}
