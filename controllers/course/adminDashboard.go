package controllers

import (
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboardStats aggregates course and enrollment numbers for the admin
// dashboard
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalCourses, totalUsers, totalParticipants, activeCourses, finishedCourses int64

	db.Model(&models.Course{}).Count(&totalCourses)
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.Enrollment{}).Count(&totalParticipants)
	db.Model(&models.Course{}).Where("status = ?", models.StatusActive).Count(&activeCourses)
	db.Model(&models.Course{}).Where("status = ?", models.StatusFinished).Count(&finishedCourses)

	type bucket struct {
		Key   string `json:"key"`
		Count int64  `json:"count"`
	}

	var byCategory []bucket
	db.Model(&models.Course{}).
		Select("category as key, count(*) as count").
		Group("category").
		Scan(&byCategory)

	var byStatus []bucket
	db.Model(&models.Course{}).
		Select("status as key, count(*) as count").
		Group("status").
		Scan(&byStatus)

	var avgParticipants float64
	db.Model(&models.Course{}).
		Select("coalesce(avg(participant_count), 0)").
		Scan(&avgParticipants)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"stats": fiber.Map{
			"total_courses":        totalCourses,
			"total_users":          totalUsers,
			"total_participants":   totalParticipants,
			"active_courses":       activeCourses,
			"finished_courses":     finishedCourses,
			"courses_by_category":  byCategory,
			"courses_by_status":    byStatus,
			"average_participants": avgParticipants,
		},
	})
}

// AdminPopularCategories ranks categories by enrollment volume
func AdminPopularCategories(c *fiber.Ctx) error {
	type categoryStats struct {
		Category            string  `json:"category"`
		TotalParticipants   int64   `json:"total_participants"`
		CourseCount         int64   `json:"course_count"`
		AverageParticipants float64 `json:"average_participants"`
	}

	var categories []categoryStats
	if err := database.Database.Db.Model(&models.Enrollment{}).
		Select("courses.category as category, count(*) as total_participants, count(distinct courses.id) as course_count, count(*) * 1.0 / count(distinct courses.id) as average_participants").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Group("courses.category").
		Order("total_participants desc").
		Scan(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch category stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Popular categories fetched successfully!", fiber.Map{
		"categories": categories,
	})
}
