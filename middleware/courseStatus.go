package middleware

import (
	"coursehub/database"
	"coursehub/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CourseStatusSync refreshes the persisted course statuses before the request
// is handled, so list responses and the stored rows agree. A failed refresh is
// logged and the request continues; the read paths project the effective
// status themselves anyway.
func CourseStatusSync(c *fiber.Ctx) error {
	if _, err := utils.ReconcileCourseStatuses(database.Database.Db, time.Now()); err != nil {
		log.Printf("Error updating course statuses: %v", err)
	}
	return c.Next()
}
