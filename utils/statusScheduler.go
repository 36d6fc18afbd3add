package utils

import (
	"coursehub/models"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[STATUS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// ReconcileCourseStatuses rewrites the persisted status of every course whose
// dates have drifted past the stored value. Cancelled courses are never
// touched. Each bucket is its own batch update, so a failing bucket does not
// block the others. Running it again with no elapsed time writes nothing.
//
// The same derivation backs the read paths via Course.EffectiveStatus; the
// date comparisons here must stay in lockstep with it.
func ReconcileCourseStatuses(db *gorm.DB, now time.Time) (int64, error) {
	var updated int64
	var firstErr error

	// endDate passed -> finished
	res := db.Model(&models.Course{}).
		Where("end_date < ? AND status NOT IN ?", now, []string{models.StatusFinished, models.StatusCancelled}).
		Update("status", models.StatusFinished)
	if res.Error != nil {
		firstErr = res.Error
		logScheduler("Error marking finished courses: " + res.Error.Error())
	} else {
		updated += res.RowsAffected
	}

	// startDate still ahead -> planned. The end_date guard keeps inverted
	// ranges (endDate before startDate) in finished, matching EffectiveStatus.
	res = db.Model(&models.Course{}).
		Where("start_date > ? AND end_date >= ? AND status NOT IN ?", now, now, []string{models.StatusPlanned, models.StatusCancelled}).
		Update("status", models.StatusPlanned)
	if res.Error != nil {
		if firstErr == nil {
			firstErr = res.Error
		}
		logScheduler("Error marking planned courses: " + res.Error.Error())
	} else {
		updated += res.RowsAffected
	}

	// running right now, boundaries inclusive -> active
	res = db.Model(&models.Course{}).
		Where("start_date <= ? AND end_date >= ? AND status NOT IN ?", now, now, []string{models.StatusActive, models.StatusCancelled}).
		Update("status", models.StatusActive)
	if res.Error != nil {
		if firstErr == nil {
			firstErr = res.Error
		}
		logScheduler("Error marking active courses: " + res.Error.Error())
	} else {
		updated += res.RowsAffected
	}

	return updated, firstErr
}

// StartStatusScheduler runs the status reconciliation every hour until the
// process exits. Returns the cron instance so the caller owns its lifecycle.
func StartStatusScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		count, err := ReconcileCourseStatuses(db, time.Now())
		if err != nil {
			logScheduler("Reconciliation finished with errors: " + err.Error())
			return
		}
		logScheduler(fmt.Sprintf("Course statuses updated successfully (%d rows)", count))
	})
	if err != nil {
		log.Fatalf("Failed to schedule course status updates: %v", err)
	}

	c.Start()
	logScheduler("Hourly course status scheduler started")

	return c
}
