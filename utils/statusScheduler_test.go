package utils

import (
	"coursehub/models"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}))

	return db
}

func seedCourse(t *testing.T, db *gorm.DB, status string, start, end time.Time) models.Course {
	t.Helper()

	course := models.Course{
		Title:           "Course",
		Description:     "Description",
		StartDate:       start,
		EndDate:         end,
		Category:        models.CategoryOnlineLive,
		MaxParticipants: 10,
		Status:          status,
		DeliveryType:    models.DeliveryLive,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func TestReconcileCourseStatuses(t *testing.T) {
	db := newTestDb(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	ended := seedCourse(t, db, models.StatusActive, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	running := seedCourse(t, db, models.StatusPlanned, now.Add(-time.Hour), now.Add(time.Hour))
	upcoming := seedCourse(t, db, models.StatusActive, now.Add(24*time.Hour), now.Add(48*time.Hour))
	cancelled := seedCourse(t, db, models.StatusCancelled, now.Add(-48*time.Hour), now.Add(-24*time.Hour))

	count, err := ReconcileCourseStatuses(db, now)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	var got models.Course
	require.NoError(t, db.First(&got, ended.ID).Error)
	require.Equal(t, models.StatusFinished, got.Status)

	got = models.Course{}
	require.NoError(t, db.First(&got, running.ID).Error)
	require.Equal(t, models.StatusActive, got.Status)

	got = models.Course{}
	require.NoError(t, db.First(&got, upcoming.ID).Error)
	require.Equal(t, models.StatusPlanned, got.Status)

	// Cancelled courses are never rewritten
	got = models.Course{}
	require.NoError(t, db.First(&got, cancelled.ID).Error)
	require.Equal(t, models.StatusCancelled, got.Status)
}

func TestReconcileCourseStatusesIsIdempotent(t *testing.T) {
	db := newTestDb(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	seedCourse(t, db, models.StatusActive, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	seedCourse(t, db, models.StatusPlanned, now.Add(-time.Hour), now.Add(time.Hour))

	first, err := ReconcileCourseStatuses(db, now)
	require.NoError(t, err)
	require.EqualValues(t, 2, first)

	// Same instant, nothing left to rewrite
	second, err := ReconcileCourseStatuses(db, now)
	require.NoError(t, err)
	require.EqualValues(t, 0, second)
}

func TestReconcileCourseStatusesInvertedRange(t *testing.T) {
	db := newTestDb(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// endDate before startDate is accepted input; a passed endDate wins
	inverted := seedCourse(t, db, models.StatusActive, now.Add(24*time.Hour), now.Add(-24*time.Hour))

	count, err := ReconcileCourseStatuses(db, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	var got models.Course
	require.NoError(t, db.First(&got, inverted.ID).Error)
	require.Equal(t, models.StatusFinished, got.Status)
	require.Equal(t, inverted.EffectiveStatus(now), got.Status)

	// Settled in one pass, nothing left to rewrite
	second, err := ReconcileCourseStatuses(db, now)
	require.NoError(t, err)
	require.EqualValues(t, 0, second)
}

func TestReconcileCourseStatusesAgreesWithDerivation(t *testing.T) {
	db := newTestDb(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	courses := []models.Course{
		seedCourse(t, db, models.StatusPlanned, now.Add(-48*time.Hour), now.Add(-24*time.Hour)),
		seedCourse(t, db, models.StatusFinished, now.Add(-time.Hour), now.Add(time.Hour)),
		seedCourse(t, db, models.StatusActive, now.Add(24*time.Hour), now.Add(48*time.Hour)),
		seedCourse(t, db, models.StatusCancelled, now.Add(-time.Hour), now.Add(time.Hour)),
	}

	_, err := ReconcileCourseStatuses(db, now)
	require.NoError(t, err)

	// The sweep must land on exactly what EffectiveStatus derives
	for _, seeded := range courses {
		var got models.Course
		require.NoError(t, db.First(&got, seeded.ID).Error)
		require.Equal(t, seeded.EffectiveStatus(now), got.Status)
	}
}
