package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course lifecycle statuses. The stored status is a cache of the value
// derived from the dates, except for cancelled which is set by an admin
// and never overwritten.
const (
	StatusPlanned   = "planned"
	StatusActive    = "active"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// Course categories and the delivery types derived from them.
const (
	CategoryOnlineCourse = "online-course"
	CategoryOnlineLive   = "online-live"
	CategoryClassroom    = "classroom"

	DeliveryLive     = "live"
	DeliveryRecorded = "recorded"
)

type Course struct {
	gorm.Model
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description" gorm:"not null"`
	StartDate        time.Time      `json:"start_date" gorm:"not null"`
	EndDate          time.Time      `json:"end_date" gorm:"not null"`
	StartTime        string         `json:"start_time,omitempty"`
	EndTime          string         `json:"end_time,omitempty"`
	Category         string         `json:"category" gorm:"not null"`
	Location         string         `json:"location,omitempty"`
	MaxParticipants  int            `json:"max_participants" gorm:"not null"`
	ParticipantCount int            `json:"participant_count" gorm:"default:0"`
	Status           string         `json:"status" gorm:"default:'planned'"`
	DeliveryType     string         `json:"delivery_type"`
	YoutubeURL       string         `json:"youtube_url,omitempty"`
	ThumbnailURL     string         `json:"thumbnail_url,omitempty"`
	Topics           datatypes.JSON `json:"topics,omitempty"`
	CreatedBy        uint           `json:"created_by"`
}

// EffectiveStatus derives the lifecycle status from the stored dates at the
// given instant. A cancelled course stays cancelled regardless of its dates.
// A course whose start or end falls exactly on now counts as active.
func (course *Course) EffectiveStatus(now time.Time) string {
	if course.Status == StatusCancelled {
		return StatusCancelled
	}
	if course.EndDate.Before(now) {
		return StatusFinished
	}
	if course.StartDate.After(now) {
		return StatusPlanned
	}
	return StatusActive
}

// DeliveryTypeFor maps a category to its delivery type. Pre-recorded online
// courses are the only recorded kind, everything else runs live.
func DeliveryTypeFor(category string) string {
	if category == CategoryOnlineCourse {
		return DeliveryRecorded
	}
	return DeliveryLive
}

// ValidCategory reports whether category is a known course category.
func ValidCategory(category string) bool {
	switch category {
	case CategoryOnlineCourse, CategoryOnlineLive, CategoryClassroom:
		return true
	}
	return false
}

// ValidStatus reports whether status is a known lifecycle status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPlanned, StatusActive, StatusFinished, StatusCancelled:
		return true
	}
	return false
}
