package models

import (
	"gorm.io/gorm"
)

// Enrollment is one row of a course's participant set. The composite unique
// index keeps a user from holding two seats in the same course even when two
// join requests race. Rows are hard deleted on leave.
type Enrollment struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	User     User   `json:"-" gorm:"foreignKey:UserID"`
	Course   Course `json:"-" gorm:"foreignKey:CourseID"`
}
