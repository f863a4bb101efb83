package models

import "time"

// Enrollment is the permanent record of a completed enrollment,
// created after payment succeeds.
type Enrollment struct {
	ID             string    `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	ClassID        string    `db:"class_id" json:"class_id"`
	Title          string    `db:"title" json:"title"`
	Image          string    `db:"image" json:"image,omitempty"`
	InstructorName string    `db:"instructor_name" json:"instructor_name,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
