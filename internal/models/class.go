package models

import "time"

// ClassStatus tracks the approval lifecycle of a class.
type ClassStatus string

const (
	ClassPending  ClassStatus = "pending"
	ClassApproved ClassStatus = "approved"
	ClassDenied   ClassStatus = "denied"
)

// Valid reports whether the status is one of the known lifecycle values.
func (s ClassStatus) Valid() bool {
	switch s {
	case ClassPending, ClassApproved, ClassDenied:
		return true
	}
	return false
}

// Class represents a course offering in the catalog.
// available_seats + number_of_students is conserved across enrollments.
type Class struct {
	ID               string      `db:"id" json:"id"`
	Title            string      `db:"title" json:"title"`
	Image            string      `db:"image" json:"image,omitempty"`
	InstructorName   string      `db:"instructor_name" json:"instructor_name"`
	InstructorEmail  string      `db:"instructor_email" json:"instructor_email"`
	Price            float64     `db:"price" json:"price"`
	AvailableSeats   int         `db:"available_seats" json:"available_seats"`
	NumberOfStudents int         `db:"number_of_students" json:"number_of_students"`
	Status           ClassStatus `db:"status" json:"status"`
	Feedback         *string     `db:"feedback" json:"feedback,omitempty"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`
}
