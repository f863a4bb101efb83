package models

import "time"

// SelectedClass is a provisional cart entry. It is deleted on removal or
// after the caller converts it into an enrollment.
type SelectedClass struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	ClassID   string    `db:"class_id" json:"class_id"`
	Title     string    `db:"title" json:"title"`
	Image     string    `db:"image" json:"image,omitempty"`
	Price     float64   `db:"price" json:"price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
