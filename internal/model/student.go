package model

import "time"

// Student mirrors a row of the `student` table. Deletion is soft: a row
// with a non-nil DeletedAt is invisible to every read and update path.
type Student struct {
	ID        uint64     `json:"id"`         // student.id
	Name      string     `json:"name"`       // student.name
	Major     string     `json:"major"`      // student.major
	DeletedAt *time.Time `json:"deleted_at"` // student.deleted_at (nullable)
}
