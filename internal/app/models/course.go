package models

import "time"

// Course represents an entry in the course catalog.
// Renaming a course is always allowed; deleting one is refused while any
// workload submission references it in a teaching assignment.
type Course struct {
	ID         int64     `json:"id" db:"id"`
	Code       string    `json:"code" db:"code"`
	Name       string    `json:"name" db:"name"`
	Department string    `json:"department" db:"department"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
