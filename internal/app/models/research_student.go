package models

import "time"

// ResearchStudent is a postgraduate student supervised by an academic staff
// member. Workload submissions reference supervision work only as free-text
// summaries, never by key into this table.
type ResearchStudent struct {
	ID             int64                 `json:"id" db:"id"`
	SupervisorID   int64                 `json:"supervisorId" db:"supervisor_id"`
	SupervisorName string                `json:"supervisorName" db:"supervisor_name"`
	StudentName    string                `json:"studentName" db:"student_name"`
	StudentEmail   string                `json:"studentEmail" db:"student_email"`
	ResearchTopic  string                `json:"researchTopic" db:"research_topic"`
	StartDate      time.Time             `json:"startDate" db:"start_date"`
	Status         ResearchStudentStatus `json:"status" db:"status"`
	CreatedAt      time.Time             `json:"createdAt" db:"created_at"`
}
