package dto

// CreateResearchStudentRequest registers a supervised research student
type CreateResearchStudentRequest struct {
	StudentName   string `json:"studentName" binding:"required"`
	StudentEmail  string `json:"studentEmail" binding:"required,email"`
	ResearchTopic string `json:"researchTopic" binding:"required"`
	StartDate     string `json:"startDate" binding:"required" example:"2025-02-01"`
}

// UpdateResearchStudentRequest edits a supervised research student
type UpdateResearchStudentRequest struct {
	StudentName   string `json:"studentName" binding:"required"`
	StudentEmail  string `json:"studentEmail" binding:"required,email"`
	ResearchTopic string `json:"researchTopic" binding:"required"`
	Status        string `json:"status" binding:"required"`
}
