package dto

// CreateCourseRequest is the admin payload for adding a catalog course
type CreateCourseRequest struct {
	Code       string `json:"code" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
}

// UpdateCourseRequest renames a course or moves it between departments
type UpdateCourseRequest struct {
	Code       string `json:"code" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
}
