package dto

// CreateStaffRequest is the admin payload for creating a staff account.
// Department is required for every role except Admin.
type CreateStaffRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Name       string `json:"name" binding:"required"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department"`
}

// UpdateStaffRequest is the admin payload for editing a staff account.
// Email and password are not editable here.
type UpdateStaffRequest struct {
	Name       string `json:"name" binding:"required"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department"`
}

// StaffFilterRequest narrows staff list queries
type StaffFilterRequest struct {
	Department string `form:"department"`
	Role       string `form:"role"`
}
