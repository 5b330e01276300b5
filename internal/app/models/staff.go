package models

import (
	"time"
)

// StaffMember defines the staff model based on the 'staff' table
type StaffMember struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"jane.doe@university.ac.za"`
	Password    string     `json:"-" db:"password"`
	Name        string     `json:"name" db:"name" example:"Jane Doe"`
	Role        RoleType   `json:"role" db:"role" example:"AcademicStaff"`
	Department  string     `json:"department" db:"department" example:"Computer Science"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
