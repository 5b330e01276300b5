package auth

import (
	"github.com/selim/acadload/internal/app/models"
)

// Principal identifies the authenticated caller for one request. It is
// constructed from validated token claims and passed explicitly into every
// service call; there is no ambient request-scoped auth state.
type Principal struct {
	ID         int64
	Email      string
	Name       string
	Role       models.RoleType
	Department string
}

// IsAdmin reports whether the principal carries the Admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// IsSupervisor reports whether the principal carries the Supervisor role.
func (p Principal) IsSupervisor() bool {
	return p.Role == models.RoleSupervisor
}

// IsAcademicStaff reports whether the principal carries the AcademicStaff role.
func (p Principal) IsAcademicStaff() bool {
	return p.Role == models.RoleAcademicStaff
}
