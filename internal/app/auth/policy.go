package auth

import (
	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/pkg/apperrors"
)

// Role-to-resource visibility rules for workload submissions.
//
// Staff see and edit only their own workloads, and edit only while the
// record is back in their hands (Draft or RequiresAmendment). A supervisor
// works the review queue of their own department: they see every submission
// from it, but may act only on workloads currently Submitted, and then only
// on the approval fields. Admin has read-only oversight over everything.
// A principal with no resolved role sees nothing.

// CanView reports whether the principal may read the workload.
func CanView(p Principal, w *models.Workload) bool {
	switch p.Role {
	case models.RoleAcademicStaff:
		return w.StaffMemberID == p.ID
	case models.RoleSupervisor:
		return w.StaffDepartment == p.Department
	case models.RoleAdmin:
		return true
	default:
		return false
	}
}

// CanMutate reports whether the principal may change the workload in its
// current status. For supervisors this covers the approval fields only;
// the lifecycle guards enforce which fields each transition touches.
func CanMutate(p Principal, w *models.Workload) bool {
	switch p.Role {
	case models.RoleAcademicStaff:
		return w.StaffMemberID == p.ID && w.Editable()
	case models.RoleSupervisor:
		return w.StaffDepartment == p.Department && w.Status == models.StatusSubmitted
	default:
		return false
	}
}

// RequireView returns a permission error unless CanView allows the read.
func RequireView(p Principal, w *models.Workload) error {
	if !CanView(p, w) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// RequireMutate returns a permission error unless CanMutate allows the change.
func RequireMutate(p Principal, w *models.Workload) error {
	if !CanMutate(p, w) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
