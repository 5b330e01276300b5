package auth

import (
	"errors"
	"testing"

	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/pkg/apperrors"
)

var (
	owner = Principal{ID: 1, Role: models.RoleAcademicStaff, Department: "Computer Science"}
	peer  = Principal{ID: 2, Role: models.RoleAcademicStaff, Department: "Computer Science"}

	deptSupervisor  = Principal{ID: 10, Role: models.RoleSupervisor, Department: "Computer Science"}
	otherSupervisor = Principal{ID: 11, Role: models.RoleSupervisor, Department: "Mathematics"}

	admin  = Principal{ID: 99, Role: models.RoleAdmin}
	noRole = Principal{ID: 50}
)

func csWorkload(status models.WorkloadStatus) *models.Workload {
	return &models.Workload{
		ID:              100,
		StaffMemberID:   1,
		StaffDepartment: "Computer Science",
		Status:          status,
	}
}

func TestCanView(t *testing.T) {
	w := csWorkload(models.StatusSubmitted)

	cases := []struct {
		name string
		p    Principal
		want bool
	}{
		{"owner", owner, true},
		{"other staff same department", peer, false},
		{"department supervisor", deptSupervisor, true},
		{"supervisor of another department", otherSupervisor, false},
		{"admin", admin, true},
		{"unresolved role", noRole, false},
	}

	for _, tc := range cases {
		if got := CanView(tc.p, w); got != tc.want {
			t.Errorf("%s: CanView = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanMutate_StaffByStatus(t *testing.T) {
	cases := []struct {
		status models.WorkloadStatus
		want   bool
	}{
		{models.StatusDraft, true},
		{models.StatusRequiresAmendment, true},
		{models.StatusSubmitted, false},
		{models.StatusApproved, false},
	}

	for _, tc := range cases {
		w := csWorkload(tc.status)
		if got := CanMutate(owner, w); got != tc.want {
			t.Errorf("owner on %s: CanMutate = %v, want %v", tc.status, got, tc.want)
		}
		// Another staff member never mutates someone else's workload.
		if CanMutate(peer, w) {
			t.Errorf("peer on %s: CanMutate should be false", tc.status)
		}
	}
}

func TestCanMutate_SupervisorByStatus(t *testing.T) {
	cases := []struct {
		status models.WorkloadStatus
		want   bool
	}{
		{models.StatusDraft, false},
		{models.StatusRequiresAmendment, false},
		{models.StatusSubmitted, true},
		{models.StatusApproved, false},
	}

	for _, tc := range cases {
		w := csWorkload(tc.status)
		if got := CanMutate(deptSupervisor, w); got != tc.want {
			t.Errorf("supervisor on %s: CanMutate = %v, want %v", tc.status, got, tc.want)
		}
		if CanMutate(otherSupervisor, w) {
			t.Errorf("foreign supervisor on %s: CanMutate should be false", tc.status)
		}
	}
}

func TestCanMutate_AdminIsReadOnly(t *testing.T) {
	for _, status := range []models.WorkloadStatus{
		models.StatusDraft, models.StatusSubmitted, models.StatusApproved, models.StatusRequiresAmendment,
	} {
		if CanMutate(admin, csWorkload(status)) {
			t.Errorf("admin on %s: CanMutate should be false", status)
		}
	}
}

func TestRequireView_Denied(t *testing.T) {
	err := RequireView(otherSupervisor, csWorkload(models.StatusSubmitted))
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("got %v, want ErrPermissionDenied", err)
	}
}

func TestRequireMutate_Denied(t *testing.T) {
	err := RequireMutate(owner, csWorkload(models.StatusApproved))
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("got %v, want ErrPermissionDenied", err)
	}
}
