package models

// RoleType defines the staff role type
type RoleType string

const (
	RoleAcademicStaff RoleType = "AcademicStaff"
	RoleSupervisor    RoleType = "Supervisor"
	RoleAdmin         RoleType = "Admin"
)

// legacyRoleHOD is a role value left over from an earlier deployment.
// It maps to AcademicStaff; the alias is resolved once at the store
// boundary and must not leak into new rows.
const legacyRoleHOD = "HOD"

// NormalizeRole resolves raw role strings from the store into a RoleType.
// Unknown values yield the empty role, which has no visibility anywhere.
func NormalizeRole(raw string) RoleType {
	switch raw {
	case string(RoleAcademicStaff), string(RoleSupervisor), string(RoleAdmin):
		return RoleType(raw)
	case legacyRoleHOD:
		return RoleAcademicStaff
	default:
		return ""
	}
}

// WorkloadStatus represents the lifecycle state of a workload submission
type WorkloadStatus string

const (
	StatusDraft             WorkloadStatus = "Draft"
	StatusSubmitted         WorkloadStatus = "Submitted"
	StatusApproved          WorkloadStatus = "Approved"
	StatusRequiresAmendment WorkloadStatus = "RequiresAmendment"
)

// ResearchStudentStatus represents the supervision state of a research student
type ResearchStudentStatus string

const (
	StudentActive    ResearchStudentStatus = "Active"
	StudentGraduated ResearchStudentStatus = "Graduated"
	StudentOnLeave   ResearchStudentStatus = "On Leave"
)
