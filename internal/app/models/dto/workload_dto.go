package dto

import (
	"github.com/selim/acadload/internal/app/models"
)

// TeachingAssignmentInput is one teaching entry in a draft payload.
type TeachingAssignmentInput struct {
	CourseID          int64   `json:"courseId"`
	SemesterForCourse string  `json:"semesterForCourse"`
	ContactType       string  `json:"contactType"`
	ContactHours      float64 `json:"contactHours"`
	NotionalHours     float64 `json:"notionalHours"`
	GroupsCoordinated int     `json:"groupsCoordinated"`
	StudentCount      int     `json:"studentCount"`
}

// WorkItemInput is one generic itemized entry in a draft payload.
type WorkItemInput struct {
	Details string  `json:"details"`
	Hours   float64 `json:"hours"`
}

// StudentResearchItemInput is one supervision summary in a draft payload.
type StudentResearchItemInput struct {
	Summary string  `json:"summary"`
	Hours   float64 `json:"hours"`
}

// SaveWorkloadRequest is the payload for creating or updating a draft.
// Totals are never accepted from the client; they are recomputed server-side.
type SaveWorkloadRequest struct {
	AcademicYear string `json:"academicYear" binding:"required"`
	Semester     string `json:"semester" binding:"required"`
	Period       string `json:"period"`

	TeachingAssignments      []TeachingAssignmentInput  `json:"teachingAssignments"`
	AdminWorkItems           []WorkItemInput            `json:"adminWorkItems"`
	PersonalResearchItems    []WorkItemInput            `json:"personalResearchItems"`
	StudentResearchItems     []StudentResearchItemInput `json:"studentResearchItems"`
	CommunityEngagementItems []WorkItemInput            `json:"communityEngagementItems"`

	StaffCertification bool `json:"staffCertification"`
}

// ApproveWorkloadRequest is the supervisor's approval payload.
type ApproveWorkloadRequest struct {
	SupervisorCertification bool   `json:"supervisorCertification"`
	Comment                 string `json:"comment"`
}

// RequestAmendmentRequest carries the supervisor's amendment feedback.
type RequestAmendmentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// WorkloadFilterRequest narrows workload list queries.
type WorkloadFilterRequest struct {
	Department string `form:"department"`
	Status     string `form:"status"`
	Search     string `form:"search"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"pageSize,default=20"`
}

// WorkloadListResponse is a page of workloads.
type WorkloadListResponse struct {
	Workloads      []models.Workload `json:"workloads"`
	PaginationInfo PaginationInfo    `json:"paginationInfo"`
}
