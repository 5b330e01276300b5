package models

import "time"

// TeachingAssignment is one course taught during the period. ContactHours
// feed the contact-hours aggregate; NotionalHours are tracked for reference
// only and never aggregated.
type TeachingAssignment struct {
	CourseID          int64   `json:"courseId" db:"course_id"`
	CourseCode        string  `json:"courseCode" db:"course_code"`
	CourseName        string  `json:"courseName" db:"course_name"`
	SemesterForCourse string  `json:"semesterForCourse" db:"semester_for_course"`
	ContactType       string  `json:"contactType" db:"contact_type"`
	ContactHours      float64 `json:"contactHours" db:"contact_hours"`
	NotionalHours     float64 `json:"notionalHours" db:"notional_hours"`
	GroupsCoordinated int     `json:"groupsCoordinated" db:"groups_coordinated"`
	StudentCount      int     `json:"studentCount" db:"student_count"`
}

// WorkItem is a generic itemized entry: admin work, personal research or
// community engagement.
type WorkItem struct {
	Details string  `json:"details" db:"details"`
	Hours   float64 `json:"hours" db:"hours"`
}

// StudentResearchItem summarizes research-student supervision time.
type StudentResearchItem struct {
	Summary string  `json:"summary" db:"summary"`
	Hours   float64 `json:"hours" db:"hours"`
}

// Workload is one periodic submission by one staff member. Each category
// slice may be entirely absent (nil). The total fields are derived and are
// recomputed before every persist; they are never set by hand.
type Workload struct {
	ID              int64  `json:"id" db:"id"`
	StaffMemberID   int64  `json:"staffMemberId" db:"staff_member_id"`
	StaffMemberName string `json:"staffMemberName" db:"staff_member_name"`
	StaffDepartment string `json:"staffDepartment" db:"staff_department"`
	SupervisorID    *int64 `json:"supervisorId,omitempty" db:"supervisor_id"`

	AcademicYear string `json:"academicYear" db:"academic_year"`
	Semester     string `json:"semester" db:"semester"`
	Period       string `json:"period,omitempty" db:"period"`

	TeachingAssignments      []TeachingAssignment  `json:"teachingAssignments,omitempty" db:"teaching_assignments"`
	AdminWorkItems           []WorkItem            `json:"adminWorkItems,omitempty" db:"admin_work_items"`
	PersonalResearchItems    []WorkItem            `json:"personalResearchItems,omitempty" db:"personal_research_items"`
	StudentResearchItems     []StudentResearchItem `json:"studentResearchItems,omitempty" db:"student_research_items"`
	CommunityEngagementItems []WorkItem            `json:"communityEngagementItems,omitempty" db:"community_engagement_items"`

	TotalContactHours             float64 `json:"totalContactHours" db:"total_contact_hours"`
	TotalAdminWorkHours           float64 `json:"totalAdminWorkHours" db:"total_admin_work_hours"`
	TotalPersonalResearchHours    float64 `json:"totalPersonalResearchHours" db:"total_personal_research_hours"`
	TotalStudentResearchHours     float64 `json:"totalStudentResearchHours" db:"total_student_research_hours"`
	TotalCommunityEngagementHours float64 `json:"totalCommunityEngagementHours" db:"total_community_engagement_hours"`
	TotalLoggedHours              float64 `json:"totalLoggedHours" db:"total_logged_hours"`

	Status WorkloadStatus `json:"status" db:"status"`

	StaffCertification             bool   `json:"staffCertification" db:"staff_certification"`
	SupervisorCertification        bool   `json:"supervisorCertification" db:"supervisor_certification"`
	SupervisorCertificationComment string `json:"supervisorCertificationComment,omitempty" db:"supervisor_certification_comment"`
	SupervisorComment              string `json:"supervisorComment,omitempty" db:"supervisor_comment"`

	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty" db:"submitted_at"`
	RespondedAt *time.Time `json:"respondedAt,omitempty" db:"responded_at"`
}

// Editable reports whether staff may still change the itemized entries.
func (w *Workload) Editable() bool {
	return w.Status == StatusDraft || w.Status == StatusRequiresAmendment
}
