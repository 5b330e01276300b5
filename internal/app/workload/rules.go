package workload

import (
	"fmt"

	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/pkg/apperrors"
	"github.com/selim/acadload/internal/pkg/validation"
)

// Submittable hour bounds, inclusive on both ends. Enforced only at the
// Submitted transition; drafts may hold any total, including zero, to
// support incremental logging.
const (
	MinSubmittableHours = 160.0
	MaxSubmittableHours = 240.0
)

// ValidateDraft checks the field-level rules that apply to every save,
// draft or submission. Hour-range and certification are not checked here.
func ValidateDraft(w *models.Workload) *dto.ValidationErrors {
	errs := dto.NewValidationErrors()

	if !validation.CompiledPatterns.AcademicYear.MatchString(w.AcademicYear) {
		errs.AddError("academicYear", "Academic year must match YYYY-YYYY (e.g. 2024-2025)")
	}
	if w.Semester == "" {
		errs.AddError("semester", "Semester is required")
	}

	for i, ta := range w.TeachingAssignments {
		prefix := fmt.Sprintf("teachingAssignments[%d]", i)
		if ta.CourseID <= 0 {
			errs.AddError(prefix+".courseId", "A course must be selected")
		}
		if ta.SemesterForCourse == "" {
			errs.AddError(prefix+".semesterForCourse", "Semester for course is required")
		}
		if ta.ContactType == "" {
			errs.AddError(prefix+".contactType", "Contact type is required")
		}
		if ta.ContactHours < 0 {
			errs.AddError(prefix+".contactHours", "Contact hours must be non-negative")
		}
		if ta.NotionalHours < 0 {
			errs.AddError(prefix+".notionalHours", "Notional hours must be non-negative")
		}
		if ta.GroupsCoordinated < 0 {
			errs.AddError(prefix+".groupsCoordinated", "Groups coordinated must be a non-negative integer")
		}
		if ta.StudentCount < 0 {
			errs.AddError(prefix+".studentCount", "Student count must be a non-negative integer")
		}
	}

	validateWorkItems(errs, "adminWorkItems", w.AdminWorkItems)
	validateWorkItems(errs, "personalResearchItems", w.PersonalResearchItems)
	validateWorkItems(errs, "communityEngagementItems", w.CommunityEngagementItems)

	for i, item := range w.StudentResearchItems {
		prefix := fmt.Sprintf("studentResearchItems[%d]", i)
		if item.Summary == "" {
			errs.AddError(prefix+".summary", "Summary is required")
		}
		if item.Hours < 0 {
			errs.AddError(prefix+".hours", "Hours must be non-negative")
		}
	}

	return errs
}

func validateWorkItems(errs *dto.ValidationErrors, field string, items []models.WorkItem) {
	for i, item := range items {
		prefix := fmt.Sprintf("%s[%d]", field, i)
		if item.Details == "" {
			errs.AddError(prefix+".details", "Details are required")
		}
		if item.Hours < 0 {
			errs.AddError(prefix+".hours", "Hours must be non-negative")
		}
	}
}

// ValidateForSubmission applies the full submission gate. It expects totals
// to have been recomputed already (Submit does this before calling).
func ValidateForSubmission(w *models.Workload) error {
	if errs := ValidateDraft(w); errs.HasErrors() {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "workload has invalid entries").
			WithDetails(map[string]interface{}{"errors": errs.Errors})
	}

	if w.TotalLoggedHours < MinSubmittableHours || w.TotalLoggedHours > MaxSubmittableHours {
		msg := fmt.Sprintf("Total logged hours (%.1f) must be between %.0f and %.0f to submit",
			w.TotalLoggedHours, MinSubmittableHours, MaxSubmittableHours)
		return apperrors.NewCustomError(apperrors.ErrHoursOutOfRange, msg).
			WithDetails(map[string]interface{}{"totalLoggedHours": w.TotalLoggedHours})
	}

	if !w.StaffCertification {
		return apperrors.ErrCertificationRequired
	}

	return nil
}
