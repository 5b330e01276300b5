package workload

import (
	"errors"
	"testing"

	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/pkg/apperrors"
)

// submittableWorkload builds a workload whose entries sum to the given
// total, with every field-level rule satisfied and staff certification set.
func submittableWorkload(totalHours float64) models.Workload {
	w := models.Workload{
		AcademicYear: "2024-2025",
		Semester:     "Semester 1",
		AdminWorkItems: []models.WorkItem{
			{Details: "Department admin", Hours: totalHours},
		},
		StaffCertification: true,
	}
	return RecomputeTotals(w)
}

func TestValidateDraft_AcademicYearFormat(t *testing.T) {
	cases := []struct {
		year  string
		valid bool
	}{
		{"2024-2025", true},
		{"2025-2026", true},
		{"2024", false},
		{"2024/2025", false},
		{"24-25", false},
		{"", false},
	}

	for _, tc := range cases {
		w := models.Workload{AcademicYear: tc.year, Semester: "Semester 1"}
		errs := ValidateDraft(&w)
		if tc.valid && errs.HasErrors() {
			t.Errorf("year %q: unexpected errors %v", tc.year, errs.Errors)
		}
		if !tc.valid && !errs.HasErrors() {
			t.Errorf("year %q: expected a validation error", tc.year)
		}
	}
}

func TestValidateDraft_ItemRules(t *testing.T) {
	w := models.Workload{
		AcademicYear: "2024-2025",
		Semester:     "Semester 1",
		TeachingAssignments: []models.TeachingAssignment{
			{CourseID: 0, SemesterForCourse: "", ContactType: "", ContactHours: -1},
		},
		AdminWorkItems: []models.WorkItem{
			{Details: "", Hours: -5},
		},
		StudentResearchItems: []models.StudentResearchItem{
			{Summary: "", Hours: -1},
		},
	}

	errs := ValidateDraft(&w)
	if !errs.HasErrors() {
		t.Fatal("expected validation errors")
	}
	// One per broken field: courseId, semesterForCourse, contactType,
	// contactHours, details, hours, summary, hours
	if len(errs.Errors) != 8 {
		t.Errorf("got %d errors, want 8: %v", len(errs.Errors), errs.Errors)
	}
}

func TestValidateForSubmission_HoursBoundaries(t *testing.T) {
	cases := []struct {
		hours   float64
		wantErr error
	}{
		{159.9, apperrors.ErrHoursOutOfRange},
		{160.0, nil},
		{200.0, nil},
		{240.0, nil},
		{240.1, apperrors.ErrHoursOutOfRange},
		{50.0, apperrors.ErrHoursOutOfRange},
		{0.0, apperrors.ErrHoursOutOfRange},
	}

	for _, tc := range cases {
		w := submittableWorkload(tc.hours)
		err := ValidateForSubmission(&w)
		if tc.wantErr == nil {
			if err != nil {
				t.Errorf("hours %.1f: unexpected error %v", tc.hours, err)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("hours %.1f: got %v, want %v", tc.hours, err, tc.wantErr)
		}
	}
}

func TestValidateForSubmission_CertificationRequired(t *testing.T) {
	w := submittableWorkload(200)
	w.StaffCertification = false

	err := ValidateForSubmission(&w)
	if !errors.Is(err, apperrors.ErrCertificationRequired) {
		t.Errorf("got %v, want ErrCertificationRequired", err)
	}
}

func TestValidateForSubmission_FieldErrorsBeforeRangeCheck(t *testing.T) {
	// Broken fields and out-of-range hours together: field errors win.
	w := models.Workload{
		AcademicYear:       "bad",
		Semester:           "Semester 1",
		StaffCertification: true,
	}
	w = RecomputeTotals(w)

	err := ValidateForSubmission(&w)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("got %v, want ErrValidationFailed", err)
	}
}

func TestValidateForSubmission_RangeBeforeCertification(t *testing.T) {
	w := submittableWorkload(50)
	w.StaffCertification = false

	err := ValidateForSubmission(&w)
	if !errors.Is(err, apperrors.ErrHoursOutOfRange) {
		t.Errorf("got %v, want ErrHoursOutOfRange", err)
	}
}
