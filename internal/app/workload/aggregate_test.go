package workload

import (
	"math"
	"testing"

	"github.com/selim/acadload/internal/app/models"
)

func TestRecomputeTotals_SumsEachCategory(t *testing.T) {
	w := models.Workload{
		TeachingAssignments: []models.TeachingAssignment{
			{CourseID: 1, ContactHours: 40, NotionalHours: 80},
			{CourseID: 2, ContactHours: 20, NotionalHours: 10},
		},
		AdminWorkItems: []models.WorkItem{
			{Details: "Committee work", Hours: 15},
		},
		PersonalResearchItems: []models.WorkItem{
			{Details: "Journal article", Hours: 30},
			{Details: "Conference paper", Hours: 25},
		},
		StudentResearchItems: []models.StudentResearchItem{
			{Summary: "MSc supervision", Hours: 12},
		},
		CommunityEngagementItems: []models.WorkItem{
			{Details: "Outreach programme", Hours: 8},
		},
	}

	got := RecomputeTotals(w)

	if got.TotalContactHours != 60 {
		t.Errorf("TotalContactHours = %v, want 60", got.TotalContactHours)
	}
	if got.TotalAdminWorkHours != 15 {
		t.Errorf("TotalAdminWorkHours = %v, want 15", got.TotalAdminWorkHours)
	}
	if got.TotalPersonalResearchHours != 55 {
		t.Errorf("TotalPersonalResearchHours = %v, want 55", got.TotalPersonalResearchHours)
	}
	if got.TotalStudentResearchHours != 12 {
		t.Errorf("TotalStudentResearchHours = %v, want 12", got.TotalStudentResearchHours)
	}
	if got.TotalCommunityEngagementHours != 8 {
		t.Errorf("TotalCommunityEngagementHours = %v, want 8", got.TotalCommunityEngagementHours)
	}
	if got.TotalLoggedHours != 150 {
		t.Errorf("TotalLoggedHours = %v, want 150", got.TotalLoggedHours)
	}
}

func TestRecomputeTotals_NotionalHoursExcluded(t *testing.T) {
	w := models.Workload{
		TeachingAssignments: []models.TeachingAssignment{
			{CourseID: 1, ContactHours: 10, NotionalHours: 999},
		},
	}

	got := RecomputeTotals(w)

	if got.TotalContactHours != 10 {
		t.Errorf("TotalContactHours = %v, want 10", got.TotalContactHours)
	}
	if got.TotalLoggedHours != 10 {
		t.Errorf("TotalLoggedHours = %v, want 10", got.TotalLoggedHours)
	}
}

func TestRecomputeTotals_EmptyWorkload(t *testing.T) {
	got := RecomputeTotals(models.Workload{})

	if got.TotalLoggedHours != 0 {
		t.Errorf("TotalLoggedHours = %v, want 0", got.TotalLoggedHours)
	}
}

func TestRecomputeTotals_Idempotent(t *testing.T) {
	w := models.Workload{
		AdminWorkItems: []models.WorkItem{
			{Details: "Timetabling", Hours: 42.5},
		},
	}

	once := RecomputeTotals(w)
	twice := RecomputeTotals(once)

	if once.TotalLoggedHours != twice.TotalLoggedHours {
		t.Errorf("totals changed between runs: %v then %v", once.TotalLoggedHours, twice.TotalLoggedHours)
	}
	if twice.TotalAdminWorkHours != 42.5 {
		t.Errorf("TotalAdminWorkHours = %v, want 42.5", twice.TotalAdminWorkHours)
	}
}

func TestRecomputeTotals_OverwritesStaleTotals(t *testing.T) {
	w := models.Workload{
		TotalContactHours: 500,
		TotalLoggedHours:  9999,
		AdminWorkItems: []models.WorkItem{
			{Details: "Marking", Hours: 20},
		},
	}

	got := RecomputeTotals(w)

	if got.TotalContactHours != 0 {
		t.Errorf("TotalContactHours = %v, want 0", got.TotalContactHours)
	}
	if got.TotalLoggedHours != 20 {
		t.Errorf("TotalLoggedHours = %v, want 20", got.TotalLoggedHours)
	}
}

func TestRecomputeTotals_NonFiniteHoursCountAsZero(t *testing.T) {
	w := models.Workload{
		AdminWorkItems: []models.WorkItem{
			{Details: "Valid", Hours: 10},
			{Details: "Corrupted", Hours: math.NaN()},
			{Details: "Also corrupted", Hours: math.Inf(1)},
		},
	}

	got := RecomputeTotals(w)

	if got.TotalAdminWorkHours != 10 {
		t.Errorf("TotalAdminWorkHours = %v, want 10", got.TotalAdminWorkHours)
	}
	if math.IsNaN(got.TotalLoggedHours) {
		t.Error("TotalLoggedHours must never be NaN")
	}
}
