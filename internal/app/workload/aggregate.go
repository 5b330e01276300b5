package workload

import (
	"math"

	"github.com/selim/acadload/internal/app/models"
)

// coerceHours guards against malformed hour values that can arrive through
// stored JSON. Anything that is not a finite number counts as zero; the
// aggregate must never propagate NaN into persisted totals.
func coerceHours(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	return h
}

func sumWorkItems(items []models.WorkItem) float64 {
	var total float64
	for _, item := range items {
		total += coerceHours(item.Hours)
	}
	return total
}

func sumStudentResearchItems(items []models.StudentResearchItem) float64 {
	var total float64
	for _, item := range items {
		total += coerceHours(item.Hours)
	}
	return total
}

// sumContactHours totals contact hours across teaching assignments.
// Notional hours are tracked per assignment but excluded from the aggregate.
func sumContactHours(items []models.TeachingAssignment) float64 {
	var total float64
	for _, item := range items {
		total += coerceHours(item.ContactHours)
	}
	return total
}

// RecomputeTotals derives every total field from the itemized entries and
// returns the updated workload. It reads only the item slices, so calling it
// twice on an unmodified workload yields identical results. Callers must run
// it before every persist; stored totals are never taken from the client.
func RecomputeTotals(w models.Workload) models.Workload {
	w.TotalContactHours = sumContactHours(w.TeachingAssignments)
	w.TotalAdminWorkHours = sumWorkItems(w.AdminWorkItems)
	w.TotalPersonalResearchHours = sumWorkItems(w.PersonalResearchItems)
	w.TotalStudentResearchHours = sumStudentResearchItems(w.StudentResearchItems)
	w.TotalCommunityEngagementHours = sumWorkItems(w.CommunityEngagementItems)

	w.TotalLoggedHours = w.TotalContactHours +
		w.TotalAdminWorkHours +
		w.TotalPersonalResearchHours +
		w.TotalStudentResearchHours +
		w.TotalCommunityEngagementHours

	return w
}
