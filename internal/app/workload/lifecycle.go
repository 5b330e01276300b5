package workload

import (
	"strings"
	"time"

	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/pkg/apperrors"
)

// The lifecycle functions apply one transition each, in memory. Every guard
// runs before any field changes, so a failed transition leaves the workload
// exactly as it was. Persisting the changed fields atomically is the
// repository's job.

// Submit moves a Draft or RequiresAmendment workload to Submitted. Totals
// are recomputed first, then the full submission gate runs. The resolved
// supervisor is attached and any previous review outcome is cleared so the
// supervisor sees a fresh submission.
func Submit(w *models.Workload, supervisorID int64, now time.Time) error {
	if w.Status != models.StatusDraft && w.Status != models.StatusRequiresAmendment {
		return apperrors.ErrInvalidTransition
	}

	recomputed := RecomputeTotals(*w)
	if err := ValidateForSubmission(&recomputed); err != nil {
		return err
	}

	*w = recomputed
	w.Status = models.StatusSubmitted
	w.SupervisorID = &supervisorID
	w.SubmittedAt = &now
	w.UpdatedAt = now
	w.SupervisorCertification = false
	w.SupervisorCertificationComment = ""
	w.SupervisorComment = ""
	w.RespondedAt = nil

	return nil
}

// Approve moves a Submitted workload to Approved. The supervisor must tick
// certification before approving; an optional comment is kept alongside it.
// Amendment feedback from any earlier round is cleared.
func Approve(w *models.Workload, certified bool, comment string, now time.Time) error {
	if w.Status != models.StatusSubmitted {
		return apperrors.ErrInvalidTransition
	}
	if !certified {
		return apperrors.ErrSupervisorCertificationRequired
	}

	w.Status = models.StatusApproved
	w.SupervisorCertification = true
	w.SupervisorCertificationComment = comment
	w.SupervisorComment = ""
	w.RespondedAt = &now
	w.UpdatedAt = now

	return nil
}

// RequestAmendment returns a Submitted workload to the staff member with
// feedback. Certification is reset so a later approval requires a fresh tick.
func RequestAmendment(w *models.Workload, comment string, now time.Time) error {
	if w.Status != models.StatusSubmitted {
		return apperrors.ErrInvalidTransition
	}
	if strings.TrimSpace(comment) == "" {
		return apperrors.ErrCommentRequired
	}

	w.Status = models.StatusRequiresAmendment
	w.SupervisorComment = comment
	w.SupervisorCertification = false
	w.SupervisorCertificationComment = ""
	w.RespondedAt = &now
	w.UpdatedAt = now

	return nil
}
