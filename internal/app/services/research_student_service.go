package services

import (
	"context"
	"fmt"
	"time"

	"github.com/selim/acadload/internal/app/auth"
	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/app/repositories"
	"github.com/selim/acadload/internal/pkg/apperrors"
)

// startDateLayout is the wire format for research student start dates
const startDateLayout = "2006-01-02"

// ResearchStudentService defines the interface for research student records
type ResearchStudentService interface {
	GetByID(ctx context.Context, principal auth.Principal, id int64) (*models.ResearchStudent, error)
	List(ctx context.Context, principal auth.Principal) ([]models.ResearchStudent, error)
	Create(ctx context.Context, principal auth.Principal, req *dto.CreateResearchStudentRequest) (*models.ResearchStudent, error)
	Update(ctx context.Context, principal auth.Principal, id int64, req *dto.UpdateResearchStudentRequest) (*models.ResearchStudent, error)
	Delete(ctx context.Context, principal auth.Principal, id int64) error
}

// researchStudentServiceImpl implements ResearchStudentService
type researchStudentServiceImpl struct {
	studentRepo repositories.ResearchStudentRepository
	staffRepo   repositories.StaffRepository
}

// NewResearchStudentService creates a new ResearchStudentService
func NewResearchStudentService(
	studentRepo repositories.ResearchStudentRepository,
	staffRepo repositories.StaffRepository,
) ResearchStudentService {
	return &researchStudentServiceImpl{
		studentRepo: studentRepo,
		staffRepo:   staffRepo,
	}
}

// canSee mirrors the workload visibility policy: staff see their own
// students, supervisors their department's, admins everything.
func (s *researchStudentServiceImpl) canSee(ctx context.Context, principal auth.Principal, student *models.ResearchStudent) (bool, error) {
	switch {
	case principal.IsAdmin():
		return true, nil
	case principal.IsAcademicStaff():
		return student.SupervisorID == principal.ID, nil
	case principal.IsSupervisor():
		supervisor, err := s.staffRepo.GetByID(ctx, student.SupervisorID)
		if err != nil {
			return false, fmt.Errorf("error getting supervising staff member: %w", err)
		}
		return supervisor != nil && supervisor.Department == principal.Department, nil
	default:
		return false, nil
	}
}

// GetByID retrieves one research student record
func (s *researchStudentServiceImpl) GetByID(ctx context.Context, principal auth.Principal, id int64) (*models.ResearchStudent, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting research student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrResearchStudentNotFound
	}

	ok, err := s.canSee(ctx, principal, student)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	return student, nil
}

// List retrieves research students the principal is entitled to see
func (s *researchStudentServiceImpl) List(ctx context.Context, principal auth.Principal) ([]models.ResearchStudent, error) {
	var (
		students []models.ResearchStudent
		err      error
	)

	switch {
	case principal.IsAcademicStaff():
		students, err = s.studentRepo.ListBySupervisor(ctx, principal.ID)
	case principal.IsSupervisor():
		students, err = s.studentRepo.ListByDepartment(ctx, principal.Department)
	case principal.IsAdmin():
		students, err = s.studentRepo.ListAll(ctx)
	default:
		return nil, apperrors.ErrPermissionDenied
	}
	if err != nil {
		return nil, fmt.Errorf("error listing research students: %w", err)
	}

	return students, nil
}

// Create registers a research student under the calling staff member
func (s *researchStudentServiceImpl) Create(ctx context.Context, principal auth.Principal, req *dto.CreateResearchStudentRequest) (*models.ResearchStudent, error) {
	if !principal.IsAcademicStaff() {
		return nil, apperrors.ErrPermissionDenied
	}

	startDate, err := time.Parse(startDateLayout, req.StartDate)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("startDate must be in %s format", startDateLayout))
	}

	student := &models.ResearchStudent{
		SupervisorID:   principal.ID,
		SupervisorName: principal.Name,
		StudentName:    req.StudentName,
		StudentEmail:   req.StudentEmail,
		ResearchTopic:  req.ResearchTopic,
		StartDate:      startDate,
		Status:         models.StudentActive,
		CreatedAt:      time.Now(),
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("error creating research student: %w", err)
	}
	student.ID = id

	return student, nil
}

// parseStudentStatus validates a supervision status value
func parseStudentStatus(raw string) (models.ResearchStudentStatus, error) {
	switch models.ResearchStudentStatus(raw) {
	case models.StudentActive, models.StudentGraduated, models.StudentOnLeave:
		return models.ResearchStudentStatus(raw), nil
	default:
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("unknown student status %q", raw))
	}
}

// Update edits a research student record. Only the supervising staff
// member or an admin may change it.
func (s *researchStudentServiceImpl) Update(ctx context.Context, principal auth.Principal, id int64, req *dto.UpdateResearchStudentRequest) (*models.ResearchStudent, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting research student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrResearchStudentNotFound
	}

	if !principal.IsAdmin() && student.SupervisorID != principal.ID {
		return nil, apperrors.NewForbiddenError("only the supervising staff member may edit this record")
	}

	status, err := parseStudentStatus(req.Status)
	if err != nil {
		return nil, err
	}

	student.StudentName = req.StudentName
	student.StudentEmail = req.StudentEmail
	student.ResearchTopic = req.ResearchTopic
	student.Status = status

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("error updating research student: %w", err)
	}

	return student, nil
}

// Delete removes a research student record
func (s *researchStudentServiceImpl) Delete(ctx context.Context, principal auth.Principal, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting research student: %w", err)
	}
	if student == nil {
		return apperrors.ErrResearchStudentNotFound
	}

	if !principal.IsAdmin() && student.SupervisorID != principal.ID {
		return apperrors.NewForbiddenError("only the supervising staff member may delete this record")
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting research student: %w", err)
	}

	return nil
}
