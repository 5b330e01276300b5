package services

import (
	"context"
	"fmt"
	"time"

	"github.com/selim/acadload/internal/app/auth"
	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/app/repositories"
	"github.com/selim/acadload/internal/app/workload"
	"github.com/selim/acadload/internal/pkg/apperrors"
	"github.com/selim/acadload/internal/pkg/logger"
)

// WorkloadService defines the interface for workload lifecycle operations.
// Every call carries the principal explicitly; there is no ambient auth
// state anywhere below the HTTP layer.
type WorkloadService interface {
	CreateDraft(ctx context.Context, principal auth.Principal, req *dto.SaveWorkloadRequest) (*models.Workload, error)
	UpdateDraft(ctx context.Context, principal auth.Principal, id int64, req *dto.SaveWorkloadRequest) (*models.Workload, error)
	Submit(ctx context.Context, principal auth.Principal, id int64) (*models.Workload, error)
	Approve(ctx context.Context, principal auth.Principal, id int64, req *dto.ApproveWorkloadRequest) (*models.Workload, error)
	RequestAmendment(ctx context.Context, principal auth.Principal, id int64, req *dto.RequestAmendmentRequest) (*models.Workload, error)
	GetByID(ctx context.Context, principal auth.Principal, id int64) (*models.Workload, error)
	List(ctx context.Context, principal auth.Principal, filter *dto.WorkloadFilterRequest) (*dto.WorkloadListResponse, error)
}

// workloadServiceImpl implements WorkloadService
type workloadServiceImpl struct {
	workloadRepo repositories.WorkloadRepository
	staffRepo    repositories.StaffRepository
	courseRepo   repositories.CourseRepository
}

// NewWorkloadService creates a new WorkloadService
func NewWorkloadService(
	workloadRepo repositories.WorkloadRepository,
	staffRepo repositories.StaffRepository,
	courseRepo repositories.CourseRepository,
) WorkloadService {
	return &workloadServiceImpl{
		workloadRepo: workloadRepo,
		staffRepo:    staffRepo,
		courseRepo:   courseRepo,
	}
}

// applyRequest maps a save payload onto the workload's editable fields.
// Teaching assignments are resolved against the course catalog so stored
// rows always carry the catalog code and name, not client-supplied copies.
func (s *workloadServiceImpl) applyRequest(ctx context.Context, w *models.Workload, req *dto.SaveWorkloadRequest) error {
	w.AcademicYear = req.AcademicYear
	w.Semester = req.Semester
	w.Period = req.Period
	w.StaffCertification = req.StaffCertification

	w.TeachingAssignments = nil
	for _, in := range req.TeachingAssignments {
		course, err := s.courseRepo.GetByID(ctx, in.CourseID)
		if err != nil {
			return fmt.Errorf("error resolving course: %w", err)
		}
		if course == nil {
			return apperrors.NewCustomError(apperrors.ErrCourseNotFound,
				fmt.Sprintf("course %d does not exist", in.CourseID))
		}
		w.TeachingAssignments = append(w.TeachingAssignments, models.TeachingAssignment{
			CourseID:          course.ID,
			CourseCode:        course.Code,
			CourseName:        course.Name,
			SemesterForCourse: in.SemesterForCourse,
			ContactType:       in.ContactType,
			ContactHours:      in.ContactHours,
			NotionalHours:     in.NotionalHours,
			GroupsCoordinated: in.GroupsCoordinated,
			StudentCount:      in.StudentCount,
		})
	}

	w.AdminWorkItems = mapWorkItems(req.AdminWorkItems)
	w.PersonalResearchItems = mapWorkItems(req.PersonalResearchItems)
	w.CommunityEngagementItems = mapWorkItems(req.CommunityEngagementItems)

	w.StudentResearchItems = nil
	for _, in := range req.StudentResearchItems {
		w.StudentResearchItems = append(w.StudentResearchItems, models.StudentResearchItem{
			Summary: in.Summary,
			Hours:   in.Hours,
		})
	}

	return nil
}

func mapWorkItems(inputs []dto.WorkItemInput) []models.WorkItem {
	if inputs == nil {
		return nil
	}
	items := make([]models.WorkItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, models.WorkItem{Details: in.Details, Hours: in.Hours})
	}
	return items
}

// CreateDraft creates a new Draft workload owned by the calling staff member
func (s *workloadServiceImpl) CreateDraft(ctx context.Context, principal auth.Principal, req *dto.SaveWorkloadRequest) (*models.Workload, error) {
	if !principal.IsAcademicStaff() {
		return nil, apperrors.ErrPermissionDenied
	}

	now := time.Now()
	w := &models.Workload{
		StaffMemberID:   principal.ID,
		StaffMemberName: principal.Name,
		StaffDepartment: principal.Department,
		Status:          models.StatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.applyRequest(ctx, w, req); err != nil {
		return nil, err
	}

	if errs := workload.ValidateDraft(w); errs.HasErrors() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "workload has invalid entries").
			WithDetails(map[string]interface{}{"errors": errs.Errors})
	}

	*w = workload.RecomputeTotals(*w)

	id, err := s.workloadRepo.Create(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("error creating workload: %w", err)
	}
	w.ID = id

	return w, nil
}

// UpdateDraft overwrites the editable fields of a workload the caller owns.
// Allowed while the workload is Draft or back with staff for amendment.
func (s *workloadServiceImpl) UpdateDraft(ctx context.Context, principal auth.Principal, id int64, req *dto.SaveWorkloadRequest) (*models.Workload, error) {
	w, err := s.workloadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting workload: %w", err)
	}
	if w == nil {
		return nil, apperrors.ErrWorkloadNotFound
	}

	if err := auth.RequireMutate(principal, w); err != nil {
		return nil, err
	}

	expected := w.Status
	if err := s.applyRequest(ctx, w, req); err != nil {
		return nil, err
	}

	if errs := workload.ValidateDraft(w); errs.HasErrors() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "workload has invalid entries").
			WithDetails(map[string]interface{}{"errors": errs.Errors})
	}

	*w = workload.RecomputeTotals(*w)
	w.UpdatedAt = time.Now()

	if err := s.workloadRepo.UpdateDraft(ctx, w, expected); err != nil {
		return nil, fmt.Errorf("error saving workload: %w", err)
	}

	return w, nil
}

// resolveSupervisor finds the single active supervisor for a department.
// Zero matches blocks submission; so does more than one, rather than
// silently picking whichever row the store returns first.
func (s *workloadServiceImpl) resolveSupervisor(ctx context.Context, department string) (*models.StaffMember, error) {
	if department == "" {
		return nil, apperrors.ErrMissingDepartment
	}

	supervisors, err := s.staffRepo.FindSupervisorsByDepartment(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("error finding supervisor: %w", err)
	}

	switch len(supervisors) {
	case 0:
		return nil, apperrors.NewCustomError(apperrors.ErrSupervisorNotFound,
			fmt.Sprintf("No supervisor configured for %s. Cannot submit.", department))
	case 1:
		return &supervisors[0], nil
	default:
		return nil, apperrors.NewCustomError(apperrors.ErrAmbiguousSupervisor,
			fmt.Sprintf("Department %s has %d supervisors; exactly one is required.", department, len(supervisors)))
	}
}

// Submit moves a Draft or RequiresAmendment workload to Submitted. The
// supervisor is resolved fresh on every submission.
func (s *workloadServiceImpl) Submit(ctx context.Context, principal auth.Principal, id int64) (*models.Workload, error) {
	w, err := s.workloadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting workload: %w", err)
	}
	if w == nil {
		return nil, apperrors.ErrWorkloadNotFound
	}

	if err := auth.RequireMutate(principal, w); err != nil {
		return nil, err
	}

	supervisor, err := s.resolveSupervisor(ctx, w.StaffDepartment)
	if err != nil {
		return nil, err
	}

	from := w.Status
	if err := workload.Submit(w, supervisor.ID, time.Now()); err != nil {
		return nil, err
	}

	if err := s.workloadRepo.ApplyTransition(ctx, w, from); err != nil {
		return nil, fmt.Errorf("error submitting workload: %w", err)
	}

	logger.Info().
		Int64("workloadID", w.ID).
		Int64("staffID", principal.ID).
		Int64("supervisorID", supervisor.ID).
		Msg("Workload submitted")

	return w, nil
}

// Approve moves a Submitted workload to Approved on behalf of the
// department's supervisor.
func (s *workloadServiceImpl) Approve(ctx context.Context, principal auth.Principal, id int64, req *dto.ApproveWorkloadRequest) (*models.Workload, error) {
	w, err := s.workloadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting workload: %w", err)
	}
	if w == nil {
		return nil, apperrors.ErrWorkloadNotFound
	}

	if !principal.IsSupervisor() {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := auth.RequireMutate(principal, w); err != nil {
		return nil, err
	}

	from := w.Status
	if err := workload.Approve(w, req.SupervisorCertification, req.Comment, time.Now()); err != nil {
		return nil, err
	}

	if err := s.workloadRepo.ApplyTransition(ctx, w, from); err != nil {
		return nil, fmt.Errorf("error approving workload: %w", err)
	}

	logger.Info().
		Int64("workloadID", w.ID).
		Int64("supervisorID", principal.ID).
		Msg("Workload approved")

	return w, nil
}

// RequestAmendment returns a Submitted workload to the staff member with
// the supervisor's feedback.
func (s *workloadServiceImpl) RequestAmendment(ctx context.Context, principal auth.Principal, id int64, req *dto.RequestAmendmentRequest) (*models.Workload, error) {
	w, err := s.workloadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting workload: %w", err)
	}
	if w == nil {
		return nil, apperrors.ErrWorkloadNotFound
	}

	if !principal.IsSupervisor() {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := auth.RequireMutate(principal, w); err != nil {
		return nil, err
	}

	from := w.Status
	if err := workload.RequestAmendment(w, req.Comment, time.Now()); err != nil {
		return nil, err
	}

	if err := s.workloadRepo.ApplyTransition(ctx, w, from); err != nil {
		return nil, fmt.Errorf("error requesting amendment: %w", err)
	}

	logger.Info().
		Int64("workloadID", w.ID).
		Int64("supervisorID", principal.ID).
		Msg("Workload returned for amendment")

	return w, nil
}

// GetByID retrieves one workload, subject to the visibility policy
func (s *workloadServiceImpl) GetByID(ctx context.Context, principal auth.Principal, id int64) (*models.Workload, error) {
	w, err := s.workloadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting workload: %w", err)
	}
	if w == nil {
		return nil, apperrors.ErrWorkloadNotFound
	}

	if err := auth.RequireView(principal, w); err != nil {
		return nil, err
	}

	return w, nil
}

// List returns the workloads the principal's role entitles them to see:
// staff their own, supervisors their department, admins everything.
func (s *workloadServiceImpl) List(ctx context.Context, principal auth.Principal, filter *dto.WorkloadFilterRequest) (*dto.WorkloadListResponse, error) {
	repoFilter := repositories.WorkloadFilter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Status != "" {
		repoFilter.Status = &filter.Status
	}
	if filter.Search != "" {
		repoFilter.Search = &filter.Search
	}

	var (
		workloads []models.Workload
		total     int64
		err       error
	)

	switch {
	case principal.IsAcademicStaff():
		workloads, total, err = s.workloadRepo.ListByStaff(ctx, principal.ID, repoFilter)
	case principal.IsSupervisor():
		workloads, total, err = s.workloadRepo.ListByDepartment(ctx, principal.Department, repoFilter)
	case principal.IsAdmin():
		var department *string
		if filter.Department != "" {
			department = &filter.Department
		}
		workloads, total, err = s.workloadRepo.ListAll(ctx, department, repoFilter)
	default:
		return nil, apperrors.ErrPermissionDenied
	}
	if err != nil {
		return nil, fmt.Errorf("error listing workloads: %w", err)
	}

	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.WorkloadListResponse{
		Workloads: workloads,
		PaginationInfo: dto.PaginationInfo{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  int(totalPages),
		},
	}, nil
}
