package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/app/repositories"
	"github.com/selim/acadload/internal/pkg/apperrors"
	"github.com/selim/acadload/internal/pkg/logger"
)

// CourseService defines the interface for course catalog management
type CourseService interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.CourseRepository) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo}
}

// normalizeCode canonicalizes course codes so CSC101 and csc101 are the
// same catalog entry.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GetByID retrieves one course
func (s *courseServiceImpl) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// List retrieves the full course catalog
func (s *courseServiceImpl) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, nil
}

// Create adds a course to the catalog. Codes are unique case-insensitively.
func (s *courseServiceImpl) Create(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	code := normalizeCode(req.Code)

	existing, err := s.courseRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("error checking course code: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseAlreadyExists,
			fmt.Sprintf("course %s already exists", code))
	}

	course := &models.Course{
		Code:       code,
		Name:       req.Name,
		Department: req.Department,
		CreatedAt:  time.Now(),
	}

	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	course.ID = id

	logger.Info().Int64("courseID", id).Str("code", code).Msg("Course created")

	return course, nil
}

// Update edits a catalog course. Workload rows keep the code and name
// captured when the assignment was saved; renames do not rewrite history.
func (s *courseServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	code := normalizeCode(req.Code)
	if code != course.Code {
		existing, err := s.courseRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("error checking course code: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.NewCustomError(apperrors.ErrCourseAlreadyExists,
				fmt.Sprintf("course %s already exists", code))
		}
	}

	course.Code = code
	course.Name = req.Name
	course.Department = req.Department

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return course, nil
}

// Delete removes a course, refusing while any workload references it
func (s *courseServiceImpl) Delete(ctx context.Context, id int64) error {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting course: %w", err)
	}
	if course == nil {
		return apperrors.ErrCourseNotFound
	}

	referenced, err := s.courseRepo.ReferencedByWorkloads(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking course references: %w", err)
	}
	if referenced {
		return apperrors.NewCustomError(apperrors.ErrCourseInUse,
			fmt.Sprintf("course %s appears in workload submissions and cannot be deleted", course.Code))
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	logger.Info().Int64("courseID", id).Str("code", course.Code).Msg("Course deleted")

	return nil
}
