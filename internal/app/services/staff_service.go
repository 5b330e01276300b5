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
	"github.com/selim/acadload/internal/pkg/auth"
	"github.com/selim/acadload/internal/pkg/logger"
	"github.com/selim/acadload/internal/pkg/validation"
)

// StaffService defines the interface for staff account management
type StaffService interface {
	GetByID(ctx context.Context, id int64) (*models.StaffMember, error)
	List(ctx context.Context, filter *dto.StaffFilterRequest) ([]models.StaffMember, error)
	Create(ctx context.Context, req *dto.CreateStaffRequest) (*models.StaffMember, error)
	Update(ctx context.Context, id int64, req *dto.UpdateStaffRequest) (*models.StaffMember, error)
	Deactivate(ctx context.Context, id int64) error
}

// staffServiceImpl implements StaffService
type staffServiceImpl struct {
	staffRepo repositories.StaffRepository
	tokenRepo repositories.TokenRepository
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo repositories.StaffRepository, tokenRepo repositories.TokenRepository) StaffService {
	return &staffServiceImpl{
		staffRepo: staffRepo,
		tokenRepo: tokenRepo,
	}
}

// GetByID retrieves one staff member
func (s *staffServiceImpl) GetByID(ctx context.Context, id int64) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting staff member: %w", err)
	}
	if staff == nil {
		return nil, apperrors.ErrStaffNotFound
	}
	return staff, nil
}

// List retrieves staff members, optionally filtered by department and role.
// Role filters are normalized so legacy role names match their current form.
func (s *staffServiceImpl) List(ctx context.Context, filter *dto.StaffFilterRequest) ([]models.StaffMember, error) {
	var department, role *string
	if filter.Department != "" {
		department = &filter.Department
	}
	if filter.Role != "" {
		normalized := models.NormalizeRole(filter.Role)
		if normalized == "" {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
				fmt.Sprintf("unknown role %q", filter.Role))
		}
		roleStr := string(normalized)
		role = &roleStr
	}

	staff, err := s.staffRepo.List(ctx, department, role)
	if err != nil {
		return nil, fmt.Errorf("error listing staff members: %w", err)
	}
	return staff, nil
}

// validateRoleAndDepartment checks the role is known and that non-admin
// roles carry a department.
func validateRoleAndDepartment(rawRole, department string) (models.RoleType, error) {
	role := models.NormalizeRole(rawRole)
	if role == "" {
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("unknown role %q", rawRole))
	}
	if role != models.RoleAdmin && department == "" {
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed,
			"department is required for non-admin roles")
	}
	return role, nil
}

// validateAccountFields re-checks name, email and password rules beyond
// what request binding enforces.
func validateAccountFields(name, email, password string) error {
	nameOK := validation.NewStringValidation(name).
		WithMinLength(validation.NameMinLength).
		WithMaxLength(validation.NameMaxLength).
		Validate()
	if !nameOK {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("name must be between %d and %d characters", validation.NameMinLength, validation.NameMaxLength))
	}
	if !validation.CompiledPatterns.Email.MatchString(strings.ToLower(email)) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "email address is not valid")
	}
	if len(password) < validation.PasswordMinLength {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("password must be at least %d characters", validation.PasswordMinLength))
	}
	return nil
}

// Create creates a new active staff account
func (s *staffServiceImpl) Create(ctx context.Context, req *dto.CreateStaffRequest) (*models.StaffMember, error) {
	role, err := validateRoleAndDepartment(req.Role, req.Department)
	if err != nil {
		return nil, err
	}

	if err := validateAccountFields(req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}

	existing, err := s.staffRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	now := time.Now()
	staff := &models.StaffMember{
		Email:      req.Email,
		Password:   hashed,
		Name:       req.Name,
		Role:       role,
		Department: req.Department,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	id, err := s.staffRepo.Create(ctx, staff)
	if err != nil {
		return nil, fmt.Errorf("error creating staff member: %w", err)
	}
	staff.ID = id

	logger.Info().Int64("staffID", id).Str("role", string(role)).Msg("Staff account created")

	return staff, nil
}

// Update edits name, role and department of a staff account
func (s *staffServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateStaffRequest) (*models.StaffMember, error) {
	role, err := validateRoleAndDepartment(req.Role, req.Department)
	if err != nil {
		return nil, err
	}

	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting staff member: %w", err)
	}
	if staff == nil {
		return nil, apperrors.ErrStaffNotFound
	}

	staff.Name = req.Name
	staff.Role = role
	staff.Department = req.Department
	staff.UpdatedAt = time.Now()

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, fmt.Errorf("error updating staff member: %w", err)
	}

	return staff, nil
}

// Deactivate disables a staff account and revokes its refresh tokens
func (s *staffServiceImpl) Deactivate(ctx context.Context, id int64) error {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting staff member: %w", err)
	}
	if staff == nil {
		return apperrors.ErrStaffNotFound
	}

	if err := s.staffRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("error deactivating staff member: %w", err)
	}

	if err := s.tokenRepo.DeleteForStaff(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("staffID", id).Msg("Failed to revoke refresh tokens on deactivation")
	}

	logger.Info().Int64("staffID", id).Msg("Staff account deactivated")

	return nil
}
