package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Staff errors
var (
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Workload errors
var (
	ErrWorkloadNotFound      = errors.New("workload not found")
	ErrCertificationRequired = errors.New("staff certification is required before submission")
	ErrHoursOutOfRange       = errors.New("total logged hours out of submittable range")
	ErrCommentRequired       = errors.New("an amendment comment is required")

	ErrSupervisorCertificationRequired = errors.New("supervisor certification is required before approval")
	ErrInvalidTransition               = errors.New("workload status does not allow this action")
	ErrTransitionConflict              = errors.New("workload was modified concurrently, action not applied")
)

// Supervisor resolution errors
var (
	ErrSupervisorNotFound  = errors.New("no supervisor configured for this department")
	ErrAmbiguousSupervisor = errors.New("multiple supervisors configured for this department")
	ErrMissingDepartment   = errors.New("staff member has no department assigned")
)

// Course errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAlreadyExists = errors.New("course with this code already exists")
	ErrCourseInUse         = errors.New("course is referenced by workload submissions and cannot be deleted")
)

// Research student errors
var (
	ErrResearchStudentNotFound = errors.New("research student not found")
)

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
