package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/pkg/apperrors"
	"github.com/selim/acadload/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the standard error response.
// Sentinel matching goes through errors.Is so wrapped CustomErrors keep
// their message and details.
func HandleAPIError(c *gin.Context, err error) {
	status, code, message := classifyError(err)

	errorDetail := dto.NewErrorDetail(code, message)

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		if customErr.Message != "" {
			errorDetail.Message = customErr.Message
		}
		if customErr.Details != nil {
			errorDetail = errorDetail.WithDetails(customErr.Details)
		}
	}

	if errors.Is(err, apperrors.ErrHoursOutOfRange) {
		errorDetail = errorDetail.WithField("totalLoggedHours")
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Internal server error")
	}

	c.JSON(status, dto.NewErrorResponse(errorDetail))
}

func classifyError(err error) (int, dto.ErrorCode, string) {
	switch {
	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Refresh token not found"
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusUnauthorized, dto.ErrorCodeAccountDisabled, "Account is disabled"

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"

	// Not found
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrStaffNotFound,
		apperrors.ErrWorkloadNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrResearchStudentNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"

	// Submission gate
	case errors.Is(err, apperrors.ErrHoursOutOfRange):
		return http.StatusBadRequest, dto.ErrorCodeHoursOutOfRange, "Total logged hours out of submittable range"
	case apperrors.Is(err, apperrors.ErrCertificationRequired, apperrors.ErrSupervisorCertificationRequired):
		return http.StatusBadRequest, dto.ErrorCodeCertificationRequired, "Certification is required"
	case errors.Is(err, apperrors.ErrCommentRequired):
		return http.StatusBadRequest, dto.ErrorCodeCommentRequired, "A comment is required"

	// Lifecycle
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusConflict, dto.ErrorCodeInvalidTransition, "Workload status does not allow this action"
	case errors.Is(err, apperrors.ErrTransitionConflict):
		return http.StatusConflict, dto.ErrorCodeTransitionConflict, "Workload was modified concurrently"

	// Supervisor resolution
	case errors.Is(err, apperrors.ErrSupervisorNotFound):
		return http.StatusUnprocessableEntity, dto.ErrorCodeSupervisorNotFound, "No supervisor configured for this department"
	case errors.Is(err, apperrors.ErrAmbiguousSupervisor):
		return http.StatusUnprocessableEntity, dto.ErrorCodeAmbiguousSupervisor, "Multiple supervisors configured for this department"
	case errors.Is(err, apperrors.ErrMissingDepartment):
		return http.StatusUnprocessableEntity, dto.ErrorCodeValidationFailed, "Staff member has no department assigned"

	// Conflicts
	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists,
		apperrors.ErrCourseAlreadyExists,
		apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"
	case apperrors.Is(err, apperrors.ErrCourseInUse, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeResourceConflict, "Resource is in use"

	// Validation
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"

	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"
	}
}
