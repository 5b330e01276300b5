package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/app/services"
	"github.com/selim/acadload/internal/middleware"
)

// StaffController handles staff account administration
type StaffController struct {
	staffService services.StaffService
}

// NewStaffController creates a new StaffController
func NewStaffController(staffService services.StaffService) *StaffController {
	return &StaffController{
		staffService: staffService,
	}
}

// CreateStaff handles staff account creation
// @Summary Create a staff account
// @Description Creates a new active staff account (admin only)
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStaffRequest true "Staff account information"
// @Success 201 {object} dto.APIResponse{data=models.StaffMember} "Staff account created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff [post]
func (c *StaffController) CreateStaff(ctx *gin.Context) {
	var req dto.CreateStaffRequest
	if !bindJSON(ctx, &req) {
		return
	}

	staff, err := c.staffService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      staff,
		Timestamp: time.Now(),
	})
}

// GetStaffByID retrieves a staff member
// @Summary Get staff member by ID
// @Description Retrieves a specific staff account (admin only)
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID"
// @Success 200 {object} dto.APIResponse{data=models.StaffMember} "Staff member retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid staff ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/{id} [get]
func (c *StaffController) GetStaffByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	staff, err := c.staffService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      staff,
		Timestamp: time.Now(),
	})
}

// ListStaff retrieves staff accounts
// @Summary List staff accounts
// @Description Lists staff accounts, optionally filtered by department and role (admin only)
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param department query string false "Filter by department"
// @Param role query string false "Filter by role"
// @Success 200 {object} dto.APIResponse{data=[]models.StaffMember} "Staff accounts retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff [get]
func (c *StaffController) ListStaff(ctx *gin.Context) {
	var filter dto.StaffFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	staff, err := c.staffService.List(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      staff,
		Timestamp: time.Now(),
	})
}

// UpdateStaff edits a staff account
// @Summary Update a staff account
// @Description Updates name, role and department of a staff account (admin only)
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID"
// @Param request body dto.UpdateStaffRequest true "Updated staff information"
// @Success 200 {object} dto.APIResponse{data=models.StaffMember} "Staff account updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/{id} [put]
func (c *StaffController) UpdateStaff(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStaffRequest
	if !bindJSON(ctx, &req) {
		return
	}

	staff, err := c.staffService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      staff,
		Timestamp: time.Now(),
	})
}

// DeactivateStaff disables a staff account
// @Summary Deactivate a staff account
// @Description Disables a staff account and revokes its refresh tokens (admin only)
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Staff ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Staff account deactivated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid staff ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/{id} [delete]
func (c *StaffController) DeactivateStaff(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.staffService.Deactivate(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Staff account deactivated"},
		Timestamp: time.Now(),
	})
}
