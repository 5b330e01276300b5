package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/app/services"
	"github.com/selim/acadload/internal/middleware"
)

// ResearchStudentController handles research student records
type ResearchStudentController struct {
	studentService services.ResearchStudentService
}

// NewResearchStudentController creates a new ResearchStudentController
func NewResearchStudentController(studentService services.ResearchStudentService) *ResearchStudentController {
	return &ResearchStudentController{
		studentService: studentService,
	}
}

// CreateResearchStudent registers a research student
// @Summary Register a research student
// @Description Registers a research student under the calling staff member
// @Tags research-students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateResearchStudentRequest true "Research student information"
// @Success 201 {object} dto.APIResponse{data=models.ResearchStudent} "Research student registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /research-students [post]
func (c *ResearchStudentController) CreateResearchStudent(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateResearchStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Create(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// GetResearchStudentByID retrieves a research student record
// @Summary Get research student by ID
// @Description Retrieves a research student record, subject to the role visibility policy
// @Tags research-students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Research student ID"
// @Success 200 {object} dto.APIResponse{data=models.ResearchStudent} "Research student retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid research student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Research student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /research-students/{id} [get]
func (c *ResearchStudentController) GetResearchStudentByID(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetByID(ctx, principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// ListResearchStudents retrieves research students visible to the caller
// @Summary List research students
// @Description Lists research students the calling role is entitled to see
// @Tags research-students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ResearchStudent} "Research students retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /research-students [get]
func (c *ResearchStudentController) ListResearchStudents(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	students, err := c.studentService.List(ctx, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// UpdateResearchStudent edits a research student record
// @Summary Update a research student
// @Description Updates a research student record owned by the calling staff member
// @Tags research-students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Research student ID"
// @Param request body dto.UpdateResearchStudentRequest true "Updated research student information"
// @Success 200 {object} dto.APIResponse{data=models.ResearchStudent} "Research student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Research student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /research-students/{id} [put]
func (c *ResearchStudentController) UpdateResearchStudent(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateResearchStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Update(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// DeleteResearchStudent removes a research student record
// @Summary Delete a research student
// @Description Deletes a research student record owned by the calling staff member
// @Tags research-students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Research student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Research student deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid research student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Research student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /research-students/{id} [delete]
func (c *ResearchStudentController) DeleteResearchStudent(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Research student deleted"},
		Timestamp: time.Now(),
	})
}
