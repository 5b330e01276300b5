package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/app/services"
	"github.com/selim/acadload/internal/middleware"
)

// WorkloadController handles workload submission operations
type WorkloadController struct {
	workloadService services.WorkloadService
}

// NewWorkloadController creates a new WorkloadController
func NewWorkloadController(workloadService services.WorkloadService) *WorkloadController {
	return &WorkloadController{
		workloadService: workloadService,
	}
}

// CreateWorkload handles draft creation
// @Summary Create a draft workload
// @Description Creates a new draft workload owned by the calling staff member
// @Tags workloads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveWorkloadRequest true "Workload entries"
// @Success 201 {object} dto.APIResponse{data=models.Workload} "Draft created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /workloads [post]
func (c *WorkloadController) CreateWorkload(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.SaveWorkloadRequest
	if !bindJSON(ctx, &req) {
		return
	}

	workload, err := c.workloadService.CreateDraft(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      workload,
		Timestamp: time.Now(),
	})
}

// UpdateWorkload handles draft edits
// @Summary Update a draft workload
// @Description Overwrites the entries of a Draft or RequiresAmendment workload
// @Tags workloads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workload ID"
// @Param request body dto.SaveWorkloadRequest true "Workload entries"
// @Success 200 {object} dto.APIResponse{data=models.Workload} "Draft updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Workload not found"
// @Failure 409 {object} dto.ErrorResponse "Workload modified concurrently"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /workloads/{id} [put]
func (c *WorkloadController) UpdateWorkload(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SaveWorkloadRequest
	if !bindJSON(ctx, &req) {
		return
	}

	workload, err := c.workloadService.UpdateDraft(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      workload,
		Timestamp: time.Now(),
	})
}

// SubmitWorkload handles submission for approval
// @Summary Submit a workload
// @Description Submits a Draft or RequiresAmendment workload to the department supervisor
// @Tags workloads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workload ID"
// @Success 200 {object} dto.APIResponse{data=models.Workload} "Workload submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Submission gate failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Workload not found"
// @Failure 409 {object} dto.ErrorResponse "Workload modified concurrently"
// @Failure 422 {object} dto.ErrorResponse "Supervisor cannot be resolved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /workloads/{id}/submit [post]
func (c *WorkloadController) SubmitWorkload(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	workload, err := c.workloadService.Submit(ctx, principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      workload,
		Timestamp: time.Now(),
	})
}

// ApproveWorkload handles supervisor approval
// @Summary Approve a submitted workload
// @Description Approves a Submitted workload with the supervisor's certification
// @Tags workloads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workload ID"
// @Param request body dto.ApproveWorkloadRequest true "Approval payload"
// @Success 200 {object} dto.APIResponse{data=models.Workload} "Workload approved successfully"
// @Failure 400 {object} dto.ErrorResponse "Supervisor certification missing"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Workload not found"
// @Failure 409 {object} dto.ErrorResponse "Workload modified concurrently"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /workloads/{id}/approve [post]
func (c *WorkloadController) ApproveWorkload(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApproveWorkloadRequest
	if !bindJSON(ctx, &req) {
		return
	}

	workload, err := c.workloadService.Approve(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      workload,
		Timestamp: time.Now(),
	})
}

// RequestAmendment handles supervisor amendment requests
// @Summary Request amendment of a submitted workload
// @Description Returns a Submitted workload to the staff member with feedback
// @Tags workloads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workload ID"
// @Param request body dto.RequestAmendmentRequest true "Amendment feedback"
// @Success 200 {object} dto.APIResponse{data=models.Workload} "Amendment requested successfully"
// @Failure 400 {object} dto.ErrorResponse "Comment missing"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Workload not found"
// @Failure 409 {object} dto.ErrorResponse "Workload modified concurrently"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /workloads/{id}/request-amendment [post]
func (c *WorkloadController) RequestAmendment(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RequestAmendmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	workload, err := c.workloadService.RequestAmendment(ctx, principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      workload,
		Timestamp: time.Now(),
	})
}

// GetWorkloadByID retrieves a workload
// @Summary Get workload by ID
// @Description Retrieves a specific workload, subject to the role visibility policy
// @Tags workloads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Workload ID"
// @Success 200 {object} dto.APIResponse{data=models.Workload} "Workload retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid workload ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Workload not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /workloads/{id} [get]
func (c *WorkloadController) GetWorkloadByID(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	workload, err := c.workloadService.GetByID(ctx, principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      workload,
		Timestamp: time.Now(),
	})
}

// ListWorkloads retrieves workloads visible to the caller
// @Summary List workloads
// @Description Lists workloads the calling role is entitled to see, paginated
// @Tags workloads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param search query string false "Search by staff member name"
// @Param department query string false "Filter by department (admin only)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.WorkloadListResponse} "Workloads retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /workloads [get]
func (c *WorkloadController) ListWorkloads(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var filter dto.WorkloadFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	list, err := c.workloadService.List(ctx, principal, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      list,
		Timestamp: time.Now(),
	})
}
