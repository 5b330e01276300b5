package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/selim/acadload/internal/app/controllers"
	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	workloadController *controllers.WorkloadController,
	staffController *controllers.StaffController,
	courseController *controllers.CourseController,
	researchStudentController *controllers.ResearchStudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		// Workload routes. Per-operation authorization lives in the service
		// layer; the router only guards role-exclusive endpoints.
		workloads := authenticated.Group("/workloads")
		{
			workloads.GET("", workloadController.ListWorkloads)
			workloads.GET("/:id", workloadController.GetWorkloadByID)

			workloadsStaff := workloads.Group("")
			workloadsStaff.Use(authMiddleware.RoleRequired(models.RoleAcademicStaff))
			{
				workloadsStaff.POST("", workloadController.CreateWorkload)
				workloadsStaff.PUT("/:id", workloadController.UpdateWorkload)
				workloadsStaff.POST("/:id/submit", workloadController.SubmitWorkload)
				workloadsStaff.POST("/:id/resubmit", workloadController.SubmitWorkload)
			}

			workloadsSupervisor := workloads.Group("")
			workloadsSupervisor.Use(authMiddleware.RoleRequired(models.RoleSupervisor))
			{
				workloadsSupervisor.POST("/:id/approve", workloadController.ApproveWorkload)
				workloadsSupervisor.POST("/:id/request-amendment", workloadController.RequestAmendment)
			}
		}

		// Course catalog: readable by every authenticated role, managed by admins
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:id", courseController.GetCourseByID)

			coursesAdmin := courses.Group("")
			coursesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				coursesAdmin.POST("", courseController.CreateCourse)
				coursesAdmin.PUT("/:id", courseController.UpdateCourse)
				coursesAdmin.DELETE("/:id", courseController.DeleteCourse)
			}
		}

		// Staff administration: admin only
		staff := authenticated.Group("/staff")
		staff.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			staff.GET("", staffController.ListStaff)
			staff.GET("/:id", staffController.GetStaffByID)
			staff.POST("", staffController.CreateStaff)
			staff.PUT("/:id", staffController.UpdateStaff)
			staff.DELETE("/:id", staffController.DeactivateStaff)
		}

		// Research student records
		researchStudents := authenticated.Group("/research-students")
		{
			researchStudents.GET("", researchStudentController.ListResearchStudents)
			researchStudents.GET("/:id", researchStudentController.GetResearchStudentByID)
			researchStudents.POST("", researchStudentController.CreateResearchStudent)
			researchStudents.PUT("/:id", researchStudentController.UpdateResearchStudent)
			researchStudents.DELETE("/:id", researchStudentController.DeleteResearchStudent)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
}
