package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/selim/acadload/internal/app/controllers"
	appMigrations "github.com/selim/acadload/internal/app/migrations"
	appRepos "github.com/selim/acadload/internal/app/repositories"
	appRoutes "github.com/selim/acadload/internal/app/routes"
	appServices "github.com/selim/acadload/internal/app/services"
	"github.com/selim/acadload/internal/config"
	"github.com/selim/acadload/internal/db"
	appMiddleware "github.com/selim/acadload/internal/middleware"
	pkgAuth "github.com/selim/acadload/internal/pkg/auth"
	"github.com/selim/acadload/internal/pkg/helpers"
	"github.com/selim/acadload/internal/pkg/logger"
	"github.com/selim/acadload/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService               appServices.AuthService
	WorkloadService           appServices.WorkloadService
	StaffService              appServices.StaffService
	CourseService             appServices.CourseService
	ResearchStudentService    appServices.ResearchStudentService
	AuthController            *appControllers.AuthController
	WorkloadController        *appControllers.WorkloadController
	StaffController           *appControllers.StaffController
	CourseController          *appControllers.CourseController
	ResearchStudentController *appControllers.ResearchStudentController
	AuthMiddleware            *appMiddleware.AuthMiddleware
	Repos                     *appRepos.Repositories
	JWTService                *pkgAuth.JWTService
	Logger                    zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.StaffRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)

	deps.WorkloadService = appServices.NewWorkloadService(
		deps.Repos.WorkloadRepository,
		deps.Repos.StaffRepository,
		deps.Repos.CourseRepository,
	)

	deps.StaffService = appServices.NewStaffService(deps.Repos.StaffRepository, deps.Repos.TokenRepository)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository)
	deps.ResearchStudentService = appServices.NewResearchStudentService(
		deps.Repos.ResearchStudentRepository,
		deps.Repos.StaffRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.WorkloadController = appControllers.NewWorkloadController(deps.WorkloadService)
	deps.StaffController = appControllers.NewStaffController(deps.StaffService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.ResearchStudentController = appControllers.NewResearchStudentController(deps.ResearchStudentService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.CORS())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.WorkloadController,
		deps.StaffController,
		deps.CourseController,
		deps.ResearchStudentController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
