package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/selim/acadload/internal/app/models"
	appRepos "github.com/selim/acadload/internal/app/repositories"
	"github.com/selim/acadload/internal/config"
	"github.com/selim/acadload/internal/pkg/auth"
)

const defaultAdminEmail = "admin@acadload.local"

// CreateDefaultData creates the default admin account if no admin exists.
// The service is unusable without one: only admins can create staff accounts.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	staffRepo := appRepos.NewStaffRepository(dbPool)

	adminEmail := cfg.Seed.AdminEmail
	if adminEmail == "" {
		adminEmail = defaultAdminEmail
	}

	existing, err := staffRepo.GetByEmail(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin account exists")
		return err
	}
	if existing != nil {
		lgr.Info().Msg("Admin account already exists, skipping creation")
		return nil
	}

	adminPassword := cfg.Seed.AdminPassword
	if adminPassword == "" {
		lgr.Warn().Msg("No seed admin password configured, skipping admin creation")
		return errors.New("seed admin password not configured")
	}

	lgr.Info().Str("email", adminEmail).Msg("Creating default admin account...")

	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	now := time.Now()
	admin := &appModels.StaffMember{
		Email:     adminEmail,
		Password:  hashed,
		Name:      "System Administrator",
		Role:      appModels.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	adminID, err := staffRepo.Create(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin account")
		return err
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default admin account created successfully")
	return nil
}
