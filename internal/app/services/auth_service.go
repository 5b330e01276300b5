package services

import (
	"context"
	"fmt"
	"time"

	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/app/repositories"
	"github.com/selim/acadload/internal/pkg/apperrors"
	"github.com/selim/acadload/internal/pkg/auth"
	"github.com/selim/acadload/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, staffID int64) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	staffRepo  repositories.StaffRepository
	tokenRepo  repositories.TokenRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	staffRepo repositories.StaffRepository,
	tokenRepo repositories.TokenRepository,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		staffRepo:  staffRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues a token pair. Disabled accounts
// are rejected even with a correct password.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error getting staff member: %w", err)
	}
	if staff == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(staff.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !staff.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(staff)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.Save(ctx, staff.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	if err := s.staffRepo.RecordLogin(ctx, staff.ID, time.Now()); err != nil {
		logger.Warn().Err(err).Int64("staffID", staff.ID).Msg("Failed to record login time")
	}

	logger.Info().Int64("staffID", staff.ID).Str("role", string(staff.Role)).Msg("Staff member logged in")

	return &dto.LoginResponse{
		Tokens: dto.TokenResponse{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			ExpiresIn:        expiresIn,
			RefreshExpiresIn: refreshExpiresIn,
		},
		Profile: dto.ProfileResponse{
			ID:         staff.ID,
			Email:      staff.Email,
			Name:       staff.Name,
			Role:       string(staff.Role),
			Department: staff.Department,
		},
	}, nil
}

// RefreshToken rotates a refresh token: the presented token is consumed
// and a new pair is issued.
func (s *authServiceImpl) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.Get(ctx, req.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("error getting refresh token: %w", err)
	}
	if stored == nil {
		return nil, apperrors.ErrTokenNotFound
	}

	if time.Now().After(stored.ExpiresAt) {
		if err := s.tokenRepo.Delete(ctx, req.RefreshToken); err != nil {
			logger.Warn().Err(err).Msg("Failed to delete expired refresh token")
		}
		return nil, apperrors.ErrTokenExpired
	}

	staff, err := s.staffRepo.GetByID(ctx, stored.StaffID)
	if err != nil {
		return nil, fmt.Errorf("error getting staff member: %w", err)
	}
	if staff == nil || !staff.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Delete(ctx, req.RefreshToken); err != nil {
		return nil, fmt.Errorf("error deleting refresh token: %w", err)
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(staff)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.Save(ctx, staff.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}

// Logout revokes every refresh token held by the staff member
func (s *authServiceImpl) Logout(ctx context.Context, staffID int64) error {
	if err := s.tokenRepo.DeleteForStaff(ctx, staffID); err != nil {
		return fmt.Errorf("error revoking refresh tokens: %w", err)
	}
	return nil
}
