package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RefreshToken is one stored refresh token
type RefreshToken struct {
	ID        int64
	StaffID   int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenRepository handles database operations for refresh tokens
type TokenRepository interface {
	Save(ctx context.Context, staffID int64, token string, expiresAt time.Time) error
	Get(ctx context.Context, token string) (*RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteForStaff(ctx context.Context, staffID int64) error
}

type tokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) TokenRepository {
	return &tokenRepository{db: db}
}

// Save stores a refresh token
func (r *tokenRepository) Save(ctx context.Context, staffID int64, token string, expiresAt time.Time) error {
	query := squirrel.Insert("refresh_tokens").
		Columns("staff_id", "token", "expires_at", "created_at").
		Values(staffID, token, expiresAt, time.Now()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// Get retrieves a refresh token by value
func (r *tokenRepository) Get(ctx context.Context, token string) (*RefreshToken, error) {
	query := squirrel.Select("id", "staff_id", "token", "expires_at", "created_at").
		From("refresh_tokens").
		Where("token = ?", token).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var t RefreshToken
	err = r.db.QueryRow(ctx, sql, args...).Scan(&t.ID, &t.StaffID, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &t, nil
}

// Delete removes a refresh token
func (r *tokenRepository) Delete(ctx context.Context, token string) error {
	query := squirrel.Delete("refresh_tokens").
		Where("token = ?", token).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// DeleteForStaff removes every refresh token of one staff member
func (r *tokenRepository) DeleteForStaff(ctx context.Context, staffID int64) error {
	query := squirrel.Delete("refresh_tokens").
		Where("staff_id = ?", staffID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}
