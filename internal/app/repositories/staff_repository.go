package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selim/acadload/internal/app/models"
)

// StaffRepository handles database operations for staff accounts
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*models.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*models.StaffMember, error)
	List(ctx context.Context, department, role *string) ([]models.StaffMember, error)
	Create(ctx context.Context, staff *models.StaffMember) (int64, error)
	Update(ctx context.Context, staff *models.StaffMember) error
	Deactivate(ctx context.Context, id int64) error
	RecordLogin(ctx context.Context, id int64, at time.Time) error
	FindSupervisorsByDepartment(ctx context.Context, department string) ([]models.StaffMember, error)
}

type staffRepository struct {
	db *pgxpool.Pool
}

// NewStaffRepository creates a new StaffRepository
func NewStaffRepository(db *pgxpool.Pool) StaffRepository {
	return &staffRepository{db: db}
}

var staffColumns = []string{
	"id", "email", "password", "name", "role", "department",
	"is_active", "created_at", "updated_at", "last_login_at",
}

func scanStaff(row pgx.Row) (*models.StaffMember, error) {
	var s models.StaffMember
	var rawRole string
	err := row.Scan(
		&s.ID,
		&s.Email,
		&s.Password,
		&s.Name,
		&rawRole,
		&s.Department,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	// Legacy role aliases are resolved here, at the store boundary
	s.Role = models.NormalizeRole(rawRole)
	return &s, nil
}

// GetByID retrieves a staff member by ID
func (r *staffRepository) GetByID(ctx context.Context, id int64) (*models.StaffMember, error) {
	query := squirrel.Select(staffColumns...).
		From("staff").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	staff, err := scanStaff(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return staff, nil
}

// GetByEmail retrieves a staff member by email
func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*models.StaffMember, error) {
	query := squirrel.Select(staffColumns...).
		From("staff").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	staff, err := scanStaff(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return staff, nil
}

// List retrieves staff members with optional department and role filters
func (r *staffRepository) List(ctx context.Context, department, role *string) ([]models.StaffMember, error) {
	query := squirrel.Select(staffColumns...).
		From("staff").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if department != nil {
		query = query.Where("department = ?", *department)
	}
	if role != nil {
		query = query.Where("role = ?", *role)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var members []models.StaffMember
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		members = append(members, *staff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff rows: %w", err)
	}

	return members, nil
}

// Create inserts a new staff member and returns the assigned ID
func (r *staffRepository) Create(ctx context.Context, staff *models.StaffMember) (int64, error) {
	query := squirrel.Insert("staff").
		Columns("email", "password", "name", "role", "department", "is_active", "created_at", "updated_at").
		Values(staff.Email, staff.Password, staff.Name, string(staff.Role), staff.Department, staff.IsActive, staff.CreatedAt, staff.UpdatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// Update updates name, role and department of an existing staff member
func (r *staffRepository) Update(ctx context.Context, staff *models.StaffMember) error {
	query := squirrel.Update("staff").
		Set("name", staff.Name).
		Set("role", string(staff.Role)).
		Set("department", staff.Department).
		Set("updated_at", staff.UpdatedAt).
		Where("id = ?", staff.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("no rows affected")
	}

	return nil
}

// Deactivate disables a staff account without removing its rows
func (r *staffRepository) Deactivate(ctx context.Context, id int64) error {
	query := squirrel.Update("staff").
		Set("is_active", false).
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("no rows affected")
	}

	return nil
}

// RecordLogin stamps the last login time
func (r *staffRepository) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	query := squirrel.Update("staff").
		Set("last_login_at", at).
		Where("id = ?", id).
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

// FindSupervisorsByDepartment returns every active Supervisor-role staff
// member in the department. Interpreting zero or multiple matches is the
// caller's decision.
func (r *staffRepository) FindSupervisorsByDepartment(ctx context.Context, department string) ([]models.StaffMember, error) {
	query := squirrel.Select(staffColumns...).
		From("staff").
		Where("department = ?", department).
		Where("role = ?", string(models.RoleSupervisor)).
		Where("is_active = TRUE").
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var supervisors []models.StaffMember
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		supervisors = append(supervisors, *staff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff rows: %w", err)
	}

	return supervisors, nil
}
