package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selim/acadload/internal/app/models"
)

// CourseRepository handles database operations for the course catalog
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) (int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	ReferencedByWorkloads(ctx context.Context, id int64) (bool, error)
}

type courseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) CourseRepository {
	return &courseRepository{db: db}
}

var courseColumns = []string{"id", "code", "name", "department", "created_at"}

// GetByID retrieves a course by ID
func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := squirrel.Select(courseColumns...).
		From("courses").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var c models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Code, &c.Name, &c.Department, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &c, nil
}

// GetByCode retrieves a course by its catalog code
func (r *courseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	query := squirrel.Select(courseColumns...).
		From("courses").
		Where("code = ?", code).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var c models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Code, &c.Name, &c.Department, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &c, nil
}

// List retrieves all courses ordered by name
func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	query := squirrel.Select(courseColumns...).
		From("courses").
		OrderBy("name ASC").
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

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Department, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// Create inserts a new course and returns the assigned ID
func (r *courseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	query := squirrel.Insert("courses").
		Columns("code", "name", "department", "created_at").
		Values(course.Code, course.Name, course.Department, course.CreatedAt).
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

// Update renames a course or moves it between departments
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	query := squirrel.Update("courses").
		Set("code", course.Code).
		Set("name", course.Name).
		Set("department", course.Department).
		Where("id = ?", course.ID).
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

// Delete removes a course from the catalog
func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("courses").
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

// ReferencedByWorkloads reports whether any workload submission carries a
// teaching assignment for the course. Teaching assignments live in a JSONB
// column, so the containment operator does the lookup.
func (r *courseRepository) ReferencedByWorkloads(ctx context.Context, id int64) (bool, error) {
	sql := `SELECT EXISTS (
		SELECT 1 FROM workloads
		WHERE teaching_assignments @> jsonb_build_array(jsonb_build_object('courseId', $1::bigint))
	)`

	var exists bool
	if err := r.db.QueryRow(ctx, sql, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return exists, nil
}
