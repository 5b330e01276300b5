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

// ResearchStudentRepository handles database operations for supervised
// research students
type ResearchStudentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.ResearchStudent, error)
	ListBySupervisor(ctx context.Context, supervisorID int64) ([]models.ResearchStudent, error)
	ListByDepartment(ctx context.Context, department string) ([]models.ResearchStudent, error)
	ListAll(ctx context.Context) ([]models.ResearchStudent, error)
	Create(ctx context.Context, student *models.ResearchStudent) (int64, error)
	Update(ctx context.Context, student *models.ResearchStudent) error
	Delete(ctx context.Context, id int64) error
}

type researchStudentRepository struct {
	db *pgxpool.Pool
}

// NewResearchStudentRepository creates a new ResearchStudentRepository
func NewResearchStudentRepository(db *pgxpool.Pool) ResearchStudentRepository {
	return &researchStudentRepository{db: db}
}

var researchStudentColumns = []string{
	"id", "supervisor_id", "supervisor_name", "student_name",
	"student_email", "research_topic", "start_date", "status", "created_at",
}

func scanResearchStudent(row pgx.Row) (*models.ResearchStudent, error) {
	var s models.ResearchStudent
	err := row.Scan(
		&s.ID,
		&s.SupervisorID,
		&s.SupervisorName,
		&s.StudentName,
		&s.StudentEmail,
		&s.ResearchTopic,
		&s.StartDate,
		&s.Status,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a research student by ID
func (r *researchStudentRepository) GetByID(ctx context.Context, id int64) (*models.ResearchStudent, error) {
	query := squirrel.Select(researchStudentColumns...).
		From("research_students").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	student, err := scanResearchStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return student, nil
}

func (r *researchStudentRepository) queryList(ctx context.Context, query squirrel.SelectBuilder) ([]models.ResearchStudent, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var students []models.ResearchStudent
	for rows.Next() {
		student, err := scanResearchStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, *student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating research student rows: %w", err)
	}

	return students, nil
}

// ListBySupervisor retrieves the students supervised by one staff member
func (r *researchStudentRepository) ListBySupervisor(ctx context.Context, supervisorID int64) ([]models.ResearchStudent, error) {
	query := squirrel.Select(researchStudentColumns...).
		From("research_students").
		Where("supervisor_id = ?", supervisorID).
		OrderBy("student_name ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryList(ctx, query)
}

// ListByDepartment retrieves students supervised by any staff member of the
// department. Research students carry no department of their own, so this
// goes through the supervising staff row.
func (r *researchStudentRepository) ListByDepartment(ctx context.Context, department string) ([]models.ResearchStudent, error) {
	query := squirrel.Select(
		"rs.id", "rs.supervisor_id", "rs.supervisor_name", "rs.student_name",
		"rs.student_email", "rs.research_topic", "rs.start_date", "rs.status", "rs.created_at",
	).
		From("research_students rs").
		Join("staff s ON s.id = rs.supervisor_id").
		Where("s.department = ?", department).
		OrderBy("rs.student_name ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryList(ctx, query)
}

// ListAll retrieves every research student
func (r *researchStudentRepository) ListAll(ctx context.Context) ([]models.ResearchStudent, error) {
	query := squirrel.Select(researchStudentColumns...).
		From("research_students").
		OrderBy("student_name ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryList(ctx, query)
}

// Create inserts a new research student and returns the assigned ID
func (r *researchStudentRepository) Create(ctx context.Context, student *models.ResearchStudent) (int64, error) {
	query := squirrel.Insert("research_students").
		Columns("supervisor_id", "supervisor_name", "student_name", "student_email",
			"research_topic", "start_date", "status", "created_at").
		Values(student.SupervisorID, student.SupervisorName, student.StudentName, student.StudentEmail,
			student.ResearchTopic, student.StartDate, string(student.Status), student.CreatedAt).
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

// Update edits an existing research student
func (r *researchStudentRepository) Update(ctx context.Context, student *models.ResearchStudent) error {
	query := squirrel.Update("research_students").
		Set("student_name", student.StudentName).
		Set("student_email", student.StudentEmail).
		Set("research_topic", student.ResearchTopic).
		Set("status", string(student.Status)).
		Where("id = ?", student.ID).
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

// Delete removes a research student record
func (r *researchStudentRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("research_students").
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
