package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/pkg/apperrors"
)

// WorkloadFilter narrows workload list queries. Nil fields mean no filter.
type WorkloadFilter struct {
	Status   *string
	Search   *string
	Page     int
	PageSize int
}

// WorkloadRepository handles database operations for workload submissions.
// One workload is one row; the itemized category sections are JSONB columns,
// so every lifecycle transition is a single atomic row update.
type WorkloadRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Workload, error)
	Create(ctx context.Context, w *models.Workload) (int64, error)
	UpdateDraft(ctx context.Context, w *models.Workload, expected models.WorkloadStatus) error
	ApplyTransition(ctx context.Context, w *models.Workload, from models.WorkloadStatus) error
	ListByStaff(ctx context.Context, staffID int64, filter WorkloadFilter) ([]models.Workload, int64, error)
	ListByDepartment(ctx context.Context, department string, filter WorkloadFilter) ([]models.Workload, int64, error)
	ListAll(ctx context.Context, department *string, filter WorkloadFilter) ([]models.Workload, int64, error)
}

type workloadRepository struct {
	db *pgxpool.Pool
}

// NewWorkloadRepository creates a new WorkloadRepository
func NewWorkloadRepository(db *pgxpool.Pool) WorkloadRepository {
	return &workloadRepository{db: db}
}

var workloadColumns = []string{
	"id", "staff_member_id", "staff_member_name", "staff_department", "supervisor_id",
	"academic_year", "semester", "period",
	"teaching_assignments", "admin_work_items", "personal_research_items",
	"student_research_items", "community_engagement_items",
	"total_contact_hours", "total_admin_work_hours", "total_personal_research_hours",
	"total_student_research_hours", "total_community_engagement_hours", "total_logged_hours",
	"status", "staff_certification", "supervisor_certification",
	"supervisor_certification_comment", "supervisor_comment",
	"created_at", "updated_at", "submitted_at", "responded_at",
}

// itemsJSON marshals an item slice for a JSONB column. A nil slice becomes
// SQL NULL so an absent section stays absent in the stored document.
func itemsJSON(items interface{}) (interface{}, error) {
	switch v := items.(type) {
	case []models.TeachingAssignment:
		if v == nil {
			return nil, nil
		}
	case []models.WorkItem:
		if v == nil {
			return nil, nil
		}
	case []models.StudentResearchItem:
		if v == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("error marshaling items: %w", err)
	}
	return data, nil
}

func unmarshalItems(data []byte, dest interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

func scanWorkload(row pgx.Row) (*models.Workload, error) {
	var w models.Workload
	var teaching, admin, personal, student, community []byte

	err := row.Scan(
		&w.ID,
		&w.StaffMemberID,
		&w.StaffMemberName,
		&w.StaffDepartment,
		&w.SupervisorID,
		&w.AcademicYear,
		&w.Semester,
		&w.Period,
		&teaching,
		&admin,
		&personal,
		&student,
		&community,
		&w.TotalContactHours,
		&w.TotalAdminWorkHours,
		&w.TotalPersonalResearchHours,
		&w.TotalStudentResearchHours,
		&w.TotalCommunityEngagementHours,
		&w.TotalLoggedHours,
		&w.Status,
		&w.StaffCertification,
		&w.SupervisorCertification,
		&w.SupervisorCertificationComment,
		&w.SupervisorComment,
		&w.CreatedAt,
		&w.UpdatedAt,
		&w.SubmittedAt,
		&w.RespondedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalItems(teaching, &w.TeachingAssignments); err != nil {
		return nil, fmt.Errorf("error decoding teaching assignments: %w", err)
	}
	if err := unmarshalItems(admin, &w.AdminWorkItems); err != nil {
		return nil, fmt.Errorf("error decoding admin work items: %w", err)
	}
	if err := unmarshalItems(personal, &w.PersonalResearchItems); err != nil {
		return nil, fmt.Errorf("error decoding personal research items: %w", err)
	}
	if err := unmarshalItems(student, &w.StudentResearchItems); err != nil {
		return nil, fmt.Errorf("error decoding student research items: %w", err)
	}
	if err := unmarshalItems(community, &w.CommunityEngagementItems); err != nil {
		return nil, fmt.Errorf("error decoding community engagement items: %w", err)
	}

	return &w, nil
}

// GetByID retrieves a workload by ID
func (r *workloadRepository) GetByID(ctx context.Context, id int64) (*models.Workload, error) {
	query := squirrel.Select(workloadColumns...).
		From("workloads").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	w, err := scanWorkload(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return w, nil
}

// Create inserts a new workload row and returns the assigned ID
func (r *workloadRepository) Create(ctx context.Context, w *models.Workload) (int64, error) {
	teaching, err := itemsJSON(w.TeachingAssignments)
	if err != nil {
		return 0, err
	}
	admin, err := itemsJSON(w.AdminWorkItems)
	if err != nil {
		return 0, err
	}
	personal, err := itemsJSON(w.PersonalResearchItems)
	if err != nil {
		return 0, err
	}
	student, err := itemsJSON(w.StudentResearchItems)
	if err != nil {
		return 0, err
	}
	community, err := itemsJSON(w.CommunityEngagementItems)
	if err != nil {
		return 0, err
	}

	query := squirrel.Insert("workloads").
		Columns(
			"staff_member_id", "staff_member_name", "staff_department", "supervisor_id",
			"academic_year", "semester", "period",
			"teaching_assignments", "admin_work_items", "personal_research_items",
			"student_research_items", "community_engagement_items",
			"total_contact_hours", "total_admin_work_hours", "total_personal_research_hours",
			"total_student_research_hours", "total_community_engagement_hours", "total_logged_hours",
			"status", "staff_certification", "supervisor_certification",
			"supervisor_certification_comment", "supervisor_comment",
			"created_at", "updated_at", "submitted_at", "responded_at",
		).
		Values(
			w.StaffMemberID, w.StaffMemberName, w.StaffDepartment, w.SupervisorID,
			w.AcademicYear, w.Semester, w.Period,
			teaching, admin, personal, student, community,
			w.TotalContactHours, w.TotalAdminWorkHours, w.TotalPersonalResearchHours,
			w.TotalStudentResearchHours, w.TotalCommunityEngagementHours, w.TotalLoggedHours,
			string(w.Status), w.StaffCertification, w.SupervisorCertification,
			w.SupervisorCertificationComment, w.SupervisorComment,
			w.CreatedAt, w.UpdatedAt, w.SubmittedAt, w.RespondedAt,
		).
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

// UpdateDraft overwrites the editable fields of a workload, conditional on
// the row still being in the expected status. Zero rows affected means
// another transition won the race.
func (r *workloadRepository) UpdateDraft(ctx context.Context, w *models.Workload, expected models.WorkloadStatus) error {
	teaching, err := itemsJSON(w.TeachingAssignments)
	if err != nil {
		return err
	}
	admin, err := itemsJSON(w.AdminWorkItems)
	if err != nil {
		return err
	}
	personal, err := itemsJSON(w.PersonalResearchItems)
	if err != nil {
		return err
	}
	student, err := itemsJSON(w.StudentResearchItems)
	if err != nil {
		return err
	}
	community, err := itemsJSON(w.CommunityEngagementItems)
	if err != nil {
		return err
	}

	query := squirrel.Update("workloads").
		Set("academic_year", w.AcademicYear).
		Set("semester", w.Semester).
		Set("period", w.Period).
		Set("teaching_assignments", teaching).
		Set("admin_work_items", admin).
		Set("personal_research_items", personal).
		Set("student_research_items", student).
		Set("community_engagement_items", community).
		Set("total_contact_hours", w.TotalContactHours).
		Set("total_admin_work_hours", w.TotalAdminWorkHours).
		Set("total_personal_research_hours", w.TotalPersonalResearchHours).
		Set("total_student_research_hours", w.TotalStudentResearchHours).
		Set("total_community_engagement_hours", w.TotalCommunityEngagementHours).
		Set("total_logged_hours", w.TotalLoggedHours).
		Set("staff_certification", w.StaffCertification).
		Set("updated_at", w.UpdatedAt).
		Where("id = ?", w.ID).
		Where("status = ?", string(expected)).
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
		return apperrors.ErrTransitionConflict
	}

	return nil
}

// ApplyTransition persists one lifecycle transition as a single conditional
// row update: status, derived totals, certification fields and timestamps
// move together or not at all. The status guard in the WHERE clause is what
// keeps two concurrent transitions from interleaving.
func (r *workloadRepository) ApplyTransition(ctx context.Context, w *models.Workload, from models.WorkloadStatus) error {
	teaching, err := itemsJSON(w.TeachingAssignments)
	if err != nil {
		return err
	}
	admin, err := itemsJSON(w.AdminWorkItems)
	if err != nil {
		return err
	}
	personal, err := itemsJSON(w.PersonalResearchItems)
	if err != nil {
		return err
	}
	student, err := itemsJSON(w.StudentResearchItems)
	if err != nil {
		return err
	}
	community, err := itemsJSON(w.CommunityEngagementItems)
	if err != nil {
		return err
	}

	query := squirrel.Update("workloads").
		Set("status", string(w.Status)).
		Set("supervisor_id", w.SupervisorID).
		Set("teaching_assignments", teaching).
		Set("admin_work_items", admin).
		Set("personal_research_items", personal).
		Set("student_research_items", student).
		Set("community_engagement_items", community).
		Set("total_contact_hours", w.TotalContactHours).
		Set("total_admin_work_hours", w.TotalAdminWorkHours).
		Set("total_personal_research_hours", w.TotalPersonalResearchHours).
		Set("total_student_research_hours", w.TotalStudentResearchHours).
		Set("total_community_engagement_hours", w.TotalCommunityEngagementHours).
		Set("total_logged_hours", w.TotalLoggedHours).
		Set("staff_certification", w.StaffCertification).
		Set("supervisor_certification", w.SupervisorCertification).
		Set("supervisor_certification_comment", w.SupervisorCertificationComment).
		Set("supervisor_comment", w.SupervisorComment).
		Set("submitted_at", w.SubmittedAt).
		Set("responded_at", w.RespondedAt).
		Set("updated_at", w.UpdatedAt).
		Where("id = ?", w.ID).
		Where("status = ?", string(from)).
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
		return apperrors.ErrTransitionConflict
	}

	return nil
}

func (r *workloadRepository) list(ctx context.Context, base squirrel.SelectBuilder, filter WorkloadFilter) ([]models.Workload, int64, error) {
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.Search != nil {
		base = base.Where("staff_member_name ILIKE ?", "%"+*filter.Search+"%")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	pageQuery := base.Columns(workloadColumns...).
		Column("COUNT(*) OVER()").
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset))

	sql, args, err := pageQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var workloads []models.Workload
	var total int64

	for rows.Next() {
		var w models.Workload
		var teaching, admin, personal, student, community []byte

		err := rows.Scan(
			&w.ID,
			&w.StaffMemberID,
			&w.StaffMemberName,
			&w.StaffDepartment,
			&w.SupervisorID,
			&w.AcademicYear,
			&w.Semester,
			&w.Period,
			&teaching,
			&admin,
			&personal,
			&student,
			&community,
			&w.TotalContactHours,
			&w.TotalAdminWorkHours,
			&w.TotalPersonalResearchHours,
			&w.TotalStudentResearchHours,
			&w.TotalCommunityEngagementHours,
			&w.TotalLoggedHours,
			&w.Status,
			&w.StaffCertification,
			&w.SupervisorCertification,
			&w.SupervisorCertificationComment,
			&w.SupervisorComment,
			&w.CreatedAt,
			&w.UpdatedAt,
			&w.SubmittedAt,
			&w.RespondedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}

		if err := unmarshalItems(teaching, &w.TeachingAssignments); err != nil {
			return nil, 0, fmt.Errorf("error decoding teaching assignments: %w", err)
		}
		if err := unmarshalItems(admin, &w.AdminWorkItems); err != nil {
			return nil, 0, fmt.Errorf("error decoding admin work items: %w", err)
		}
		if err := unmarshalItems(personal, &w.PersonalResearchItems); err != nil {
			return nil, 0, fmt.Errorf("error decoding personal research items: %w", err)
		}
		if err := unmarshalItems(student, &w.StudentResearchItems); err != nil {
			return nil, 0, fmt.Errorf("error decoding student research items: %w", err)
		}
		if err := unmarshalItems(community, &w.CommunityEngagementItems); err != nil {
			return nil, 0, fmt.Errorf("error decoding community engagement items: %w", err)
		}

		workloads = append(workloads, w)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating workload rows: %w", err)
	}

	// The window count only arrives with page rows. A page past the last
	// row returns no rows, so the total needs its own query.
	if len(workloads) == 0 {
		countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("error building SQL: %w", err)
		}
		if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("error executing count query: %w", err)
		}
	}

	return workloads, total, nil
}

// ListByStaff retrieves one staff member's own workloads, newest first
func (r *workloadRepository) ListByStaff(ctx context.Context, staffID int64, filter WorkloadFilter) ([]models.Workload, int64, error) {
	base := squirrel.Select().
		From("workloads").
		Where("staff_member_id = ?", staffID).
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, base, filter)
}

// ListByDepartment retrieves a department's workloads for supervisor review
func (r *workloadRepository) ListByDepartment(ctx context.Context, department string, filter WorkloadFilter) ([]models.Workload, int64, error) {
	base := squirrel.Select().
		From("workloads").
		Where("staff_department = ?", department).
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, base, filter)
}

// ListAll retrieves workloads across departments for admin oversight
func (r *workloadRepository) ListAll(ctx context.Context, department *string, filter WorkloadFilter) ([]models.Workload, int64, error) {
	base := squirrel.Select().
		From("workloads").
		PlaceholderFormat(squirrel.Dollar)

	if department != nil {
		base = base.Where("staff_department = ?", *department)
	}

	return r.list(ctx, base, filter)
}
