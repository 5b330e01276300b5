package services

import (
	"context"
	"strings"
	"time"

	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/app/repositories"
	"github.com/selim/acadload/internal/pkg/apperrors"
)

// In-memory repository doubles for service tests. Each one keeps rows in a
// map and mirrors the store's contract: nil result for a missing row, and a
// conflict error when a guarded update finds the row in another status.

type mockStaffRepo struct {
	staff  map[int64]*models.StaffMember
	nextID int64
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{staff: make(map[int64]*models.StaffMember), nextID: 1}
}

func (m *mockStaffRepo) add(s models.StaffMember) *models.StaffMember {
	if s.ID == 0 {
		s.ID = m.nextID
		m.nextID++
	} else if s.ID >= m.nextID {
		m.nextID = s.ID + 1
	}
	m.staff[s.ID] = &s
	return &s
}

func (m *mockStaffRepo) GetByID(_ context.Context, id int64) (*models.StaffMember, error) {
	s, ok := m.staff[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *mockStaffRepo) GetByEmail(_ context.Context, email string) (*models.StaffMember, error) {
	for _, s := range m.staff {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStaffRepo) List(_ context.Context, department, role *string) ([]models.StaffMember, error) {
	var out []models.StaffMember
	for _, s := range m.staff {
		if department != nil && s.Department != *department {
			continue
		}
		if role != nil && string(s.Role) != *role {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockStaffRepo) Create(_ context.Context, staff *models.StaffMember) (int64, error) {
	created := m.add(*staff)
	return created.ID, nil
}

func (m *mockStaffRepo) Update(_ context.Context, staff *models.StaffMember) error {
	if _, ok := m.staff[staff.ID]; !ok {
		return apperrors.ErrStaffNotFound
	}
	cp := *staff
	m.staff[staff.ID] = &cp
	return nil
}

func (m *mockStaffRepo) Deactivate(_ context.Context, id int64) error {
	s, ok := m.staff[id]
	if !ok {
		return apperrors.ErrStaffNotFound
	}
	s.IsActive = false
	return nil
}

func (m *mockStaffRepo) RecordLogin(_ context.Context, id int64, at time.Time) error {
	s, ok := m.staff[id]
	if !ok {
		return apperrors.ErrStaffNotFound
	}
	s.LastLoginAt = &at
	return nil
}

func (m *mockStaffRepo) FindSupervisorsByDepartment(_ context.Context, department string) ([]models.StaffMember, error) {
	var out []models.StaffMember
	for _, s := range m.staff {
		if s.Role == models.RoleSupervisor && s.Department == department && s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

type mockWorkloadRepo struct {
	workloads map[int64]*models.Workload
	nextID    int64
}

func newMockWorkloadRepo() *mockWorkloadRepo {
	return &mockWorkloadRepo{workloads: make(map[int64]*models.Workload), nextID: 1}
}

func (m *mockWorkloadRepo) add(w models.Workload) *models.Workload {
	if w.ID == 0 {
		w.ID = m.nextID
		m.nextID++
	} else if w.ID >= m.nextID {
		m.nextID = w.ID + 1
	}
	m.workloads[w.ID] = &w
	return &w
}

func (m *mockWorkloadRepo) GetByID(_ context.Context, id int64) (*models.Workload, error) {
	w, ok := m.workloads[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (m *mockWorkloadRepo) Create(_ context.Context, w *models.Workload) (int64, error) {
	created := m.add(*w)
	return created.ID, nil
}

func (m *mockWorkloadRepo) UpdateDraft(_ context.Context, w *models.Workload, expected models.WorkloadStatus) error {
	stored, ok := m.workloads[w.ID]
	if !ok || stored.Status != expected {
		return apperrors.ErrTransitionConflict
	}
	cp := *w
	m.workloads[w.ID] = &cp
	return nil
}

func (m *mockWorkloadRepo) ApplyTransition(_ context.Context, w *models.Workload, from models.WorkloadStatus) error {
	stored, ok := m.workloads[w.ID]
	if !ok || stored.Status != from {
		return apperrors.ErrTransitionConflict
	}
	cp := *w
	m.workloads[w.ID] = &cp
	return nil
}

func (m *mockWorkloadRepo) list(filter repositories.WorkloadFilter, keep func(*models.Workload) bool) ([]models.Workload, int64, error) {
	var out []models.Workload
	for _, w := range m.workloads {
		if !keep(w) {
			continue
		}
		if filter.Status != nil && string(w.Status) != *filter.Status {
			continue
		}
		if filter.Search != nil && !strings.Contains(strings.ToLower(w.StaffMemberName), strings.ToLower(*filter.Search)) {
			continue
		}
		out = append(out, *w)
	}

	// Same contract as the real repository: the total counts every match,
	// even when the requested page is past the last row.
	total := int64(len(out))
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(out) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (m *mockWorkloadRepo) ListByStaff(_ context.Context, staffID int64, filter repositories.WorkloadFilter) ([]models.Workload, int64, error) {
	return m.list(filter, func(w *models.Workload) bool { return w.StaffMemberID == staffID })
}

func (m *mockWorkloadRepo) ListByDepartment(_ context.Context, department string, filter repositories.WorkloadFilter) ([]models.Workload, int64, error) {
	return m.list(filter, func(w *models.Workload) bool { return w.StaffDepartment == department })
}

func (m *mockWorkloadRepo) ListAll(_ context.Context, department *string, filter repositories.WorkloadFilter) ([]models.Workload, int64, error) {
	return m.list(filter, func(w *models.Workload) bool {
		return department == nil || w.StaffDepartment == *department
	})
}

type mockCourseRepo struct {
	courses    map[int64]*models.Course
	referenced map[int64]bool
	nextID     int64
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{
		courses:    make(map[int64]*models.Course),
		referenced: make(map[int64]bool),
		nextID:     1,
	}
}

func (m *mockCourseRepo) add(c models.Course) *models.Course {
	if c.ID == 0 {
		c.ID = m.nextID
		m.nextID++
	} else if c.ID >= m.nextID {
		m.nextID = c.ID + 1
	}
	m.courses[c.ID] = &c
	return &c
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*models.Course, error) {
	for _, c := range m.courses {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockCourseRepo) List(_ context.Context) ([]models.Course, error) {
	var out []models.Course
	for _, c := range m.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCourseRepo) Create(_ context.Context, course *models.Course) (int64, error) {
	created := m.add(*course)
	return created.ID, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := m.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	cp := *course
	m.courses[course.ID] = &cp
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) ReferencedByWorkloads(_ context.Context, id int64) (bool, error) {
	return m.referenced[id], nil
}

type mockTokenRepo struct {
	tokens map[string]repositories.RefreshToken
	nextID int64
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: make(map[string]repositories.RefreshToken), nextID: 1}
}

func (m *mockTokenRepo) Save(_ context.Context, staffID int64, token string, expiresAt time.Time) error {
	m.tokens[token] = repositories.RefreshToken{
		ID:        m.nextID,
		StaffID:   staffID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	m.nextID++
	return nil
}

func (m *mockTokenRepo) Get(_ context.Context, token string) (*repositories.RefreshToken, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *mockTokenRepo) Delete(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

func (m *mockTokenRepo) DeleteForStaff(_ context.Context, staffID int64) error {
	for token, t := range m.tokens {
		if t.StaffID == staffID {
			delete(m.tokens, token)
		}
	}
	return nil
}

type mockResearchStudentRepo struct {
	students map[int64]*models.ResearchStudent
	// supervisorDept stands in for the join against the staff table that
	// the SQL ListByDepartment query performs.
	supervisorDept map[int64]string
	nextID         int64
}

func newMockResearchStudentRepo() *mockResearchStudentRepo {
	return &mockResearchStudentRepo{
		students:       make(map[int64]*models.ResearchStudent),
		supervisorDept: make(map[int64]string),
		nextID:         1,
	}
}

func (m *mockResearchStudentRepo) add(s models.ResearchStudent) *models.ResearchStudent {
	if s.ID == 0 {
		s.ID = m.nextID
		m.nextID++
	} else if s.ID >= m.nextID {
		m.nextID = s.ID + 1
	}
	m.students[s.ID] = &s
	return &s
}

func (m *mockResearchStudentRepo) GetByID(_ context.Context, id int64) (*models.ResearchStudent, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *mockResearchStudentRepo) ListBySupervisor(_ context.Context, supervisorID int64) ([]models.ResearchStudent, error) {
	var out []models.ResearchStudent
	for _, s := range m.students {
		if s.SupervisorID == supervisorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockResearchStudentRepo) ListByDepartment(_ context.Context, department string) ([]models.ResearchStudent, error) {
	var out []models.ResearchStudent
	for _, s := range m.students {
		if m.supervisorDept[s.SupervisorID] == department {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockResearchStudentRepo) ListAll(_ context.Context) ([]models.ResearchStudent, error) {
	var out []models.ResearchStudent
	for _, s := range m.students {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockResearchStudentRepo) Create(_ context.Context, student *models.ResearchStudent) (int64, error) {
	created := m.add(*student)
	return created.ID, nil
}

func (m *mockResearchStudentRepo) Update(_ context.Context, student *models.ResearchStudent) error {
	if _, ok := m.students[student.ID]; !ok {
		return apperrors.ErrResearchStudentNotFound
	}
	cp := *student
	m.students[student.ID] = &cp
	return nil
}

func (m *mockResearchStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.students[id]; !ok {
		return apperrors.ErrResearchStudentNotFound
	}
	delete(m.students, id)
	return nil
}
