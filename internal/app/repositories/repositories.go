package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances. Services depend on the
// interfaces so tests can substitute in-memory fakes.
type Repositories struct {
	StaffRepository           StaffRepository
	CourseRepository          CourseRepository
	ResearchStudentRepository ResearchStudentRepository
	WorkloadRepository        WorkloadRepository
	TokenRepository           TokenRepository
}

// NewRepositories initializes all repositories over one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StaffRepository:           NewStaffRepository(db),
		CourseRepository:          NewCourseRepository(db),
		ResearchStudentRepository: NewResearchStudentRepository(db),
		WorkloadRepository:        NewWorkloadRepository(db),
		TokenRepository:           NewTokenRepository(db),
	}
}
