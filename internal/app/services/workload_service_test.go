package services

import (
	"context"
	"errors"
	"testing"

	"github.com/selim/acadload/internal/app/auth"
	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/pkg/apperrors"
)

var (
	staffPrincipal = auth.Principal{
		ID: 1, Name: "Jane Doe", Role: models.RoleAcademicStaff, Department: "Computer Science",
	}
	otherStaffPrincipal = auth.Principal{
		ID: 2, Name: "John Smith", Role: models.RoleAcademicStaff, Department: "Computer Science",
	}
	supervisorPrincipal = auth.Principal{
		ID: 10, Name: "Sam Dean", Role: models.RoleSupervisor, Department: "Computer Science",
	}
	foreignSupervisorPrincipal = auth.Principal{
		ID: 11, Name: "Pat Lee", Role: models.RoleSupervisor, Department: "Mathematics",
	}
	adminPrincipal = auth.Principal{
		ID: 99, Name: "Root", Role: models.RoleAdmin,
	}
)

func setupTestWorkloadService() (WorkloadService, *mockWorkloadRepo, *mockStaffRepo, *mockCourseRepo) {
	workloadRepo := newMockWorkloadRepo()
	staffRepo := newMockStaffRepo()
	courseRepo := newMockCourseRepo()
	return NewWorkloadService(workloadRepo, staffRepo, courseRepo), workloadRepo, staffRepo, courseRepo
}

func seedSupervisor(staffRepo *mockStaffRepo, id int64, department string) {
	staffRepo.add(models.StaffMember{
		ID:         id,
		Email:      "supervisor@university.ac.za",
		Name:       "Sam Dean",
		Role:       models.RoleSupervisor,
		Department: department,
		IsActive:   true,
	})
}

// seedDraft stores a valid draft for staffPrincipal carrying totalHours of
// admin work, certified and ready for submission when the hours allow it.
func seedDraft(workloadRepo *mockWorkloadRepo, totalHours float64) *models.Workload {
	return workloadRepo.add(models.Workload{
		StaffMemberID:      staffPrincipal.ID,
		StaffMemberName:    staffPrincipal.Name,
		StaffDepartment:    staffPrincipal.Department,
		AcademicYear:       "2024-2025",
		Semester:           "Semester 1",
		AdminWorkItems:     []models.WorkItem{{Details: "Curriculum committee", Hours: totalHours}},
		StaffCertification: true,
		Status:             models.StatusDraft,
	})
}

func validSaveRequest() *dto.SaveWorkloadRequest {
	return &dto.SaveWorkloadRequest{
		AcademicYear:       "2024-2025",
		Semester:           "Semester 1",
		AdminWorkItems:     []dto.WorkItemInput{{Details: "Curriculum committee", Hours: 40}},
		StaffCertification: true,
	}
}

func TestCreateDraft_Success(t *testing.T) {
	svc, workloadRepo, _, courseRepo := setupTestWorkloadService()
	course := courseRepo.add(models.Course{Code: "COS301", Name: "Software Engineering", Department: "Computer Science"})

	req := validSaveRequest()
	req.TeachingAssignments = []dto.TeachingAssignmentInput{{
		CourseID:          course.ID,
		SemesterForCourse: "Semester 1",
		ContactType:       "Lecture",
		ContactHours:      60,
	}}

	w, err := svc.CreateDraft(context.Background(), staffPrincipal, req)
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	if w.ID == 0 {
		t.Error("expected a persisted ID")
	}
	if w.Status != models.StatusDraft {
		t.Errorf("status = %s, want Draft", w.Status)
	}
	if w.StaffMemberID != staffPrincipal.ID || w.StaffDepartment != staffPrincipal.Department {
		t.Error("workload not stamped with the caller's identity")
	}
	if got := w.TeachingAssignments[0]; got.CourseCode != "COS301" || got.CourseName != "Software Engineering" {
		t.Errorf("teaching assignment not resolved from catalog: %+v", got)
	}
	if w.TotalLoggedHours != 100 {
		t.Errorf("TotalLoggedHours = %v, want 100", w.TotalLoggedHours)
	}

	stored, _ := workloadRepo.GetByID(context.Background(), w.ID)
	if stored == nil {
		t.Fatal("workload not persisted")
	}
}

func TestCreateDraft_OnlyStaff(t *testing.T) {
	svc, _, _, _ := setupTestWorkloadService()

	for _, p := range []auth.Principal{supervisorPrincipal, adminPrincipal} {
		_, err := svc.CreateDraft(context.Background(), p, validSaveRequest())
		if !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("%s: got %v, want ErrPermissionDenied", p.Role, err)
		}
	}
}

func TestCreateDraft_UnknownCourse(t *testing.T) {
	svc, _, _, _ := setupTestWorkloadService()

	req := validSaveRequest()
	req.TeachingAssignments = []dto.TeachingAssignmentInput{{CourseID: 404, ContactHours: 10}}

	_, err := svc.CreateDraft(context.Background(), staffPrincipal, req)
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("got %v, want ErrCourseNotFound", err)
	}
}

func TestCreateDraft_InvalidEntries(t *testing.T) {
	svc, _, _, _ := setupTestWorkloadService()

	req := validSaveRequest()
	req.AcademicYear = "2024"
	req.AdminWorkItems = []dto.WorkItemInput{{Details: "", Hours: -3}}

	_, err := svc.CreateDraft(context.Background(), staffPrincipal, req)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("got %v, want ErrValidationFailed", err)
	}

	var custom *apperrors.CustomError
	if !errors.As(err, &custom) || custom.Details == nil {
		t.Error("expected field errors attached as details")
	}
}

func TestUpdateDraft_Success(t *testing.T) {
	svc, workloadRepo, _, _ := setupTestWorkloadService()
	draft := seedDraft(workloadRepo, 40)

	req := validSaveRequest()
	req.AdminWorkItems = []dto.WorkItemInput{{Details: "Exam moderation", Hours: 25}}

	w, err := svc.UpdateDraft(context.Background(), staffPrincipal, draft.ID, req)
	if err != nil {
		t.Fatalf("UpdateDraft failed: %v", err)
	}
	if w.TotalAdminWorkHours != 25 {
		t.Errorf("TotalAdminWorkHours = %v, want 25", w.TotalAdminWorkHours)
	}

	stored, _ := workloadRepo.GetByID(context.Background(), draft.ID)
	if stored.AdminWorkItems[0].Details != "Exam moderation" {
		t.Error("update not persisted")
	}
}

func TestUpdateDraft_NotOwner(t *testing.T) {
	svc, workloadRepo, _, _ := setupTestWorkloadService()
	draft := seedDraft(workloadRepo, 40)

	_, err := svc.UpdateDraft(context.Background(), otherStaffPrincipal, draft.ID, validSaveRequest())
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("got %v, want ErrPermissionDenied", err)
	}
}

func TestUpdateDraft_LockedWhileSubmitted(t *testing.T) {
	svc, workloadRepo, _, _ := setupTestWorkloadService()
	draft := seedDraft(workloadRepo, 200)
	draft.Status = models.StatusSubmitted
	workloadRepo.add(*draft)

	_, err := svc.UpdateDraft(context.Background(), staffPrincipal, draft.ID, validSaveRequest())
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("got %v, want ErrPermissionDenied", err)
	}
}

func TestUpdateDraft_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestWorkloadService()

	_, err := svc.UpdateDraft(context.Background(), staffPrincipal, 404, validSaveRequest())
	if !errors.Is(err, apperrors.ErrWorkloadNotFound) {
		t.Errorf("got %v, want ErrWorkloadNotFound", err)
	}
}

func TestSubmit_Success(t *testing.T) {
	svc, workloadRepo, staffRepo, _ := setupTestWorkloadService()
	seedSupervisor(staffRepo, 10, "Computer Science")
	draft := seedDraft(workloadRepo, 200)

	w, err := svc.Submit(context.Background(), staffPrincipal, draft.ID)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if w.Status != models.StatusSubmitted {
		t.Errorf("status = %s, want Submitted", w.Status)
	}
	if w.SupervisorID == nil || *w.SupervisorID != 10 {
		t.Errorf("SupervisorID = %v, want 10", w.SupervisorID)
	}
	if w.SubmittedAt == nil {
		t.Error("SubmittedAt not set")
	}

	stored, _ := workloadRepo.GetByID(context.Background(), draft.ID)
	if stored.Status != models.StatusSubmitted {
		t.Errorf("persisted status = %s, want Submitted", stored.Status)
	}
}

func TestSubmit_HoursTooLow(t *testing.T) {
	svc, workloadRepo, staffRepo, _ := setupTestWorkloadService()
	seedSupervisor(staffRepo, 10, "Computer Science")
	draft := seedDraft(workloadRepo, 50)

	_, err := svc.Submit(context.Background(), staffPrincipal, draft.ID)
	if !errors.Is(err, apperrors.ErrHoursOutOfRange) {
		t.Fatalf("got %v, want ErrHoursOutOfRange", err)
	}

	stored, _ := workloadRepo.GetByID(context.Background(), draft.ID)
	if stored.Status != models.StatusDraft {
		t.Errorf("persisted status = %s, want Draft after failed submit", stored.Status)
	}
}

func TestSubmit_NoSupervisorConfigured(t *testing.T) {
	svc, workloadRepo, _, _ := setupTestWorkloadService()
	draft := seedDraft(workloadRepo, 200)

	_, err := svc.Submit(context.Background(), staffPrincipal, draft.ID)
	if !errors.Is(err, apperrors.ErrSupervisorNotFound) {
		t.Errorf("got %v, want ErrSupervisorNotFound", err)
	}
}

func TestSubmit_AmbiguousSupervisor(t *testing.T) {
	svc, workloadRepo, staffRepo, _ := setupTestWorkloadService()
	seedSupervisor(staffRepo, 10, "Computer Science")
	seedSupervisor(staffRepo, 11, "Computer Science")
	draft := seedDraft(workloadRepo, 200)

	_, err := svc.Submit(context.Background(), staffPrincipal, draft.ID)
	if !errors.Is(err, apperrors.ErrAmbiguousSupervisor) {
		t.Errorf("got %v, want ErrAmbiguousSupervisor", err)
	}
}

func TestSubmit_MissingDepartment(t *testing.T) {
	svc, workloadRepo, staffRepo, _ := setupTestWorkloadService()
	seedSupervisor(staffRepo, 10, "Computer Science")

	noDept := staffPrincipal
	noDept.Department = ""
	draft := seedDraft(workloadRepo, 200)
	draft.StaffDepartment = ""
	workloadRepo.add(*draft)

	_, err := svc.Submit(context.Background(), noDept, draft.ID)
	if !errors.Is(err, apperrors.ErrMissingDepartment) {
		t.Errorf("got %v, want ErrMissingDepartment", err)
	}
}

func submittedWorkload(t *testing.T, svc WorkloadService, workloadRepo *mockWorkloadRepo, staffRepo *mockStaffRepo) *models.Workload {
	t.Helper()
	seedSupervisor(staffRepo, 10, "Computer Science")
	draft := seedDraft(workloadRepo, 200)
	w, err := svc.Submit(context.Background(), staffPrincipal, draft.ID)
	if err != nil {
		t.Fatalf("seeding submitted workload: %v", err)
	}
	return w
}

func TestApprove_Success(t *testing.T) {
	svc, workloadRepo, staffRepo, _ := setupTestWorkloadService()
	w := submittedWorkload(t, svc, workloadRepo, staffRepo)

	approved, err := svc.Approve(context.Background(), supervisorPrincipal, w.ID,
		&dto.ApproveWorkloadRequest{SupervisorCertification: true, Comment: "Verified"})
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	if approved.Status != models.StatusApproved {
		t.Errorf("status = %s, want Approved", approved.Status)
	}
	if !approved.SupervisorCertification || approved.SupervisorCertificationComment != "Verified" {
		t.Error("certification fields not recorded")
	}
	if approved.RespondedAt == nil {
		t.Error("RespondedAt not set")
	}
}

func TestApprove_WrongDepartment(t *testing.T) {
	svc, workloadRepo, staffRepo, _ := setupTestWorkloadService()
	w := submittedWorkload(t, svc, workloadRepo, staffRepo)

	_, err := svc.Approve(context.Background(), foreignSupervisorPrincipal, w.ID,
		&dto.ApproveWorkloadRequest{SupervisorCertification: true})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("got %v, want ErrPermissionDenied", err)
	}
}

func TestApprove_StaffCannot(t *testing.T) {
	svc, workloadRepo, staffRepo, _ := setupTestWorkloadService()
	w := submittedWorkload(t, svc, workloadRepo, staffRepo)

	_, err := svc.Approve(context.Background(), staffPrincipal, w.ID,
		&dto.ApproveWorkloadRequest{SupervisorCertification: true})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("got %v, want ErrPermissionDenied", err)
	}
}

func TestRequestAmendment_Success(t *testing.T) {
	svc, workloadRepo, staffRepo, _ := setupTestWorkloadService()
	w := submittedWorkload(t, svc, workloadRepo, staffRepo)

	returned, err := svc.RequestAmendment(context.Background(), supervisorPrincipal, w.ID,
		&dto.RequestAmendmentRequest{Comment: "Teaching hours look understated"})
	if err != nil {
		t.Fatalf("RequestAmendment failed: %v", err)
	}

	if returned.Status != models.StatusRequiresAmendment {
		t.Errorf("status = %s, want RequiresAmendment", returned.Status)
	}
	if returned.SupervisorComment != "Teaching hours look understated" {
		t.Errorf("SupervisorComment = %q", returned.SupervisorComment)
	}
}

func TestRequestAmendment_CommentRequired(t *testing.T) {
	svc, workloadRepo, staffRepo, _ := setupTestWorkloadService()
	w := submittedWorkload(t, svc, workloadRepo, staffRepo)

	_, err := svc.RequestAmendment(context.Background(), supervisorPrincipal, w.ID,
		&dto.RequestAmendmentRequest{Comment: "   "})
	if !errors.Is(err, apperrors.ErrCommentRequired) {
		t.Errorf("got %v, want ErrCommentRequired", err)
	}
}

func TestResubmit_AfterAmendment(t *testing.T) {
	svc, workloadRepo, staffRepo, _ := setupTestWorkloadService()
	w := submittedWorkload(t, svc, workloadRepo, staffRepo)

	if _, err := svc.RequestAmendment(context.Background(), supervisorPrincipal, w.ID,
		&dto.RequestAmendmentRequest{Comment: "Please revisit"}); err != nil {
		t.Fatalf("RequestAmendment failed: %v", err)
	}

	resubmitted, err := svc.Submit(context.Background(), staffPrincipal, w.ID)
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}

	if resubmitted.Status != models.StatusSubmitted {
		t.Errorf("status = %s, want Submitted", resubmitted.Status)
	}
	if resubmitted.SupervisorComment != "" {
		t.Error("previous amendment feedback should be cleared on resubmission")
	}
	if resubmitted.RespondedAt != nil {
		t.Error("RespondedAt should be cleared on resubmission")
	}
}

func TestGetByID_Visibility(t *testing.T) {
	svc, workloadRepo, staffRepo, _ := setupTestWorkloadService()
	w := submittedWorkload(t, svc, workloadRepo, staffRepo)

	if _, err := svc.GetByID(context.Background(), staffPrincipal, w.ID); err != nil {
		t.Errorf("owner should see own workload: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), supervisorPrincipal, w.ID); err != nil {
		t.Errorf("department supervisor should see workload: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), adminPrincipal, w.ID); err != nil {
		t.Errorf("admin should see workload: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), otherStaffPrincipal, w.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("other staff: got %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.GetByID(context.Background(), foreignSupervisorPrincipal, w.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("foreign supervisor: got %v, want ErrPermissionDenied", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestWorkloadService()

	_, err := svc.GetByID(context.Background(), adminPrincipal, 404)
	if !errors.Is(err, apperrors.ErrWorkloadNotFound) {
		t.Errorf("got %v, want ErrWorkloadNotFound", err)
	}
}

func TestList_RoleDispatch(t *testing.T) {
	svc, workloadRepo, _, _ := setupTestWorkloadService()

	workloadRepo.add(models.Workload{StaffMemberID: 1, StaffDepartment: "Computer Science", Status: models.StatusDraft})
	workloadRepo.add(models.Workload{StaffMemberID: 2, StaffDepartment: "Computer Science", Status: models.StatusSubmitted})
	workloadRepo.add(models.Workload{StaffMemberID: 3, StaffDepartment: "Mathematics", Status: models.StatusSubmitted})

	filter := &dto.WorkloadFilterRequest{Page: 1, PageSize: 20}

	cases := []struct {
		name string
		p    auth.Principal
		want int
	}{
		{"staff sees own", staffPrincipal, 1},
		{"supervisor sees department", supervisorPrincipal, 2},
		{"admin sees all", adminPrincipal, 3},
	}

	for _, tc := range cases {
		resp, err := svc.List(context.Background(), tc.p, filter)
		if err != nil {
			t.Fatalf("%s: List failed: %v", tc.name, err)
		}
		if len(resp.Workloads) != tc.want {
			t.Errorf("%s: got %d workloads, want %d", tc.name, len(resp.Workloads), tc.want)
		}
		if resp.PaginationInfo.TotalItems != int64(tc.want) {
			t.Errorf("%s: TotalItems = %d, want %d", tc.name, resp.PaginationInfo.TotalItems, tc.want)
		}
	}
}

func TestList_AdminDepartmentFilter(t *testing.T) {
	svc, workloadRepo, _, _ := setupTestWorkloadService()

	workloadRepo.add(models.Workload{StaffMemberID: 1, StaffDepartment: "Computer Science", Status: models.StatusDraft})
	workloadRepo.add(models.Workload{StaffMemberID: 3, StaffDepartment: "Mathematics", Status: models.StatusSubmitted})

	resp, err := svc.List(context.Background(), adminPrincipal,
		&dto.WorkloadFilterRequest{Department: "Mathematics", Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(resp.Workloads) != 1 || resp.Workloads[0].StaffDepartment != "Mathematics" {
		t.Errorf("unexpected result: %+v", resp.Workloads)
	}
}

func TestList_StatusFilter(t *testing.T) {
	svc, workloadRepo, _, _ := setupTestWorkloadService()

	workloadRepo.add(models.Workload{StaffMemberID: 1, StaffDepartment: "Computer Science", Status: models.StatusDraft})
	workloadRepo.add(models.Workload{StaffMemberID: 1, StaffDepartment: "Computer Science", Status: models.StatusApproved})

	resp, err := svc.List(context.Background(), staffPrincipal,
		&dto.WorkloadFilterRequest{Status: "Approved", Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(resp.Workloads) != 1 || resp.Workloads[0].Status != models.StatusApproved {
		t.Errorf("unexpected result: %+v", resp.Workloads)
	}
}

func TestList_PageBeyondRange(t *testing.T) {
	svc, workloadRepo, _, _ := setupTestWorkloadService()

	workloadRepo.add(models.Workload{StaffMemberID: 1, StaffDepartment: "Computer Science", Status: models.StatusDraft})
	workloadRepo.add(models.Workload{StaffMemberID: 1, StaffDepartment: "Computer Science", Status: models.StatusApproved})

	resp, err := svc.List(context.Background(), staffPrincipal,
		&dto.WorkloadFilterRequest{Page: 5, PageSize: 20})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(resp.Workloads) != 0 {
		t.Errorf("got %d workloads on a page past the end, want none", len(resp.Workloads))
	}
	if resp.PaginationInfo.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", resp.PaginationInfo.TotalItems)
	}
}
