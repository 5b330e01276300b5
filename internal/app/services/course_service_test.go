package services

import (
	"context"
	"errors"
	"testing"

	"github.com/selim/acadload/internal/app/models"
	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/pkg/apperrors"
)

func setupTestCourseService() (CourseService, *mockCourseRepo) {
	courseRepo := newMockCourseRepo()
	return NewCourseService(courseRepo), courseRepo
}

func TestCourseCreate_NormalizesCode(t *testing.T) {
	svc, _ := setupTestCourseService()

	course, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Code:       "  cos301 ",
		Name:       "Software Engineering",
		Department: "Computer Science",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if course.Code != "COS301" {
		t.Errorf("code = %q, want COS301", course.Code)
	}
}

func TestCourseCreate_DuplicateCode(t *testing.T) {
	svc, courseRepo := setupTestCourseService()
	courseRepo.add(models.Course{Code: "COS301", Name: "Software Engineering"})

	_, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		Code: "cos301",
		Name: "Software Engineering II",
	})
	if !errors.Is(err, apperrors.ErrCourseAlreadyExists) {
		t.Errorf("got %v, want ErrCourseAlreadyExists", err)
	}
}

func TestCourseUpdate_Rename(t *testing.T) {
	svc, courseRepo := setupTestCourseService()
	course := courseRepo.add(models.Course{Code: "COS301", Name: "Software Engineering"})

	updated, err := svc.Update(context.Background(), course.ID, &dto.UpdateCourseRequest{
		Code: "COS301",
		Name: "Software Engineering and Design",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Software Engineering and Design" {
		t.Errorf("name = %q", updated.Name)
	}
}

func TestCourseUpdate_CodeCollision(t *testing.T) {
	svc, courseRepo := setupTestCourseService()
	courseRepo.add(models.Course{Code: "COS301", Name: "Software Engineering"})
	other := courseRepo.add(models.Course{Code: "COS332", Name: "Networks"})

	_, err := svc.Update(context.Background(), other.ID, &dto.UpdateCourseRequest{
		Code: "cos301",
		Name: "Networks",
	})
	if !errors.Is(err, apperrors.ErrCourseAlreadyExists) {
		t.Errorf("got %v, want ErrCourseAlreadyExists", err)
	}
}

func TestCourseDelete_RefusedWhileReferenced(t *testing.T) {
	svc, courseRepo := setupTestCourseService()
	course := courseRepo.add(models.Course{Code: "COS301", Name: "Software Engineering"})
	courseRepo.referenced[course.ID] = true

	err := svc.Delete(context.Background(), course.ID)
	if !errors.Is(err, apperrors.ErrCourseInUse) {
		t.Errorf("got %v, want ErrCourseInUse", err)
	}

	if stored, _ := courseRepo.GetByID(context.Background(), course.ID); stored == nil {
		t.Error("course should still exist")
	}
}

func TestCourseDelete_Unreferenced(t *testing.T) {
	svc, courseRepo := setupTestCourseService()
	course := courseRepo.add(models.Course{Code: "COS301", Name: "Software Engineering"})

	if err := svc.Delete(context.Background(), course.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if stored, _ := courseRepo.GetByID(context.Background(), course.ID); stored != nil {
		t.Error("course should be gone")
	}
}

func TestCourseGetByID_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	_, err := svc.GetByID(context.Background(), 404)
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("got %v, want ErrCourseNotFound", err)
	}
}
