package dto

// ── 主题模块 DTO ──

// CreateTopicRequest 创建主题请求
// order 缺省时追加到课程末尾（max(order)+1，空课程为 1）
type CreateTopicRequest struct {
	Title     string `json:"title"`
	Course    string `json:"course"`
	Order     *int   `json:"order"`
	Completed *bool  `json:"completed"`
}

// UpdateTopicRequest 更新主题请求（单条）
type UpdateTopicRequest struct {
	ID        string  `json:"id"`
	Title     *string `json:"title"`
	Course    *string `json:"course"`
	Order     *int    `json:"order"`
	Completed *bool   `json:"completed"`
}

// PutTopicRequest PUT /api/topics 请求体
// updates 非空时为批量更新，否则按单条更新处理
type PutTopicRequest struct {
	UpdateTopicRequest
	Updates []UpdateTopicRequest `json:"updates"`
}

// PatchTopicRequest PATCH /api/topics 请求体（判别式）
// 二选一：带 completed 为完成状态切换；带 order 为拖拽重排序
type PatchTopicRequest struct {
	ID        string  `json:"id"`
	Completed *bool   `json:"completed"`
	Order     *int    `json:"order"`
	Course    *string `json:"course"`
}

// BatchUpdateResponse 批量更新响应
type BatchUpdateResponse struct {
	Success bool            `json:"success"`
	Results []TopicResponse `json:"results"`
}

// TopicExpand 主题展开的关联记录
type TopicExpand struct {
	Course *CourseResponse `json:"course,omitempty"`
}

// TopicResponse 主题信息响应
type TopicResponse struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Course    string       `json:"course"`
	Order     int          `json:"order"`
	Completed bool         `json:"completed"`
	Created   string       `json:"created"`
	Updated   string       `json:"updated"`
	Expand    *TopicExpand `json:"expand,omitempty"`
}

// [自证通过] internal/dto/topic.go
