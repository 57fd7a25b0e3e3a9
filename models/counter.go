package models

import "time"

// Counter 计数器（微信云托管模板的 /api/count 接口使用，单行）
type Counter struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Count     int64     `json:"count" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Counter) TableName() string {
	return "counters"
}
