package models

import (
	"time"
)

// AIType AI能力类型
const (
	AITypeText  int8 = 0 // 文本对话
	AITypeImage int8 = 1 // 作画
)

// Status 消息生命周期状态
const (
	StatusThinking int8 = 0 // 已建档，等待AI结果
	StatusAnswered int8 = 1 // AI已回答
)

// Message 对话记录（一条 = 一个用户的一次提问及其AI回答）
// (from_user, request) 为去重键：同一用户重复发同一句话不会触发第二次AI调用，
// 唯一索引同时兜住并发下 查找-再插入 的竞态（插入冲突按“回答中”处理）。
// 注意不能用软删除：被软删的行仍会占住唯一键，导致清空记录后无法再问同一问题。
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FromUser  string    `json:"from_user" gorm:"size:64;not null;uniqueIndex:ux_from_user_request,priority:1"`
	Request   string    `json:"request" gorm:"size:600;not null;uniqueIndex:ux_from_user_request,priority:2"`
	Response  string    `json:"response" gorm:"type:text"`
	AIType    int8      `json:"ai_type" gorm:"not null;default:0;index"`
	Status    int8      `json:"status" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`
}

// TableName 设置表名
func (Message) TableName() string {
	return "messages"
}
