package model

import (
	"encoding/json"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatSession 房间 PIN 验证成功后创建；过期校验在会话中间件完成，聊天核心不做
type ChatSession struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	SessionID  string    `gorm:"not null;uniqueIndex" json:"session_id"`
	HotelID    uint      `gorm:"not null;index" json:"hotel_id"`
	RoomID     *uint     `json:"room_id"`
	Language   string    `gorm:"not null;default:en" json:"language"`
	VerifiedAt time.Time `json:"verified_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (ChatSession) TableName() string {
	return "chat_session"
}

// Message 建立联合索引 (session_id, created_at)
type Message struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time       `gorm:"index:idx_session_created" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	SessionID       string          `gorm:"not null;index:idx_session_created" json:"session_id"`
	Role            string          `gorm:"not null" json:"role"`
	Content         string          `gorm:"type:text" json:"content"`
	ToolCallResults json.RawMessage `gorm:"type:json" json:"tool_call_results"`
}

func (Message) TableName() string {
	return "chat_message"
}

type ToolCallResult struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}
