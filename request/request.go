package request

import "encoding/json"

type GuestVerifyRequest struct {
	RoomID   uint   `json:"room_id" binding:"required"`
	PIN      string `json:"pin" binding:"required,len=4"`
	Language string `json:"language"`
}

type StaffLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChatRequest struct {
	Query string `json:"query" binding:"required"`
}

// ExecuteToolRequest UI 直接触发的工具调用，行为与聊天流内完全一致
type ExecuteToolRequest struct {
	Name      string          `json:"name" binding:"required"`
	Arguments json.RawMessage `json:"arguments" binding:"required"`
}

type TransitionRequest struct {
	Status   string `json:"status" binding:"required"`
	Response string `json:"response"`
}

// GuestRespondRequest 客人对 modified 提议的答复
type GuestRespondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

type ItineraryItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}
