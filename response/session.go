package response

import (
	"encoding/json"
	"time"
)

type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	Language  string    `json:"language"`
	ExpiresAt time.Time `json:"expires_at"`
}

type StaffAuthResponse struct {
	Email   string `json:"email"`
	HotelID uint   `json:"hotel_id"`
	Role    string `json:"role"`
	Token   string `json:"token"`
}

type MessageResponse struct {
	CreatedAt       time.Time       `json:"created_at"`
	Role            string          `json:"role"`
	Content         string          `json:"content"`
	ToolCallResults json.RawMessage `json:"tool_call_results"`
}

type GetSessionMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}
