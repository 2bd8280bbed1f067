package dao

import (
	"hotel-concierge-backend/model"
)

func CreateChatSession(session *model.ChatSession) error {
	return DB.Create(session).Error
}

func GetChatSession(sessionID string) (*model.ChatSession, error) {
	var session model.ChatSession
	if err := DB.Where("session_id = ?", sessionID).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func GetMessagesBySessionID(sessionID string) ([]model.Message, error) {
	var messages []model.Message
	if err := DB.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
