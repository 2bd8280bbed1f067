package chat

import (
	"context"
	"encoding/json"

	"hotel-concierge-backend/dao"
	"hotel-concierge-backend/model"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"gorm.io/gorm"
)

const historyLimit = 200

// ChatMessageHistory 基于 GORM 的会话记录。协议是每轮无状态的：
// 每次请求都把既往完整对话重新发给模型
type ChatMessageHistory struct {
	DB      *gorm.DB
	Session string
	Limit   int

	// 本轮对话的助手消息ID
	AssistantMessageID uint

	// 本轮对话的用户消息ID
	UserMessageID uint
}

var _ schema.ChatMessageHistory = &ChatMessageHistory{}

func NewChatMessageHistory(session string) *ChatMessageHistory {
	return &ChatMessageHistory{
		DB:      dao.DB,
		Session: session,
		Limit:   historyLimit,
	}
}

func (h *ChatMessageHistory) Messages(ctx context.Context) ([]llms.ChatMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var messages []struct {
		Content string
		Role    string
	}

	result := h.DB.WithContext(ctx).
		Model(&model.Message{}).
		Select("content, role").
		Where("session_id = ?", h.Session).
		Order("created_at ASC").
		Limit(h.Limit).
		Find(&messages)

	if result.Error != nil {
		return nil, result.Error
	}

	var msgs []llms.ChatMessage
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleAssistant:
			msgs = append(msgs, llms.AIChatMessage{Content: msg.Content})
		case model.RoleUser:
			msgs = append(msgs, llms.HumanChatMessage{Content: msg.Content})
		}
	}

	return msgs, nil
}

func (h *ChatMessageHistory) AddMessage(ctx context.Context, message llms.ChatMessage) error {
	switch message.GetType() {
	case llms.ChatMessageTypeAI:
		return h.AddAIMessage(ctx, message.GetContent())
	default:
		return h.AddUserMessage(ctx, message.GetContent())
	}
}

func (h *ChatMessageHistory) AddAIMessage(ctx context.Context, text string) error {
	return h.addMessage(ctx, text, model.RoleAssistant)
}

func (h *ChatMessageHistory) AddUserMessage(ctx context.Context, text string) error {
	return h.addMessage(ctx, text, model.RoleUser)
}

func (h *ChatMessageHistory) addMessage(ctx context.Context, text, role string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	msg := model.Message{
		SessionID: h.Session,
		Role:      role,
		Content:   text,
	}

	result := h.DB.WithContext(ctx).Create(&msg)
	if result.Error != nil {
		return result.Error
	}

	switch role {
	case model.RoleAssistant:
		h.AssistantMessageID = msg.ID
	case model.RoleUser:
		h.UserMessageID = msg.ID
	}

	return nil
}

func (h *ChatMessageHistory) Clear(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	result := h.DB.WithContext(ctx).
		Where("session_id = ?", h.Session).
		Delete(&model.Message{})

	return result.Error
}

func (h *ChatMessageHistory) SetMessages(ctx context.Context, messages []llms.ChatMessage) error {
	if ctx == nil {
		ctx = context.Background()
	}

	return h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Where("session_id = ?", h.Session).
			Delete(&model.Message{}).Error; err != nil {
			return err
		}

		var values []model.Message
		for _, msg := range messages {
			role := model.RoleUser
			if msg.GetType() == llms.ChatMessageTypeAI {
				role = model.RoleAssistant
			}
			values = append(values, model.Message{
				SessionID: h.Session,
				Role:      role,
				Content:   msg.GetContent(),
			})
		}

		if len(values) > 0 {
			if err := tx.WithContext(ctx).
				CreateInBatches(values, 100).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// SetToolCallResults 把本轮工具调用结果挂到助手消息上
func (h *ChatMessageHistory) SetToolCallResults(ctx context.Context, toolCallResults []model.ToolCallResult) error {
	if ctx == nil {
		ctx = context.Background()
	}

	toolCallResultsJSON, err := json.Marshal(toolCallResults)
	if err != nil {
		return err
	}

	result := h.DB.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ?", h.AssistantMessageID).
		Update("tool_call_results", toolCallResultsJSON)

	return result.Error
}
