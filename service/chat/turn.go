package chat

import (
	"context"
	"fmt"
	"log/slog"

	"hotel-concierge-backend/dao"
)

// TurnContext 一轮对话的已验证会话范围，由调用方从会话凭证解出
type TurnContext struct {
	ExecContext
	RoomNumber string
}

// SendChatTurn 跑完一轮对话：取历史、建 prompt、开流、重组、落库。
// 流中途失败时已累积的助手文本仍然落库，客人不会丢掉看过的半截回复
func SendChatTurn(ctx context.Context, tc TurnContext, query string, cb TurnCallbacks) error {
	hotel, err := dao.GetHotelByID(tc.HotelID)
	if err != nil {
		return fmt.Errorf("failed to load hotel: %v", err)
	}

	serviceNames, err := dao.GetActiveServiceTypeNames(tc.HotelID, tc.Language)
	if err != nil {
		return fmt.Errorf("failed to load service types: %v", err)
	}
	if len(serviceNames) == 0 && tc.Language != hotel.DefaultLanguage {
		serviceNames, err = dao.GetActiveServiceTypeNames(tc.HotelID, hotel.DefaultLanguage)
		if err != nil {
			return fmt.Errorf("failed to load service types: %v", err)
		}
	}

	system := BuildSystemPrompt(hotel, tc.Language, tc.RoomNumber, serviceNames)

	history := NewChatMessageHistory(tc.SessionID)
	prior, err := history.Messages(ctx)
	if err != nil {
		return fmt.Errorf("failed to load chat history: %v", err)
	}
	if err := history.AddUserMessage(ctx, query); err != nil {
		return fmt.Errorf("failed to persist user message: %v", err)
	}

	stream, err := NewTransport().OpenStream(ctx, system, prior, query)
	if err != nil {
		return err
	}
	defer stream.Close()

	reassembler := NewReassembler(tc.ExecContext, cb)
	consumeErr := reassembler.Consume(ctx, stream)

	if text := reassembler.AssistantText(); text != "" {
		if err := history.AddAIMessage(ctx, text); err != nil {
			slog.Error("Failed to persist assistant message",
				"session_id", tc.SessionID,
				"err", err)
		} else if results := reassembler.ToolCallResults(); len(results) > 0 {
			if err := history.SetToolCallResults(ctx, results); err != nil {
				slog.Error("Failed to persist tool call results",
					"session_id", tc.SessionID,
					"err", err)
			}
		}
	}

	return consumeErr
}
