package chat

import (
	"context"
	"encoding/json"
	"testing"

	"hotel-concierge-backend/dao"
	"hotel-concierge-backend/model"

	"github.com/tmc/langchaingo/llms"
)

func TestChatHistoryRoundTrip(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	h := NewChatMessageHistory("sess-1")
	if err := h.AddUserMessage(ctx, "hi"); err != nil {
		t.Fatal(err)
	}
	if err := h.AddAIMessage(ctx, "hello, how can I help?"); err != nil {
		t.Fatal(err)
	}
	if err := h.AddUserMessage(ctx, "extra towels please"); err != nil {
		t.Fatal(err)
	}

	// 其他会话的消息不得串进来
	other := NewChatMessageHistory("sess-2")
	if err := other.AddUserMessage(ctx, "unrelated"); err != nil {
		t.Fatal(err)
	}

	msgs, err := h.Messages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].GetType() != llms.ChatMessageTypeHuman || msgs[0].GetContent() != "hi" {
		t.Fatalf("first message wrong: %+v", msgs[0])
	}
	if msgs[1].GetType() != llms.ChatMessageTypeAI {
		t.Fatalf("second message must be assistant: %+v", msgs[1])
	}
	if msgs[2].GetContent() != "extra towels please" {
		t.Fatalf("order wrong: %+v", msgs[2])
	}
}

func TestChatHistorySetToolCallResults(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	h := NewChatMessageHistory("sess-1")
	if err := h.AddAIMessage(ctx, "done!"); err != nil {
		t.Fatal(err)
	}

	results := []model.ToolCallResult{
		{Name: ToolCreateServiceRequest, Success: true, Message: "Request sent."},
	}
	if err := h.SetToolCallResults(ctx, results); err != nil {
		t.Fatal(err)
	}

	var msg model.Message
	if err := dao.DB.First(&msg, h.AssistantMessageID).Error; err != nil {
		t.Fatal(err)
	}

	var stored []model.ToolCallResult
	if err := json.Unmarshal(msg.ToolCallResults, &stored); err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].Name != ToolCreateServiceRequest || !stored[0].Success {
		t.Fatalf("stored results wrong: %+v", stored)
	}
}

func TestChatHistoryClear(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	h := NewChatMessageHistory("sess-1")
	if err := h.AddUserMessage(ctx, "hi"); err != nil {
		t.Fatal(err)
	}
	if err := h.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	msgs, err := h.Messages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(msgs))
	}
}
