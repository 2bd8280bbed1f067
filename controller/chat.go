package controller

import (
	"context"
	"log/slog"
	"net/http"

	"hotel-concierge-backend/dao"
	"hotel-concierge-backend/request"
	"hotel-concierge-backend/response"
	"hotel-concierge-backend/service/chat"
	"hotel-concierge-backend/utils"

	"github.com/gin-gonic/gin"
)

// sessionScope 从中间件注入的上下文取出会话范围
func sessionScope(c *gin.Context) chat.ExecContext {
	ec := chat.ExecContext{
		SessionID: c.GetString("session_id"),
		HotelID:   c.GetUint("hotel_id"),
		Language:  c.GetString("guest_language"),
	}
	if roomID, ok := c.Get("room_id"); ok {
		id := roomID.(uint)
		ec.RoomID = &id
	}
	return ec
}

// Chat 处理一轮对话，通过 SSE 把助手文本和工具结果增量推给客人
func Chat(c *gin.Context) {
	utils.SetSSEHeaders(c)

	var req request.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		utils.SendSSEMessage(c, utils.EventError, ErrParseRequest.Error())
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// 监听客户端的取消信号；中止后已累积的回复仍会落库
	go func() {
		<-c.Done()
		cancel()
	}()

	tc := chat.TurnContext{ExecContext: sessionScope(c)}
	if tc.RoomID != nil {
		if room, err := dao.GetRoomByID(*tc.RoomID); err == nil {
			tc.RoomNumber = room.Number
		}
	}

	cb := chat.TurnCallbacks{
		OnAssistantText: func(text string) {
			utils.SendSSEMessage(c, utils.EventAssistantText, text)
		},
		OnToolResult: func(result chat.Result) {
			utils.SendSSEMessage(c, utils.EventToolCallResult, result)
		},
	}

	if err := chat.SendChatTurn(ctx, tc, req.Query, cb); err != nil {
		slog.Error(ErrChatTurn.Error(),
			"session_id", tc.SessionID,
			"err", err)
		utils.SendSSEMessage(c, utils.EventError, ErrChatTurn.Error())
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}

	utils.SendSSEMessage(c, utils.EventDone, "")
}

// GetSessionMessages 返回当前会话的全部历史消息，按时间升序
func GetSessionMessages(c *gin.Context) {
	sessionID := c.GetString("session_id")

	messages, err := dao.GetMessagesBySessionID(sessionID)
	if err != nil {
		slog.Error(ErrGetSessionMessages.Error(),
			"session_id", sessionID,
			"err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetSessionMessages.Error(),
		})
		return
	}

	resp := response.GetSessionMessagesResponse{
		Messages: make([]response.MessageResponse, 0, len(messages)),
	}
	for _, msg := range messages {
		resp.Messages = append(resp.Messages, response.MessageResponse{
			CreatedAt:       msg.CreatedAt,
			Role:            msg.Role,
			Content:         msg.Content,
			ToolCallResults: msg.ToolCallResults,
		})
	}

	c.JSON(http.StatusOK, response.Response{Data: resp})
}
