package controller

import (
	"log/slog"
	"net/http"

	"hotel-concierge-backend/request"
	"hotel-concierge-backend/response"
	"hotel-concierge-backend/service/chat"

	"github.com/gin-gonic/gin"
)

// ExecuteTool UI 直接触发的工具调用，与聊天流内的执行路径共用同一个执行器。
// 参数不是合法 JSON 报 400，业务性失败（未知工具、缺字段）体现在结果体里
func ExecuteTool(c *gin.Context) {
	var req request.ExecuteToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	inv, err := chat.ParseInvocation(0, "", req.Name, req.Arguments)
	if err != nil {
		slog.Error(ErrExecuteTool.Error(), "tool", req.Name, "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	result := chat.ExecuteTool(c.Request.Context(), inv, sessionScope(c))
	c.JSON(http.StatusOK, response.Response{Data: result})
}
