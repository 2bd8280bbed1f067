package controller

import (
	"hotel-concierge-backend/service/live"

	"github.com/gin-gonic/gin"
)

// StaffLive 员工端订阅本酒店服务请求的实时变更
func StaffLive(c *gin.Context) {
	live.Default.ServeWS(c, c.GetUint("hotel_id"))
}
