package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"hotel-concierge-backend/dao"
	"hotel-concierge-backend/model"
	"hotel-concierge-backend/request"
	"hotel-concierge-backend/response"
	"hotel-concierge-backend/service/lifecycle"
	"hotel-concierge-backend/service/live"

	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return 0, false
	}
	return uint(id), true
}

// applyTransition 走状态机并把结果广播给该酒店的订阅方
func applyTransition(c *gin.Context, hotelID, requestID uint, actor lifecycle.Actor, target model.RequestStatus, responseText string) {
	req, err := lifecycle.Transition(c.Request.Context(), hotelID, requestID, actor, target, responseText)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, lifecycle.ErrResponseRequired):
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
				Msg: err.Error(),
			})
		case errors.Is(err, lifecycle.ErrInvalidTransition):
			c.AbortWithStatusJSON(http.StatusConflict, response.Response{
				Msg: err.Error(),
			})
		default:
			slog.Error(ErrTransitionRequest.Error(),
				"request_id", requestID,
				"target", target,
				"err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Msg: ErrTransitionRequest.Error(),
			})
		}
		return
	}

	live.Default.Broadcast(hotelID, live.Event{
		Type:    live.EventServiceRequest,
		HotelID: hotelID,
		Payload: req,
	})

	c.JSON(http.StatusOK, response.Response{Data: req})
}

// StaffListRequests 员工端按酒店列出全部服务请求
func StaffListRequests(c *gin.Context) {
	hotelID := c.GetUint("hotel_id")

	reqs, err := dao.ListServiceRequestsByHotel(c.Request.Context(), hotelID)
	if err != nil {
		slog.Error(ErrListRequests.Error(), "hotel_id", hotelID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrListRequests.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{Data: reqs})
}

func StaffTransitionRequest(c *gin.Context) {
	requestID, ok := pathID(c)
	if !ok {
		return
	}

	var req request.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	applyTransition(c, c.GetUint("hotel_id"), requestID, lifecycle.ActorStaff,
		model.RequestStatus(req.Status), req.Response)
}

// GuestListRequests 客人只能看到本房间的请求
func GuestListRequests(c *gin.Context) {
	hotelID := c.GetUint("hotel_id")

	roomID, ok := c.Get("room_id")
	if !ok {
		c.JSON(http.StatusOK, response.Response{Data: []model.ServiceRequest{}})
		return
	}

	reqs, err := dao.ListServiceRequestsByRoom(c.Request.Context(), hotelID, roomID.(uint))
	if err != nil {
		slog.Error(ErrListRequests.Error(), "hotel_id", hotelID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrListRequests.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{Data: reqs})
}

// guestOwnsRequest 校验请求属于客人所在房间，不属于时按不存在处理
func guestOwnsRequest(c *gin.Context, requestID uint) bool {
	hotelID := c.GetUint("hotel_id")

	req, err := dao.GetServiceRequest(c.Request.Context(), requestID, hotelID)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return false
	}

	roomID, ok := c.Get("room_id")
	if !ok || req.RoomID == nil || *req.RoomID != roomID.(uint) {
		c.AbortWithStatus(http.StatusNotFound)
		return false
	}
	return true
}

func GuestCancelRequest(c *gin.Context) {
	requestID, ok := pathID(c)
	if !ok {
		return
	}
	if !guestOwnsRequest(c, requestID) {
		return
	}

	applyTransition(c, c.GetUint("hotel_id"), requestID, lifecycle.ActorGuest,
		model.StatusCancelled, "")
}

// GuestRespondToModification 客人接受或拒绝员工提出的变更方案
func GuestRespondToModification(c *gin.Context) {
	requestID, ok := pathID(c)
	if !ok {
		return
	}

	var req request.GuestRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	if !guestOwnsRequest(c, requestID) {
		return
	}

	target := model.StatusInProgress
	if !*req.Accept {
		target = model.StatusRejected
	}
	applyTransition(c, c.GetUint("hotel_id"), requestID, lifecycle.ActorGuest, target, "")
}
