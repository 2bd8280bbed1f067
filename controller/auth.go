package controller

import (
	"log/slog"
	"net/http"
	"time"

	"hotel-concierge-backend/config"
	"hotel-concierge-backend/dao"
	"hotel-concierge-backend/middleware"
	"hotel-concierge-backend/model"
	"hotel-concierge-backend/request"
	"hotel-concierge-backend/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GuestVerify 房间号 + 4 位 PIN 换取会话凭证。
// 房间不存在和 PIN 错误返回同样的 401，不泄露房间是否存在
func GuestVerify(c *gin.Context) {
	var req request.GuestVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	room, err := dao.GetRoomByID(req.RoomID)
	if err != nil {
		slog.Info("Room verification failed", "room_id", req.RoomID)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(room.PINHash), []byte(req.PIN)); err != nil {
		slog.Info("Room verification failed", "room_id", req.RoomID)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	hotel, err := dao.GetHotelByID(room.HotelID)
	if err != nil {
		slog.Error(ErrVerifyRoom.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrVerifyRoom.Error(),
		})
		return
	}

	language := req.Language
	if language == "" {
		language = hotel.DefaultLanguage
	}

	now := time.Now()
	session := model.ChatSession{
		SessionID:  uuid.New().String(),
		HotelID:    room.HotelID,
		RoomID:     &room.ID,
		Language:   language,
		VerifiedAt: now,
		ExpiresAt:  now.Add(time.Duration(config.Cfg.Session.ValidityHours) * time.Hour),
	}
	if err := dao.CreateChatSession(&session); err != nil {
		slog.Error(ErrVerifyRoom.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrVerifyRoom.Error(),
		})
		return
	}

	token, err := middleware.GenerateSessionToken(session.SessionID, session.ExpiresAt)
	if err != nil {
		slog.Error(ErrVerifyRoom.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrVerifyRoom.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response.Response{
		Data: response.SessionResponse{
			SessionID: session.SessionID,
			Token:     token,
			Language:  session.Language,
			ExpiresAt: session.ExpiresAt,
		},
	})
}

func StaffLogin(c *gin.Context) {
	var req request.StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	staff, err := dao.GetStaffByEmail(req.Email)
	if err != nil {
		slog.Info("Staff login failed", "email", req.Email)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		slog.Info("Staff login failed", "email", req.Email)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	token, err := middleware.GenerateStaffToken(staff.Email, staff.HotelID, staff.Role)
	if err != nil {
		slog.Error(ErrStaffLogin.Error(), "email", staff.Email, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrStaffLogin.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: response.StaffAuthResponse{
			Email:   staff.Email,
			HotelID: staff.HotelID,
			Role:    staff.Role,
			Token:   token,
		},
	})
}
