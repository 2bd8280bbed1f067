package controller

import (
	"log/slog"
	"net/http"
	"strings"

	"hotel-concierge-backend/dao"
	"hotel-concierge-backend/model"
	"hotel-concierge-backend/request"
	"hotel-concierge-backend/response"
	"hotel-concierge-backend/service/chat"

	"github.com/gin-gonic/gin"
)

func CreateItineraryItem(c *gin.Context) {
	var req request.ItineraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	ec := sessionScope(c)
	item := model.ItineraryItem{
		SessionID:   ec.SessionID,
		HotelID:     ec.HotelID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		Category:    model.NormalizeCategory(req.Category),
		StartTime:   chat.ParseItineraryTime(req.StartTime),
		EndTime:     chat.ParseItineraryTime(req.EndTime),
	}
	if err := dao.CreateItineraryItem(c.Request.Context(), &item); err != nil {
		slog.Error(ErrCreateItineraryItem.Error(),
			"session_id", ec.SessionID,
			"err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateItineraryItem.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response.Response{Data: item})
}

func ListItineraryItems(c *gin.Context) {
	sessionID := c.GetString("session_id")

	items, err := dao.ListItineraryItems(c.Request.Context(), sessionID)
	if err != nil {
		slog.Error(ErrListItineraryItems.Error(),
			"session_id", sessionID,
			"err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrListItineraryItems.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{Data: items})
}

func UpdateItineraryItem(c *gin.Context) {
	itemID, ok := pathID(c)
	if !ok {
		return
	}

	var req request.ItineraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	sessionID := c.GetString("session_id")
	item, err := dao.GetItineraryItem(c.Request.Context(), itemID, sessionID)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	item.Title = strings.TrimSpace(req.Title)
	item.Description = strings.TrimSpace(req.Description)
	item.Location = strings.TrimSpace(req.Location)
	item.Category = model.NormalizeCategory(req.Category)
	item.StartTime = chat.ParseItineraryTime(req.StartTime)
	item.EndTime = chat.ParseItineraryTime(req.EndTime)

	if err := dao.UpdateItineraryItem(c.Request.Context(), item); err != nil {
		slog.Error(ErrUpdateItineraryItem.Error(),
			"session_id", sessionID,
			"item_id", itemID,
			"err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrUpdateItineraryItem.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{Data: item})
}

func DeleteItineraryItem(c *gin.Context) {
	itemID, ok := pathID(c)
	if !ok {
		return
	}

	sessionID := c.GetString("session_id")
	if _, err := dao.GetItineraryItem(c.Request.Context(), itemID, sessionID); err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	if err := dao.DeleteItineraryItem(c.Request.Context(), itemID, sessionID); err != nil {
		slog.Error(ErrDeleteItineraryItem.Error(),
			"session_id", sessionID,
			"item_id", itemID,
			"err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteItineraryItem.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}
