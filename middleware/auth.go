package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"hotel-concierge-backend/config"
	"hotel-concierge-backend/dao"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type StaffClaims struct {
	Email   string
	HotelID uint
	Role    string
	jwt.RegisteredClaims
}

// SessionClaims 只承载会话ID，其余会话属性以数据库行为准
type SessionClaims struct {
	SessionID string
	jwt.RegisteredClaims
}

func GenerateStaffToken(email string, hotelID uint, role string) (string, error) {
	claims := StaffClaims{
		Email:   email,
		HotelID: hotelID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Cfg.JWT.SecretKey))
}

func GenerateSessionToken(sessionID string, expiresAt time.Time) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Cfg.JWT.SecretKey))
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func StaffAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			slog.Info("Missing or malformed authorization header")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims := &StaffClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(config.Cfg.JWT.SecretKey), nil
		})
		if err != nil || !token.Valid {
			slog.Info("Invalid staff token", "err", err)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set("staff_email", claims.Email)
		c.Set("staff_role", claims.Role)
		c.Set("hotel_id", claims.HotelID)
		c.Next()
	}
}

// SessionMiddleware 校验客人会话凭证并加载会话行。
// 会话不存在、已过期或与酒店不匹配时一律 401，不泄露任何区别
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(config.Cfg.JWT.SecretKey), nil
		})
		if err != nil || !token.Valid {
			slog.Info("Invalid session token", "err", err)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		session, err := dao.GetChatSession(claims.SessionID)
		if err != nil || time.Now().After(session.ExpiresAt) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set("session_id", session.SessionID)
		c.Set("hotel_id", session.HotelID)
		c.Set("guest_language", session.Language)
		if session.RoomID != nil {
			c.Set("room_id", *session.RoomID)
		}
		c.Next()
	}
}
