package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/contest-api/internal/websocket"
	"github.com/yourusername/contest-api/pkg/auth"
)

// WSHandler обрабатывает WebSocket соединения для доставки уведомлений
type WSHandler struct {
	hub        *websocket.Hub
	jwtService *auth.JWTService
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(hub *websocket.Hub, jwtService *auth.JWTService) *WSHandler {
	return &WSHandler{
		hub:        hub,
		jwtService: jwtService,
	}
}

// HandleConnection апгрейдит HTTP соединение до WebSocket.
// Браузерный WebSocket API не умеет выставлять заголовки,
// поэтому токен передается query-параметром.
func (h *WSHandler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	claims, err := h.jwtService.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	websocket.ServeWS(h.hub, c.Writer, c.Request, claims.UserID)
}
