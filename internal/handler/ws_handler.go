package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	ws "github.com/yourusername/thisorthat-api/internal/websocket"
	"github.com/yourusername/thisorthat-api/pkg/auth"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Происхождение проверяется CORS-слоем HTTP API; тикет — единственный
	// пропуск на соединение
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler устанавливает WebSocket-соединения для живых обновлений счетчиков
type WSHandler struct {
	hub        *ws.Hub
	jwtService *auth.JWTService
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(hub *ws.Hub, jwtService *auth.JWTService) *WSHandler {
	return &WSHandler{
		hub:        hub,
		jwtService: jwtService,
	}
}

// HandleConnection обрабатывает GET /ws?ticket=...
// Тикет одноразовый, выпускается через POST /api/auth/ws-ticket.
func (h *WSHandler) HandleConnection(c *gin.Context) {
	ticket := c.Query("ticket")
	userID, err := h.jwtService.ConsumeWSTicket(ticket)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired ticket"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WSHandler] Ошибка апгрейда соединения пользователя #%d: %v", userID, err)
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}
