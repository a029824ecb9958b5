package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client — одно WebSocket-соединение аутентифицированного пользователя.
// Клиент подписывается на вопросы и получает их обновления.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint

	mu            sync.RWMutex
	subscriptions map[uint]bool
}

// NewClient создает клиента для установленного соединения
func NewClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, 64),
		userID:        userID,
		subscriptions: make(map[uint]bool),
	}
}

// Subscribed сообщает, подписан ли клиент на вопрос
func (c *Client) Subscribed(questionID uint) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subscriptions[questionID]
}

// handleCommand применяет команду подписки/отписки от клиента
func (c *Client) handleCommand(raw []byte) {
	var cmd clientCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		log.Printf("[WSClient] Некорректная команда от пользователя #%d: %v", c.userID, err)
		return
	}
	if cmd.QuestionID == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch cmd.Type {
	case CommandSubscribe:
		c.subscriptions[cmd.QuestionID] = true
	case CommandUnsubscribe:
		delete(c.subscriptions, cmd.QuestionID)
	}
}

// ReadPump читает команды клиента до закрытия соединения
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WSClient] Соединение пользователя #%d закрыто с ошибкой: %v", c.userID, err)
			}
			return
		}
		c.handleCommand(message)
	}
}

// WritePump отправляет клиенту сообщения из канала send и пинги
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
