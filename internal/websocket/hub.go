package websocket

import (
	"encoding/json"
	"log"
)

// broadcastMsg — сообщение для клиентов, подписанных на вопрос
type broadcastMsg struct {
	questionID uint
	payload    []byte
}

// Hub управляет подключенными клиентами и рассылает им обновления счетчиков.
// Вся работа с набором клиентов идет в одной горутине Run.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, 256),
	}
}

// Run обрабатывает регистрацию клиентов и рассылку сообщений.
// Запускается один раз в отдельной горутине.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("[WSHub] Клиент пользователя #%d подключен (всего: %d)", client.userID, len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("[WSHub] Клиент пользователя #%d отключен (всего: %d)", client.userID, len(h.clients))
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				if !client.Subscribed(msg.questionID) {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					// Клиент не успевает читать — отключаем
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// BroadcastQuestionUpdate рассылает свежие счетчики вопроса подписанным клиентам.
// Реализует service.TallyBroadcaster; не блокирует вызывающую транзакцию.
func (h *Hub) BroadcastQuestionUpdate(questionID uint, votesA, votesB int64) {
	payload, err := json.Marshal(buildQuestionUpdate(questionID, votesA, votesB))
	if err != nil {
		log.Printf("[WSHub] Ошибка сериализации обновления вопроса #%d: %v", questionID, err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{questionID: questionID, payload: payload}:
	default:
		log.Printf("[WSHub] Буфер рассылки переполнен, обновление вопроса #%d пропущено", questionID)
	}
}

// Register ставит клиента в очередь на регистрацию
func (h *Hub) Register(client *Client) {
	h.register <- client
}
