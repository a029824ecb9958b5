package websocket

import "github.com/yourusername/thisorthat-api/internal/domain/entity"

// Типы событий, рассылаемых клиентам
const (
	// EventQuestionUpdate — обновление счетчиков вопроса после успешного голоса
	EventQuestionUpdate = "question:update"
)

// Типы команд от клиентов
const (
	CommandSubscribe   = "subscribe"
	CommandUnsubscribe = "unsubscribe"
)

// Event — исходящее сообщение клиенту
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// QuestionUpdateData — полезная нагрузка события question:update
type QuestionUpdateData struct {
	QuestionID  uint  `json:"question_id"`
	VotesA      int64 `json:"votes_a"`
	VotesB      int64 `json:"votes_b"`
	PercentageA int   `json:"percentage_a"`
	PercentageB int   `json:"percentage_b"`
}

// clientCommand — входящее сообщение от клиента
type clientCommand struct {
	Type       string `json:"type"`
	QuestionID uint   `json:"question_id"`
}

// buildQuestionUpdate собирает событие обновления счетчиков
func buildQuestionUpdate(questionID uint, votesA, votesB int64) Event {
	pa, pb := entity.Percentages(votesA, votesB)
	return Event{
		Type: EventQuestionUpdate,
		Data: QuestionUpdateData{
			QuestionID:  questionID,
			VotesA:      votesA,
			VotesB:      votesB,
			PercentageA: pa,
			PercentageB: pb,
		},
	}
}
