package dto

import "github.com/yourusername/thisorthat-api/internal/domain/entity"

// CreateQuestionRequest — запрос на создание вопроса
type CreateQuestionRequest struct {
	Text        string `json:"text" binding:"required"`
	OptionA     string `json:"option_a" binding:"required"`
	OptionB     string `json:"option_b" binding:"required"`
	InitialVote string `json:"initial_vote" binding:"required"`
}

// VoteRequest — запрос на голосование
type VoteRequest struct {
	Choice string `json:"choice" binding:"required"`
}

// FeedResponse — страница ленты непроголосованных вопросов
type FeedResponse struct {
	Questions  []entity.Question `json:"questions"`
	NextCursor string            `json:"next_cursor,omitempty"`
}
