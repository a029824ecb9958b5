package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
)

// VoteWithQuestion — пара (голос, вопрос) для истории голосований
type VoteWithQuestion struct {
	Vote     entity.Vote     `json:"vote"`
	Question entity.Question `json:"question"`
}

// VoteRepository определяет методы для работы с записями о голосах
type VoteRepository interface {
	// CreateTx создает запись о голосе внутри транзакции.
	// Нарушение составного ключа (user_id, question_id) транслируется в apperrors.ErrAlreadyVoted.
	CreateTx(tx *gorm.DB, vote *entity.Vote) error
	// GetTx читает голос внутри транзакции; apperrors.ErrNotFound, если голоса нет
	GetTx(tx *gorm.DB, userID, questionID uint) (*entity.Vote, error)
	// ListByUser возвращает историю голосов пользователя новее-сначала вместе с вопросами
	ListByUser(userID uint, limit int) ([]VoteWithQuestion, error)
}
