package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	CreateTx(tx *gorm.DB, question *entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	GetByIDTx(tx *gorm.DB, id uint) (*entity.Question, error)
	// UpdateTallies записывает новые счетчики голосов при условии, что прежние
	// совпадают с прочитанным снимком (optimistic compare-and-swap).
	// Возвращает apperrors.ErrConflict, если счетчики успел изменить другой голос.
	UpdateTallies(tx *gorm.DB, id uint, oldA, oldB, newA, newB int64) error
	// ListUnvoted возвращает вопросы новее-сначала, по которым пользователь еще
	// не голосовал; beforeID > 0 ограничивает выборку вопросами с меньшим ID (keyset-пагинация).
	ListUnvoted(userID uint, beforeID uint, limit int) ([]entity.Question, error)
}
