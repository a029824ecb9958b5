package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	// GetByIDTx читает пользователя внутри переданной транзакции
	GetByIDTx(tx *gorm.DB, id uint) (*entity.User, error)
	// UpdateStatsTx записывает игровые счетчики пользователя при условии, что
	// прежние совпадают с прочитанным снимком (optimistic compare-and-swap,
	// симметрично UpdateTallies у вопросов). Каждая мутация пользователя
	// инкрементирует votes_cast либо questions_created, поэтому пары этих
	// счетчиков достаточно, чтобы заметить любую конкурентную запись.
	// Возвращает apperrors.ErrConflict при проигрыше гонки.
	UpdateStatsTx(tx *gorm.DB, user *entity.User, oldVotesCast, oldQuestionsCreated int64) error
	// GetLeaderboard возвращает топ пользователей по счету (score DESC, id ASC)
	GetLeaderboard(limit int) ([]entity.User, error)
	// CountWithScoreAbove возвращает количество пользователей со строго большим счетом
	CountWithScoreAbove(score int64) (int64, error)
}
