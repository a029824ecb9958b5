package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	"github.com/yourusername/thisorthat-api/internal/domain/repository"
	apperrors "github.com/yourusername/thisorthat-api/internal/pkg/errors"
)

// VoteRepo реализует repository.VoteRepository
type VoteRepo struct {
	db *gorm.DB
}

// NewVoteRepo создает новый репозиторий голосов
func NewVoteRepo(db *gorm.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// CreateTx создает запись о голосе внутри транзакции.
// Составной первичный ключ (user_id, question_id) — страховка от гонки двух
// одновременных голосов одного пользователя: ровно один Create проходит,
// второй получает ErrAlreadyVoted.
func (r *VoteRepo) CreateTx(tx *gorm.DB, vote *entity.Vote) error {
	err := tx.Create(vote).Error
	if err != nil && isDuplicateKey(err) {
		return apperrors.ErrAlreadyVoted
	}
	return err
}

// GetTx возвращает голос пользователя по вопросу внутри транзакции
func (r *VoteRepo) GetTx(tx *gorm.DB, userID, questionID uint) (*entity.Vote, error) {
	var vote entity.Vote
	err := tx.Where("user_id = ? AND question_id = ?", userID, questionID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &vote, nil
}

// ListByUser возвращает историю голосов пользователя новее-сначала вместе с вопросами
func (r *VoteRepo) ListByUser(userID uint, limit int) ([]repository.VoteWithQuestion, error) {
	var votes []entity.Vote
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	if len(votes) == 0 {
		return []repository.VoteWithQuestion{}, nil
	}

	ids := make([]uint, 0, len(votes))
	for _, v := range votes {
		ids = append(ids, v.QuestionID)
	}

	var questions []entity.Question
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]entity.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	history := make([]repository.VoteWithQuestion, 0, len(votes))
	for _, v := range votes {
		q, ok := byID[v.QuestionID]
		if !ok {
			// Вопросы не удаляются; пропуск возможен только при ручном вмешательстве в БД
			continue
		}
		history = append(history, repository.VoteWithQuestion{Vote: v, Question: q})
	}
	return history, nil
}
