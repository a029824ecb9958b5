package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	apperrors "github.com/yourusername/thisorthat-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// CreateTx создает вопрос внутри транзакции
func (r *QuestionRepo) CreateTx(tx *gorm.DB, question *entity.Question) error {
	return tx.Create(question).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	return r.getByID(r.db, id)
}

// GetByIDTx возвращает вопрос по ID внутри транзакции
func (r *QuestionRepo) GetByIDTx(tx *gorm.DB, id uint) (*entity.Question, error) {
	return r.getByID(tx, id)
}

func (r *QuestionRepo) getByID(db *gorm.DB, id uint) (*entity.Question, error) {
	var question entity.Question
	err := db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// UpdateTallies записывает новые счетчики при совпадении прежних со снимком.
// RowsAffected == 0 означает, что другой голос успел изменить счетчики —
// транзакция должна быть повторена с нового снимка.
func (r *QuestionRepo) UpdateTallies(tx *gorm.DB, id uint, oldA, oldB, newA, newB int64) error {
	res := tx.Model(&entity.Question{}).
		Where("id = ? AND votes_a = ? AND votes_b = ?", id, oldA, oldB).
		Updates(map[string]interface{}{"votes_a": newA, "votes_b": newB})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// ListUnvoted возвращает вопросы без голоса пользователя, новее-сначала.
// ID автоинкрементный, поэтому keyset-пагинация идет по нему же.
func (r *QuestionRepo) ListUnvoted(userID uint, beforeID uint, limit int) ([]entity.Question, error) {
	var questions []entity.Question
	q := r.db.Model(&entity.Question{}).
		Where("NOT EXISTS (SELECT 1 FROM votes v WHERE v.question_id = questions.id AND v.user_id = ?)", userID)
	if beforeID > 0 {
		q = q.Where("questions.id < ?", beforeID)
	}
	err := q.Order("questions.id DESC").Limit(limit).Find(&questions).Error
	return questions, err
}
