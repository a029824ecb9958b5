package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	apperrors "github.com/yourusername/thisorthat-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	err := r.db.Create(user).Error
	if err != nil && isDuplicateKey(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	return r.getByID(r.db, id)
}

// GetByIDTx возвращает пользователя по ID внутри транзакции
func (r *UserRepo) GetByIDTx(tx *gorm.DB, id uint) (*entity.User, error) {
	return r.getByID(tx, id)
}

func (r *UserRepo) getByID(db *gorm.DB, id uint) (*entity.User, error) {
	var user entity.User
	err := db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername возвращает пользователя по имени пользователя
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateStatsTx записывает игровые счетчики при совпадении прежних со снимком.
// RowsAffected == 0 означает, что пользователя успела изменить другая
// транзакция (параллельный голос или создание вопроса) — вызывающая
// транзакция должна быть повторена с нового снимка.
func (r *UserRepo) UpdateStatsTx(tx *gorm.DB, user *entity.User, oldVotesCast, oldQuestionsCreated int64) error {
	res := tx.Model(&entity.User{}).
		Where("id = ? AND votes_cast = ? AND questions_created = ?", user.ID, oldVotesCast, oldQuestionsCreated).
		Updates(map[string]interface{}{
			"score":                   user.Score,
			"votes_cast":              user.VotesCast,
			"votes_won":               user.VotesWon,
			"current_streak":          user.CurrentStreak,
			"best_streak":             user.BestStreak,
			"questions_created":       user.QuestionsCreated,
			"questions_created_today": user.QuestionsCreatedToday,
			"last_question_date":      user.LastQuestionDate,
			"last_active":             user.LastActive,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// GetLeaderboard возвращает топ пользователей по счету.
// Сортируем по score DESC, затем ID ASC для стабильности при равных счетах.
func (r *UserRepo) GetLeaderboard(limit int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.
		Order("score DESC, id ASC").
		Limit(limit).
		Select("id", "username", "score", "votes_cast", "votes_won", "current_streak", "best_streak").
		Find(&users).Error
	return users, err
}

// CountWithScoreAbove возвращает количество пользователей со строго большим счетом.
// Используется для вычисления ранга (1-indexed): rank = count + 1.
func (r *UserRepo) CountWithScoreAbove(score int64) (int64, error) {
	var count int64
	err := r.db.Model(&entity.User{}).Where("score > ?", score).Count(&count).Error
	return count, err
}
