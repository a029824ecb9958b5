package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitialScore — стартовый счет нового пользователя.
// Ровно хватает на создание одного вопроса.
const InitialScore = 3

// User представляет пользователя в системе
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email    string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`

	Score         int64 `gorm:"not null;default:3;index:idx_users_leaderboard" json:"score"`
	VotesCast     int64 `gorm:"not null;default:0" json:"votes_cast"`
	VotesWon      int64 `gorm:"not null;default:0" json:"votes_won"`
	CurrentStreak int   `gorm:"not null;default:0" json:"current_streak"`
	BestStreak    int   `gorm:"not null;default:0" json:"best_streak"`

	QuestionsCreated      int64      `gorm:"not null;default:0" json:"questions_created"`
	QuestionsCreatedToday int        `gorm:"not null;default:0" json:"questions_created_today"`
	LastQuestionDate      *time.Time `gorm:"type:date" json:"last_question_date,omitempty"`
	LastActive            *time.Time `gorm:"type:timestamp" json:"last_active,omitempty"`

	Role string `gorm:"size:20;not null;default:'user'" json:"-"` // "user" или "admin"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	// Хешируем пароль только если он не пустой и еще не захеширован
	// (bcrypt-хеши начинаются с "$2a$", "$2b$" или "$2y$")
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// ApplyVoteOutcome применяет итог голосования к счетчикам пользователя.
// Серия побед обнуляется при любом проигрыше; best_streak — бегущий максимум
// и никогда не уменьшается.
func (u *User) ApplyVoteOutcome(won bool, now time.Time) {
	u.VotesCast++
	if won {
		u.VotesWon++
		u.Score++
		u.CurrentStreak++
	} else {
		u.CurrentStreak = 0
	}
	if u.CurrentStreak > u.BestStreak {
		u.BestStreak = u.CurrentStreak
	}
	t := now
	u.LastActive = &t
}

// QuestionsToday возвращает счетчик созданных за сутки вопросов с учетом сброса:
// если последний вопрос создавался не сегодня (по ISO-дате в UTC), счетчик равен 0.
func (u *User) QuestionsToday(now time.Time) int {
	if u.LastQuestionDate == nil || isoDate(*u.LastQuestionDate) != isoDate(now) {
		return 0
	}
	return u.QuestionsCreatedToday
}

// IsAdmin возвращает true для администраторов
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// isoDate нормализует время до календарной даты, не зависящей от локали
func isoDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
