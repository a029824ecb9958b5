package entity

import (
	"time"
)

// Vote — запись о голосе пользователя по вопросу.
// Составной первичный ключ (user_id, question_id) гарантирует не более одного
// голоса на пару пользователь/вопрос на уровне хранилища. Запись неизменяема:
// итог won фиксируется в момент создания.
type Vote struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	QuestionID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"question_id"`
	Choice     Choice    `gorm:"size:1;not null" json:"choice"`
	Won        bool      `gorm:"not null" json:"won"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Vote) TableName() string {
	return "votes"
}
