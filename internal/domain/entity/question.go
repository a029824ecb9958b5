package entity

import (
	"math"
	"time"
)

// Choice — выбранная сторона бинарного вопроса
type Choice string

const (
	ChoiceA Choice = "a"
	ChoiceB Choice = "b"
)

// Valid проверяет, является ли значение допустимой стороной
func (c Choice) Valid() bool {
	return c == ChoiceA || c == ChoiceB
}

// Other возвращает противоположную сторону
func (c Choice) Other() Choice {
	if c == ChoiceA {
		return ChoiceB
	}
	return ChoiceA
}

// Question представляет бинарный вопрос ("это или то").
// Текст и варианты неизменяемы после создания; счетчики голосов только растут,
// каждый инкремент соответствует ровно одной записи Vote.
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	OptionA   string    `gorm:"size:100;not null" json:"option_a"`
	OptionB   string    `gorm:"size:100;not null" json:"option_b"`
	VotesA    int64     `gorm:"not null;default:0" json:"votes_a"`
	VotesB    int64     `gorm:"not null;default:0" json:"votes_b"`
	CreatorID *uint     `gorm:"index" json:"creator_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// Outcome вычисляет счетчики после голоса и итог для голосующего.
// Победа определяется строгим "больше" по счетчикам ПОСЛЕ инкремента выбранной
// стороны: голос, создающий перевес, выигрывает; голос, сравнивающий счет, —
// проигрывает. Это правило игры, менять его нельзя.
func (q *Question) Outcome(choice Choice) (newA, newB int64, won bool) {
	newA, newB = q.VotesA, q.VotesB
	if choice == ChoiceA {
		newA++
		won = newA > newB
	} else {
		newB++
		won = newB > newA
	}
	return newA, newB, won
}

// Percentages возвращает целые проценты сторон, всегда в сумме дающие 100:
// сторона A округляется, сторона B берется как дополнение.
func Percentages(votesA, votesB int64) (int, int) {
	total := votesA + votesB
	if total == 0 {
		return 50, 50
	}
	pa := int(math.Round(float64(votesA) / float64(total) * 100))
	return pa, 100 - pa
}
