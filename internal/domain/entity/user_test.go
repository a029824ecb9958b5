package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_ApplyVoteOutcome_WinStreak(t *testing.T) {
	now := time.Now()
	user := &User{Score: 3}

	user.ApplyVoteOutcome(true, now)
	user.ApplyVoteOutcome(true, now)
	user.ApplyVoteOutcome(true, now)

	assert.Equal(t, int64(3), user.VotesCast)
	assert.Equal(t, int64(3), user.VotesWon)
	assert.Equal(t, int64(6), user.Score) // +1 за каждую победу
	assert.Equal(t, 3, user.CurrentStreak)
	assert.Equal(t, 3, user.BestStreak)
	require.NotNil(t, user.LastActive)
}

func TestUser_ApplyVoteOutcome_LossResetsStreakOnly(t *testing.T) {
	now := time.Now()
	user := &User{Score: 5, VotesCast: 4, VotesWon: 4, CurrentStreak: 4, BestStreak: 4}

	user.ApplyVoteOutcome(false, now)

	assert.Equal(t, int64(5), user.VotesCast)
	assert.Equal(t, int64(4), user.VotesWon)
	assert.Equal(t, int64(5), user.Score, "проигрыш не меняет счет")
	assert.Equal(t, 0, user.CurrentStreak, "серия обнуляется")
	assert.Equal(t, 4, user.BestStreak, "лучшая серия не уменьшается")
}

func TestUser_ApplyVoteOutcome_BestStreakMonotonic(t *testing.T) {
	now := time.Now()
	user := &User{}

	// Серия из побед и проигрышей: best_streak — бегущий максимум
	outcomes := []bool{true, true, false, true, true, true, false, true}
	for _, won := range outcomes {
		prevBest := user.BestStreak
		user.ApplyVoteOutcome(won, now)
		assert.GreaterOrEqual(t, user.BestStreak, prevBest)
	}
	assert.Equal(t, 3, user.BestStreak)
	assert.Equal(t, 1, user.CurrentStreak)
	assert.True(t, user.VotesWon <= user.VotesCast)
}

func TestUser_QuestionsToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	t.Run("never created", func(t *testing.T) {
		user := &User{}
		assert.Equal(t, 0, user.QuestionsToday(now))
	})

	t.Run("created today", func(t *testing.T) {
		today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		user := &User{QuestionsCreatedToday: 3, LastQuestionDate: &today}
		assert.Equal(t, 3, user.QuestionsToday(now))
	})

	t.Run("created yesterday resets", func(t *testing.T) {
		yesterday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
		user := &User{QuestionsCreatedToday: 5, LastQuestionDate: &yesterday}
		assert.Equal(t, 0, user.QuestionsToday(now))
	})

	t.Run("date compare ignores time of day", func(t *testing.T) {
		lateEvening := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
		user := &User{QuestionsCreatedToday: 2, LastQuestionDate: &lateEvening}
		assert.Equal(t, 2, user.QuestionsToday(now))
	})
}

func TestUser_PasswordHashing(t *testing.T) {
	user := &User{Email: "test@example.com", Password: "secret123"}

	// BeforeSave хеширует пароль один раз
	require.NoError(t, user.BeforeSave(nil))
	assert.NotEqual(t, "secret123", user.Password)

	hashed := user.Password
	require.NoError(t, user.BeforeSave(nil))
	assert.Equal(t, hashed, user.Password, "повторный BeforeSave не перехеширует")

	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
}
