package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	"github.com/yourusername/thisorthat-api/internal/domain/repository"
)

// ============================================================================
// Тестовая БД: sqlite в памяти, одно соединение на весь тест
// ============================================================================

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// In-memory база живет, пока жив коннект — держим ровно один
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Question{}, &entity.Vote{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	user := &entity.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
		Score:    entity.InitialScore,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestQuestion(t *testing.T, db *gorm.DB, votesA, votesB int64) *entity.Question {
	t.Helper()
	question := &entity.Question{
		Text:    "Кофе или чай?",
		OptionA: "Кофе",
		OptionB: "Чай",
		VotesA:  votesA,
		VotesB:  votesB,
	}
	require.NoError(t, db.Create(question).Error)
	return question
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *entity.User {
	t.Helper()
	var user entity.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}

func reloadQuestion(t *testing.T, db *gorm.DB, id uint) *entity.Question {
	t.Helper()
	var question entity.Question
	require.NoError(t, db.First(&question, id).Error)
	return &question
}

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDTx(tx *gorm.DB, id uint) (*entity.User, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateStatsTx(tx *gorm.DB, user *entity.User, oldVotesCast, oldQuestionsCreated int64) error {
	args := m.Called(tx, user, oldVotesCast, oldQuestionsCreated)
	return args.Error(0)
}

func (m *MockUserRepository) GetLeaderboard(limit int) ([]entity.User, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) CountWithScoreAbove(score int64) (int64, error) {
	args := m.Called(score)
	return args.Get(0).(int64), args.Error(1)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) CreateTx(tx *gorm.DB, question *entity.Question) error {
	args := m.Called(tx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDTx(tx *gorm.DB, id uint) (*entity.Question, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) UpdateTallies(tx *gorm.DB, id uint, oldA, oldB, newA, newB int64) error {
	args := m.Called(tx, id, oldA, oldB, newA, newB)
	return args.Error(0)
}

func (m *MockQuestionRepository) ListUnvoted(userID uint, beforeID uint, limit int) ([]entity.Question, error) {
	args := m.Called(userID, beforeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

// MockVoteRepository реализует repository.VoteRepository
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) CreateTx(tx *gorm.DB, vote *entity.Vote) error {
	args := m.Called(tx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) GetTx(tx *gorm.DB, userID, questionID uint) (*entity.Vote, error) {
	args := m.Called(tx, userID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Vote), args.Error(1)
}

func (m *MockVoteRepository) ListByUser(userID uint, limit int) ([]repository.VoteWithQuestion, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.VoteWithQuestion), args.Error(1)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}
