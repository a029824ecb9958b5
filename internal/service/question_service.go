package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	"github.com/yourusername/thisorthat-api/internal/domain/repository"
	apperrors "github.com/yourusername/thisorthat-api/internal/pkg/errors"
)

// Правила создания вопросов
const (
	// QuestionCost — стоимость создания вопроса в очках
	QuestionCost = 3
	// DailyQuestionLimit — максимум вопросов от одного пользователя в сутки
	DailyQuestionLimit = 5
)

const (
	feedDefaultPageSize = 20
	feedMaxPageSize     = 50
)

// CreateQuestionInput — данные для создания вопроса
type CreateQuestionInput struct {
	Text        string
	OptionA     string
	OptionB     string
	InitialVote entity.Choice
}

// QuestionService выполняет транзакцию создания вопроса и запросы ленты
type QuestionService struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	voteRepo     repository.VoteRepository
	db           *gorm.DB
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	voteRepo repository.VoteRepository,
	db *gorm.DB,
) *QuestionService {
	return &QuestionService{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		voteRepo:     voteRepo,
		db:           db,
	}
}

// createTxMaxRetries — предел внутренних повторов транзакции при конфликте
// счетчиков пользователя
const createTxMaxRetries = 3

// Create атомарно списывает стоимость, проверяет дневную квоту, создает вопрос
// и записывает стартовый голос создателя. Стартовый голос всегда won=true:
// создатель ставит единственный голос и по определению в большинстве.
// Ни одна запись не применяется частично; при конфликте конкурентной записи
// счетчиков пользователя транзакция повторяется с нового снимка.
func (s *QuestionService) Create(userID uint, input CreateQuestionInput) (*entity.Question, error) {
	if strings.TrimSpace(input.Text) == "" ||
		strings.TrimSpace(input.OptionA) == "" ||
		strings.TrimSpace(input.OptionB) == "" {
		return nil, fmt.Errorf("%w: text, option_a and option_b are required", apperrors.ErrValidation)
	}
	if !input.InitialVote.Valid() {
		return nil, fmt.Errorf("%w: initial_vote must be %q or %q", apperrors.ErrValidation, entity.ChoiceA, entity.ChoiceB)
	}

	var created *entity.Question
	var err error
	for attempt := 1; attempt <= createTxMaxRetries; attempt++ {
		created, err = s.createOnce(userID, input)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		log.Printf("[QuestionService] Конфликт счетчиков пользователя #%d (попытка %d/%d), повторяю транзакцию",
			userID, attempt, createTxMaxRetries)
	}
	if err != nil {
		log.Printf("[QuestionService] Повторы исчерпаны при создании вопроса пользователем #%d", userID)
		return nil, fmt.Errorf("%w: create question by user %d", apperrors.ErrTransient, userID)
	}

	log.Printf("[QuestionService] Пользователь #%d создал вопрос #%d", userID, created.ID)
	return created, nil
}

// createOnce — одна попытка транзакции создания вопроса
func (s *QuestionService) createOnce(userID uint, input CreateQuestionInput) (*entity.Question, error) {
	var created *entity.Question
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.GetByIDTx(tx, userID)
		if err != nil {
			return err
		}

		if user.Score < QuestionCost {
			return fmt.Errorf("%w: creating a question costs %d points, you have %d",
				apperrors.ErrInsufficientScore, QuestionCost, user.Score)
		}

		now := time.Now()
		questionsToday := user.QuestionsToday(now)
		if questionsToday >= DailyQuestionLimit {
			return fmt.Errorf("%w: at most %d questions per day",
				apperrors.ErrDailyLimitReached, DailyQuestionLimit)
		}

		question := &entity.Question{
			Text:      strings.TrimSpace(input.Text),
			OptionA:   strings.TrimSpace(input.OptionA),
			OptionB:   strings.TrimSpace(input.OptionB),
			CreatorID: &userID,
			CreatedAt: now,
		}
		// Сторона стартового голоса создателя начинает с 1
		if input.InitialVote == entity.ChoiceA {
			question.VotesA = 1
		} else {
			question.VotesB = 1
		}
		if err := s.questionRepo.CreateTx(tx, question); err != nil {
			return err
		}

		vote := &entity.Vote{
			UserID:     userID,
			QuestionID: question.ID,
			Choice:     input.InitialVote,
			Won:        true,
			CreatedAt:  now,
		}
		if err := s.voteRepo.CreateTx(tx, vote); err != nil {
			return err
		}

		day := now.UTC().Truncate(24 * time.Hour)
		prevVotesCast, prevQuestionsCreated := user.VotesCast, user.QuestionsCreated
		user.Score -= QuestionCost
		user.QuestionsCreated++
		user.QuestionsCreatedToday = questionsToday + 1
		user.LastQuestionDate = &day
		user.LastActive = &now
		// CAS по счетчикам пользователя: параллельное создание или голос
		// откатывают транзакцию целиком, квота и списание пересчитываются
		if err := s.userRepo.UpdateStatsTx(tx, user, prevVotesCast, prevQuestionsCreated); err != nil {
			return err
		}

		created = question
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID возвращает вопрос по ID
func (s *QuestionService) GetByID(id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(id)
}

// GetFeed возвращает ленту непроголосованных вопросов новее-сначала.
// Курсор непрозрачный: base64 от ID последнего показанного вопроса.
// Лента никогда не вернет вопрос, по которому ResolveVote ответил бы ErrAlreadyVoted.
func (s *QuestionService) GetFeed(userID uint, pageSize int, cursor string) ([]entity.Question, string, error) {
	if pageSize < 1 {
		pageSize = feedDefaultPageSize
	} else if pageSize > feedMaxPageSize {
		pageSize = feedMaxPageSize
	}

	beforeID, err := decodeFeedCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	// Запрашиваем на один больше, чтобы понять, есть ли следующая страница
	questions, err := s.questionRepo.ListUnvoted(userID, beforeID, pageSize+1)
	if err != nil {
		log.Printf("[QuestionService] Ошибка при получении ленты для пользователя #%d: %v", userID, err)
		return nil, "", err
	}

	nextCursor := ""
	if len(questions) > pageSize {
		questions = questions[:pageSize]
		nextCursor = encodeFeedCursor(questions[len(questions)-1].ID)
	}
	return questions, nextCursor, nil
}

func encodeFeedCursor(lastID uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(lastID), 10)))
}

func decodeFeedCursor(cursor string) (uint, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed cursor", apperrors.ErrValidation)
	}
	id, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed cursor", apperrors.ErrValidation)
	}
	return uint(id), nil
}
