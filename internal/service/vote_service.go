package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	"github.com/yourusername/thisorthat-api/internal/domain/repository"
	apperrors "github.com/yourusername/thisorthat-api/internal/pkg/errors"
)

// voteTxMaxRetries — предел внутренних повторов транзакции при конфликте счетчиков
const voteTxMaxRetries = 3

// VoteResult — снимок итогов голосования для клиента
type VoteResult struct {
	Won         bool          `json:"won"`
	Choice      entity.Choice `json:"choice"`
	VotesA      int64         `json:"votes_a"`
	VotesB      int64         `json:"votes_b"`
	PercentageA int           `json:"percentage_a"`
	PercentageB int           `json:"percentage_b"`
}

// TallyBroadcaster рассылает обновленные счетчики вопроса подписанным клиентам
type TallyBroadcaster interface {
	BroadcastQuestionUpdate(questionID uint, votesA, votesB int64)
}

// VoteService выполняет транзакцию разрешения голоса: определяет победу,
// обновляет счетчики вопроса и пользователя и создает запись Vote — все атомарно.
type VoteService struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	voteRepo     repository.VoteRepository
	db           *gorm.DB
	broadcaster  TallyBroadcaster
}

// NewVoteService создает новый сервис голосования
func NewVoteService(
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	voteRepo repository.VoteRepository,
	db *gorm.DB,
	broadcaster TallyBroadcaster,
) *VoteService {
	return &VoteService{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		voteRepo:     voteRepo,
		db:           db,
		broadcaster:  broadcaster,
	}
}

// ResolveVote проводит голос пользователя по вопросу в одной атомарной транзакции.
// При конфликте конкурентной записи счетчиков транзакция прозрачно повторяется
// с нового снимка; терминальные ошибки (ErrAlreadyVoted, ErrNotFound) не повторяются.
func (s *VoteService) ResolveVote(userID, questionID uint, choice entity.Choice) (*VoteResult, error) {
	if !choice.Valid() {
		return nil, fmt.Errorf("%w: choice must be %q or %q", apperrors.ErrValidation, entity.ChoiceA, entity.ChoiceB)
	}

	var result *VoteResult
	var err error
	for attempt := 1; attempt <= voteTxMaxRetries; attempt++ {
		result, err = s.resolveVoteOnce(userID, questionID, choice)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		log.Printf("[VoteService] Конфликт счетчиков вопроса #%d (попытка %d/%d), повторяю транзакцию",
			questionID, attempt, voteTxMaxRetries)
	}
	if err != nil {
		log.Printf("[VoteService] Повторы исчерпаны для вопроса #%d, пользователь #%d", questionID, userID)
		return nil, fmt.Errorf("%w: vote on question %d", apperrors.ErrTransient, questionID)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastQuestionUpdate(questionID, result.VotesA, result.VotesB)
	}
	return result, nil
}

// resolveVoteOnce — одна попытка транзакции: чтение снимка, вычисление итога, запись.
// Все чтения и записи идут через один tx; любой сбой после фазы чтения
// откатывает транзакцию целиком.
func (s *VoteService) resolveVoteOnce(userID, questionID uint, choice entity.Choice) (*VoteResult, error) {
	var result *VoteResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.GetByIDTx(tx, userID)
		if err != nil {
			return err
		}
		question, err := s.questionRepo.GetByIDTx(tx, questionID)
		if err != nil {
			return err
		}

		// Проверка повторного голоса — часть читаемого набора транзакции
		if _, err := s.voteRepo.GetTx(tx, userID, questionID); err == nil {
			return apperrors.ErrAlreadyVoted
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		now := time.Now()
		newA, newB, won := question.Outcome(choice)

		// CAS по паре счетчиков: при проигрыше гонки — ErrConflict и повтор с нового снимка
		if err := s.questionRepo.UpdateTallies(tx, question.ID, question.VotesA, question.VotesB, newA, newB); err != nil {
			return err
		}

		// CAS по счетчикам пользователя: параллельный голос по другому вопросу
		// или создание вопроса тем же пользователем — тоже ErrConflict и повтор
		prevVotesCast, prevQuestionsCreated := user.VotesCast, user.QuestionsCreated
		user.ApplyVoteOutcome(won, now)
		if err := s.userRepo.UpdateStatsTx(tx, user, prevVotesCast, prevQuestionsCreated); err != nil {
			return err
		}

		vote := &entity.Vote{
			UserID:     userID,
			QuestionID: questionID,
			Choice:     choice,
			Won:        won,
			CreatedAt:  now,
		}
		if err := s.voteRepo.CreateTx(tx, vote); err != nil {
			return err
		}

		pa, pb := entity.Percentages(newA, newB)
		result = &VoteResult{
			Won:         won,
			Choice:      choice,
			VotesA:      newA,
			VotesB:      newB,
			PercentageA: pa,
			PercentageB: pb,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
