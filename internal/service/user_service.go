package service

import (
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	"github.com/yourusername/thisorthat-api/internal/domain/repository"
)

const (
	leaderboardDefaultSize = 10
	leaderboardMaxSize     = 100
	leaderboardCacheTTL    = 30 * time.Second
	leaderboardExportSize  = 500
)

// LeaderboardEntry представляет одного пользователя в лидерборде
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Score      int64  `json:"score"`
	VotesWon   int64  `json:"votes_won"`
	BestStreak int    `json:"best_streak"`
}

// UserService предоставляет запросы по пользователям: лидерборд, ранг, история
type UserService struct {
	userRepo  repository.UserRepository
	voteRepo  repository.VoteRepository
	cacheRepo repository.CacheRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(
	userRepo repository.UserRepository,
	voteRepo repository.VoteRepository,
	cacheRepo repository.CacheRepository,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		voteRepo:  voteRepo,
		cacheRepo: cacheRepo,
	}
}

// GetProfile возвращает пользователя по ID
func (s *UserService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// GetLeaderboard возвращает топ-N пользователей по счету.
// Страница кешируется в Redis с коротким TTL; кеш best-effort — при ошибках
// кеша отвечаем напрямую из БД.
func (s *UserService) GetLeaderboard(limit int) ([]*LeaderboardEntry, error) {
	if limit < 1 {
		limit = leaderboardDefaultSize
	} else if limit > leaderboardMaxSize {
		limit = leaderboardMaxSize
	}

	cacheKey := fmt.Sprintf("leaderboard:top:%d", limit)
	if s.cacheRepo != nil {
		var cached []*LeaderboardEntry
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	users, err := s.userRepo.GetLeaderboard(limit)
	if err != nil {
		log.Printf("[UserService] Ошибка при получении лидерборда: %v", err)
		return nil, err
	}

	entries := make([]*LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = &LeaderboardEntry{
			Rank:       i + 1,
			UserID:     user.ID,
			Username:   user.Username,
			Score:      user.Score,
			VotesWon:   user.VotesWon,
			BestStreak: user.BestStreak,
		}
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, entries, leaderboardCacheTTL); err != nil {
			log.Printf("[UserService] Не удалось закешировать лидерборд: %v", err)
		}
	}
	return entries, nil
}

// GetUserRank возвращает ранг пользователя (1-indexed): количество пользователей
// со строго большим счетом плюс один. Пользователи с равным счетом делят ранг.
func (s *UserService) GetUserRank(userID uint) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	higher, err := s.userRepo.CountWithScoreAbove(user.Score)
	if err != nil {
		return 0, err
	}
	return int(higher) + 1, nil
}

// GetVoteHistory возвращает историю голосов пользователя новее-сначала
func (s *UserService) GetVoteHistory(userID uint, pageSize int) ([]repository.VoteWithQuestion, error) {
	if pageSize < 1 {
		pageSize = leaderboardDefaultSize
	} else if pageSize > leaderboardMaxSize {
		pageSize = leaderboardMaxSize
	}
	// Пользователь должен существовать, иначе история пустая по определению
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.voteRepo.ListByUser(userID, pageSize)
}

// ExportLeaderboardXLSX формирует книгу Excel с текущим лидербордом
func (s *UserService) ExportLeaderboardXLSX() (*excelize.File, error) {
	users, err := s.userRepo.GetLeaderboard(leaderboardExportSize)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Leaderboard"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Rank", "User ID", "Username", "Score", "Votes Cast", "Votes Won", "Best Streak"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for row, user := range users {
		values := []interface{}{row + 1, user.ID, user.Username, user.Score, user.VotesCast, user.VotesWon, user.BestStreak}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
