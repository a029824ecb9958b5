package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	"github.com/yourusername/thisorthat-api/internal/domain/repository"
	apperrors "github.com/yourusername/thisorthat-api/internal/pkg/errors"
	"github.com/yourusername/thisorthat-api/pkg/auth"
)

// AuthService отвечает за регистрацию и вход пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register создает аккаунт и возвращает пользователя с access-токеном.
// Новый аккаунт получает стартовый счет entity.InitialScore, остальные счетчики нулевые.
func (s *AuthService) Register(username, email, password string) (*entity.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || len(password) < 6 {
		return nil, "", fmt.Errorf("%w: username, email and password (6+ chars) are required", apperrors.ErrValidation)
	}

	// Дружелюбная проверка занятости имени до вставки; уникальный индекс
	// остается страховкой от гонки
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, "", fmt.Errorf("%w: username or email already taken", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", err
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: password, // хешируется в BeforeSave
		Score:    entity.InitialScore,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, "", fmt.Errorf("%w: username or email already taken", apperrors.ErrConflict)
		}
		log.Printf("[AuthService] Ошибка при создании пользователя %s: %v", email, err)
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[AuthService] Зарегистрирован пользователь #%d (%s)", user.ID, user.Username)
	return user, token, nil
}

// Login проверяет учетные данные и возвращает пользователя с access-токеном
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, "", err
	}
	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
