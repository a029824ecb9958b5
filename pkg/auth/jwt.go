package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	"github.com/yourusername/thisorthat-api/internal/domain/repository"
	apperrors "github.com/yourusername/thisorthat-api/internal/pkg/errors"
)

// wsTicketKeyPrefix — префикс ключей одноразовых тикетов в кеше
const wsTicketKeyPrefix = "ws:ticket:"

// Claims — полезная нагрузка access-токена
type Claims struct {
	UserID  uint `json:"user_id"`
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// JWTService выпускает и проверяет access-токены и одноразовые WebSocket-тикеты
type JWTService struct {
	secret      []byte
	tokenExpiry time.Duration
	ticketTTL   time.Duration
	cacheRepo   repository.CacheRepository
}

// NewJWTService создает новый сервис токенов
func NewJWTService(secret string, expirationHrs, wsTicketExpirySec int, cacheRepo repository.CacheRepository) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret cannot be empty")
	}
	if expirationHrs <= 0 {
		expirationHrs = 24
	}
	if wsTicketExpirySec <= 0 {
		wsTicketExpirySec = 60
	}
	return &JWTService{
		secret:      []byte(secret),
		tokenExpiry: time.Duration(expirationHrs) * time.Hour,
		ticketTTL:   time.Duration(wsTicketExpirySec) * time.Second,
		cacheRepo:   cacheRepo,
	}, nil
}

// GenerateToken выпускает подписанный access-токен для пользователя
func (s *JWTService) GenerateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken проверяет подпись и срок действия токена и возвращает claims
func (s *JWTService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

// GenerateWSTicket выпускает одноразовый тикет для установки WebSocket-соединения.
// Тикет живет в кеше с коротким TTL и погашается при первом использовании.
func (s *JWTService) GenerateWSTicket(userID uint) (string, error) {
	if s.cacheRepo == nil {
		return "", fmt.Errorf("ws tickets require a cache repository")
	}
	ticket := uuid.NewString()
	if err := s.cacheRepo.Set(wsTicketKeyPrefix+ticket, strconv.FormatUint(uint64(userID), 10), s.ticketTTL); err != nil {
		return "", err
	}
	return ticket, nil
}

// ConsumeWSTicket погашает тикет и возвращает ID пользователя.
// Повторное использование тикета невозможно.
func (s *JWTService) ConsumeWSTicket(ticket string) (uint, error) {
	if s.cacheRepo == nil || ticket == "" {
		return 0, apperrors.ErrUnauthorized
	}
	key := wsTicketKeyPrefix + ticket
	val, err := s.cacheRepo.Get(key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.ErrUnauthorized
		}
		return 0, err
	}
	// Гасим тикет сразу после чтения
	if err := s.cacheRepo.Delete(key); err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, apperrors.ErrUnauthorized
	}
	return uint(userID), nil
}
