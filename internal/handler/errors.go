package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/thisorthat-api/internal/pkg/errors"
)

// respondError переводит ошибку приложения в HTTP-ответ.
// Терминальные ошибки уходят клиенту с исходным текстом (включая числовые
// пороги); неизвестные ошибки скрываются за generic 500.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrInsufficientScore):
		status = http.StatusPaymentRequired
	case errors.Is(err, apperrors.ErrAlreadyVoted), errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrDailyLimitReached):
		status = http.StatusTooManyRequests
	case errors.Is(err, apperrors.ErrTransient):
		status = http.StatusServiceUnavailable
	default:
		log.Printf("[Handler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentUserID достает ID пользователя, установленный auth-middleware
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
