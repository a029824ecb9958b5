package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/thisorthat-api/internal/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// ============================================================================
// Request validation tests — не требуют реального VoteService
// Handler возвращает 400/401 до вызова сервиса
// ============================================================================

func TestVote_ValidationErrors(t *testing.T) {
	handler := &VoteHandler{} // nil service — OK для validation tests

	tests := []struct {
		name       string
		body       interface{}
		authorized bool
		wantStatus int
	}{
		{
			name:       "no auth context",
			body:       map[string]string{"choice": "a"},
			authorized: false,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty body",
			body:       nil,
			authorized: true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing choice",
			body:       map[string]string{},
			authorized: true,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/questions/1/vote", tt.body)
			if tt.authorized {
				c.Set("user_id", uint(1))
				c.Set("questionID", uint(1))
			}
			handler.Vote(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Contains(t, resp, "error")
		})
	}
}

// ============================================================================
// Маппинг ошибок приложения в HTTP-статусы
// ============================================================================

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{apperrors.ErrValidation, http.StatusBadRequest},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrInsufficientScore, http.StatusPaymentRequired},
		{apperrors.ErrAlreadyVoted, http.StatusConflict},
		{apperrors.ErrConflict, http.StatusConflict},
		{apperrors.ErrDailyLimitReached, http.StatusTooManyRequests},
		{apperrors.ErrTransient, http.StatusServiceUnavailable},
		{fmt.Errorf("что-то пошло не так"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			c, w := newTestGinContext("GET", "/", nil)
			respondError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// Обернутая ошибка сохраняет текст с порогами для клиента
func TestRespondError_WrappedErrorKeepsMessage(t *testing.T) {
	c, w := newTestGinContext("GET", "/", nil)
	respondError(c, fmt.Errorf("%w: creating a question costs 3 points, you have 1", apperrors.ErrInsufficientScore))

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Contains(t, resp["error"], "costs 3 points")
}

// Неизвестная ошибка не утекает клиенту
func TestRespondError_InternalErrorHidden(t *testing.T) {
	c, w := newTestGinContext("GET", "/", nil)
	respondError(c, fmt.Errorf("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, "Internal server error", resp["error"])
}
