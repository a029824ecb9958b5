package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/thisorthat-api/internal/domain/entity"
	apperrors "github.com/yourusername/thisorthat-api/internal/pkg/errors"
	"github.com/yourusername/thisorthat-api/pkg/auth"
)

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret-key", 1, 60, nil)
	require.NoError(t, err)
	return jwtService
}

func TestAuthService_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "newbie").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*entity.User).ID = 42
		}).
		Return(nil)

	svc := NewAuthService(userRepo, newTestJWTService(t))

	user, token, err := svc.Register("  newbie  ", "Newbie@Example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Нормализация ввода и стартовый счет
	assert.Equal(t, "newbie", user.Username)
	assert.Equal(t, "newbie@example.com", user.Email)
	assert.Equal(t, int64(entity.InitialScore), user.Score)
	assert.Equal(t, int64(0), user.VotesCast)

	claims, err := newTestJWTService(t).ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), newTestJWTService(t))

	testCases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"пустое имя", "", "a@b.com", "password123"},
		{"пустой email", "user", "", "password123"},
		{"короткий пароль", "user", "a@b.com", "12345"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "taken").Return(&entity.User{ID: 1, Username: "taken"}, nil)

	svc := NewAuthService(userRepo, newTestJWTService(t))

	_, _, err := svc.Register("taken", "taken@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Занятое имя отсекается до попытки вставки
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// Гонка двух регистраций: предварительная проверка прошла, но уникальный
// индекс отклонил вставку
func TestAuthService_Register_DuplicateTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByUsername", "taken").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", mock.Anything).Return(apperrors.ErrConflict)

	svc := NewAuthService(userRepo, newTestJWTService(t))

	_, _, err := svc.Register("taken", "taken@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAuthService_Login_Success(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{ID: 7, Username: "someone", Email: "someone@example.com", Password: string(hashed)}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", "someone@example.com").Return(user, nil)

	svc := NewAuthService(userRepo, newTestJWTService(t))

	got, token, err := svc.Login("  Someone@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{ID: 7, Email: "someone@example.com", Password: string(hashed)}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", "someone@example.com").Return(user, nil)

	svc := NewAuthService(userRepo, newTestJWTService(t))

	_, _, err = svc.Login("someone@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	svc := NewAuthService(userRepo, newTestJWTService(t))

	_, _, err := svc.Login("ghost@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
