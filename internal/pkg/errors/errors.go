package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, неверные учетные данные).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyVoted используется, когда пользователь уже голосовал по этому вопросу.
	// Наличие записи Vote — единственный источник истины для этой проверки.
	ErrAlreadyVoted = errors.New("already voted on this question")

	// ErrInsufficientScore используется, когда у пользователя не хватает очков на создание вопроса.
	ErrInsufficientScore = errors.New("insufficient score")

	// ErrDailyLimitReached используется, когда исчерпан дневной лимит создания вопросов.
	ErrDailyLimitReached = errors.New("daily question limit reached")

	// ErrConflict используется при конфликте конкурентной записи (счетчики вопроса
	// изменились между чтением снимка и попыткой записи). Обрабатывается повтором внутри сервиса.
	ErrConflict = errors.New("resource state conflict")

	// ErrTransient возвращается, когда внутренние повторы после ErrConflict исчерпаны.
	// Вызывающая сторона может безопасно повторить запрос целиком.
	ErrTransient = errors.New("temporary storage conflict, please retry")
)
