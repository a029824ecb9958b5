package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation — класс ошибок PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// isDuplicateKey распознает нарушение уникального/первичного ключа.
// GORM с TranslateError возвращает gorm.ErrDuplicatedKey; проверка кода pgconn
// оставлена для необернутых ошибок драйвера.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
