package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeCheckViolation      = "23514"
)

func isUniqueViolation(err error) bool {
	return pgErrCode(err) == pgErrCodeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrCode(err) == pgErrCodeForeignKeyViolation
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
