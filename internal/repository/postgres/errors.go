package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	return hasPgCode(err, pgerrcode.UniqueViolation)
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgUndefinedTableError checks if the kv table has not been created
func IsPgUndefinedTableError(err error) bool {
	return hasPgCode(err, pgerrcode.UndefinedTable)
}

// IsPgSerializationError checks if a transaction lost a serialization race
func IsPgSerializationError(err error) bool {
	return hasPgCode(err, pgerrcode.SerializationFailure) || hasPgCode(err, pgerrcode.DeadlockDetected)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
