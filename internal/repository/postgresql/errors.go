package postgresql

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	invalidTextCode         = "22P02"
)

// pgErrorCode returns the SQLSTATE of err, or "" when err is not a server
// error.
func pgErrorCode(err error) (string, *pgconn.PgError) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr
	}
	return "", nil
}

// storeError marks a driver failure as attendance.ErrStoreUnavailable.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", attendance.ErrStoreUnavailable, op, err)
}
