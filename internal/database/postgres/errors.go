package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/koustreak/tablegen/internal/errs"
)

// PostgreSQL SQLSTATE error codes relevant to a read-only metadata client.
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgErrConnectionFailure  = "08006"
	pgErrInvalidPassword    = "28P01"
	pgErrInvalidCatalogName = "3D000"
	pgErrSyntaxError        = "42601"
	pgErrUndefinedTable     = "42P01"
	pgErrUndefinedColumn    = "42703"
)

// mapError translates pgx errors into *errs.Error.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return errs.Wrap(
			classifyCode(pgErr.Code),
			fmt.Sprintf("%s: %s", msg, pgErr.Message),
			err,
		)
	}

	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}

// classifyCode maps SQLSTATE codes to ErrKind.
func classifyCode(code string) errs.ErrKind {
	switch code {
	case pgErrConnectionFailure, pgErrInvalidPassword, pgErrInvalidCatalogName:
		return errs.ErrKindConnectionFailed
	case pgErrSyntaxError, pgErrUndefinedTable, pgErrUndefinedColumn:
		return errs.ErrKindQueryFailed
	default:
		return errs.ErrKindQueryFailed
	}
}
