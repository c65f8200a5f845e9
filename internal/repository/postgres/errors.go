package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sumire/notices/internal/domain"
)

const uniqueViolation = "23505"

// Client-facing messages for unique constraints, keyed by constraint name.
var conflictMessages = map[string]string{
	"users_email_key":           "User already exists",
	"topics_name_key":           "Topic with the name already exists.",
	"topics_private_secret_key": "A private topic with this secret ID already exists.",
}

// mapError converts driver errors into domain errors, prefixing op.
// Context cancellation passes through unchanged.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		msg, ok := conflictMessages[pgErr.ConstraintName]
		if !ok {
			msg = "The resource already exists"
		}
		return fmt.Errorf("%s: %w", op, domain.NewError(domain.ErrConflict, msg))
	}

	return fmt.Errorf("%s: %w", op, err)
}
