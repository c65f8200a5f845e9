package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	mdb "go.mongodb.org/mongo-driver/mongo"

	"github.com/sumire/notices/internal/domain"
)

// Client-facing messages for unique indexes, keyed by index name.
var conflictMessages = map[string]string{
	"email_1":    "User already exists",
	"name_1":     "Topic with the name already exists.",
	"secretId_1": "A private topic with this secret ID already exists.",
}

// mapError converts driver errors into domain errors, prefixing op.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, mdb.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	if mdb.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, domain.NewError(domain.ErrConflict, conflictMessage(err)))
	}

	return fmt.Errorf("%s: %w", op, err)
}

// conflictMessage picks the message for the violated index, read from the server error text
// ("... index: name_1 dup key: ...").
func conflictMessage(err error) string {
	msg := err.Error()
	for index, text := range conflictMessages {
		if strings.Contains(msg, "index: "+index+" ") {
			return text
		}
	}
	return "The resource already exists"
}

func idString(id uuid.UUID) string {
	return id.String()
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse stored id %q: %w", s, err)
	}
	return id, nil
}

func parseIDs(ss []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(ss))
	for _, s := range ss {
		id, err := parseID(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
