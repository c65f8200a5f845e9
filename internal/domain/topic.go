package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TopicKind controls how a topic can be discovered.
type TopicKind string

const (
	TopicKindPublic  TopicKind = "public"
	TopicKindPrivate TopicKind = "private"
)

// Valid reports whether k is a known topic kind.
func (k TopicKind) Valid() bool {
	return k == TopicKindPublic || k == TopicKindPrivate
}

// Topic is a named channel that users join to receive notifications.
type Topic struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description string      `json:"description" db:"description"`
	Kind        TopicKind   `json:"type" db:"kind"`
	SecretCode  *string     `json:"-" db:"secret_code"`
	CreatorID   uuid.UUID   `json:"creator" db:"creator_id"`
	Members     []uuid.UUID `json:"members" db:"-"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// NewTopic validates the creation parameters and returns a topic with an empty member set.
// The secret code is only kept for private topics.
func NewTopic(name, description string, kind TopicKind, secretCode string, creatorID uuid.UUID, now time.Time) (*Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "Name and type are required.")
	}
	if kind == "" {
		return nil, NewValidationError("type", "Name and type are required.")
	}
	if !kind.Valid() {
		return nil, NewValidationError("type", "type must be public or private")
	}

	var secret *string
	if kind == TopicKindPrivate {
		code := strings.TrimSpace(secretCode)
		if code == "" {
			return nil, NewValidationError("secretId", "Secret ID is required for private topics.")
		}
		secret = &code
	}

	return &Topic{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Kind:        kind,
		SecretCode:  secret,
		CreatorID:   creatorID,
		Members:     []uuid.UUID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsCreator reports whether userID owns the topic.
func (t *Topic) IsCreator(userID uuid.UUID) bool {
	return t.CreatorID == userID
}

// HasMember reports whether userID is in the member set.
func (t *Topic) HasMember(userID uuid.UUID) bool {
	return slices.Contains(t.Members, userID)
}

// SubscriberCount is the size of the member set.
func (t *Topic) SubscriberCount() int {
	return len(t.Members)
}

// CanSend reports whether userID may broadcast to the topic. Only the creator may send;
// membership grants nothing.
func (t *Topic) CanSend(userID uuid.UUID) bool {
	return t.IsCreator(userID)
}

// CanListSubscribers reports whether userID may see the member list.
func (t *Topic) CanListSubscribers(userID uuid.UUID) bool {
	return t.IsCreator(userID)
}

// SnapshotMembers returns a copy of the member set, detached from the topic.
func (t *Topic) SnapshotMembers() []uuid.UUID {
	out := make([]uuid.UUID, len(t.Members))
	copy(out, t.Members)
	return out
}

// TopicDetails is a topic annotated with its subscriber count.
type TopicDetails struct {
	Topic
	SubscriberCount int `json:"subscriberCount"`
}
