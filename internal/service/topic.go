package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sumire/notices/internal/domain"
)

//go:generate moq -out topic_store_mock_test.go . TopicStore MemberDirectory

// TopicStore persists topics and their membership. AddMember and RemoveMember must be atomic
// and report whether the member set changed.
type TopicStore interface {
	Create(ctx context.Context, topic *domain.Topic) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)
	FindPrivateBySecret(ctx context.Context, secretCode string) (*domain.Topic, error)
	SearchPublic(ctx context.Context, fragment string) ([]domain.Topic, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]domain.Topic, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]domain.Topic, error)
	AddMember(ctx context.Context, topicID, userID uuid.UUID) (bool, error)
	RemoveMember(ctx context.Context, topicID, userID uuid.UUID) (bool, error)
}

// MemberDirectory resolves member profiles and keeps each user's subscribed-topic list.
type MemberDirectory interface {
	ListProfiles(ctx context.Context, ids []uuid.UUID) ([]domain.UserProfile, error)
	AddSubscription(ctx context.Context, userID, topicID uuid.UUID) error
	RemoveSubscription(ctx context.Context, userID, topicID uuid.UUID) error
}

var (
	errTopicNotFound   = domain.NewError(domain.ErrNotFound, "Topic not found.")
	errAlreadyMember   = domain.NewError(domain.ErrConflict, "You are already a member of this topic.")
	errNotMember       = domain.NewError(domain.ErrInvalidInput, "You are not a member of this topic.")
	errNotTopicCreator = domain.NewError(domain.ErrForbidden, "Only the topic creator can view its subscribers.")
)

// TopicService handles topic creation, discovery and membership.
type TopicService struct {
	topics TopicStore
	users  MemberDirectory
	log    *slog.Logger
	now    func() time.Time
}

// NewTopicService creates a new TopicService.
func NewTopicService(log *slog.Logger, topics TopicStore, users MemberDirectory) *TopicService {
	return &TopicService{
		topics: topics,
		users:  users,
		log:    log.With("service", "topic"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateTopicInput is the payload for topic creation.
type CreateTopicInput struct {
	Name        string
	Description string
	Kind        domain.TopicKind
	SecretCode  string
}

// Create validates and stores a new topic owned by creatorID. The creator is not added as a member.
func (s *TopicService) Create(ctx context.Context, in CreateTopicInput, creatorID uuid.UUID) (*domain.Topic, error) {
	topic, err := domain.NewTopic(in.Name, in.Description, in.Kind, in.SecretCode, creatorID, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.topics.Create(ctx, topic); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}

	s.log.InfoContext(ctx, "topic created",
		slog.String("topic_id", topic.ID.String()),
		slog.String("creator_id", creatorID.String()),
		slog.String("kind", string(topic.Kind)),
	)
	return topic, nil
}

// SearchPublic returns public topics whose name contains fragment, or every public topic when
// fragment is blank. An empty result is not an error.
func (s *TopicService) SearchPublic(ctx context.Context, fragment string) ([]domain.Topic, error) {
	topics, err := s.topics.SearchPublic(ctx, strings.TrimSpace(fragment))
	if err != nil {
		return nil, fmt.Errorf("search public topics: %w", err)
	}
	return topics, nil
}

// SearchPrivateBySecret returns the private topic with the given secret code.
func (s *TopicService) SearchPrivateBySecret(ctx context.Context, secretCode string) (*domain.Topic, error) {
	secretCode = strings.TrimSpace(secretCode)
	if secretCode == "" {
		return nil, domain.NewValidationError("secretId", "Valid secretId is required to search private topics.")
	}

	topic, err := s.topics.FindPrivateBySecret(ctx, secretCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "No private topic found with this secret ID.")
		}
		return nil, fmt.Errorf("search private topic: %w", err)
	}
	return topic, nil
}

// Join adds userID to the topic's members. Joining twice is a conflict.
func (s *TopicService) Join(ctx context.Context, topicID, userID uuid.UUID) (*domain.Topic, error) {
	topic, err := s.getTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	added, err := s.topics.AddMember(ctx, topicID, userID)
	if err != nil {
		return nil, fmt.Errorf("join topic: %w", err)
	}
	if !added {
		return nil, errAlreadyMember
	}
	if !topic.HasMember(userID) {
		topic.Members = append(topic.Members, userID)
	}

	if err := s.users.AddSubscription(ctx, userID, topicID); err != nil {
		s.log.WarnContext(ctx, "failed to record subscription on user",
			slog.String("topic_id", topicID.String()),
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, "topic joined", slog.String("topic_id", topicID.String()), slog.String("user_id", userID.String()))
	return topic, nil
}

// Unsubscribe removes userID from the topic's members.
func (s *TopicService) Unsubscribe(ctx context.Context, topicID, userID uuid.UUID) (*domain.Topic, error) {
	topic, err := s.getTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	removed, err := s.topics.RemoveMember(ctx, topicID, userID)
	if err != nil {
		return nil, fmt.Errorf("unsubscribe topic: %w", err)
	}
	if !removed {
		return nil, errNotMember
	}
	topic.Members = slices.DeleteFunc(topic.Members, func(id uuid.UUID) bool { return id == userID })

	if err := s.users.RemoveSubscription(ctx, userID, topicID); err != nil {
		s.log.WarnContext(ctx, "failed to drop subscription on user",
			slog.String("topic_id", topicID.String()),
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, "topic left", slog.String("topic_id", topicID.String()), slog.String("user_id", userID.String()))
	return topic, nil
}

// GetDetails returns the topic with its subscriber count.
func (s *TopicService) GetDetails(ctx context.Context, topicID uuid.UUID) (*domain.TopicDetails, error) {
	topic, err := s.getTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	return &domain.TopicDetails{Topic: *topic, SubscriberCount: topic.SubscriberCount()}, nil
}

// ListCreatedBy lists the topics userID created.
func (s *TopicService) ListCreatedBy(ctx context.Context, userID uuid.UUID) ([]domain.Topic, error) {
	topics, err := s.topics.ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list created topics: %w", err)
	}
	return topics, nil
}

// ListSubscribedBy lists the topics userID is a member of.
func (s *TopicService) ListSubscribedBy(ctx context.Context, userID uuid.UUID) ([]domain.Topic, error) {
	topics, err := s.topics.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscribed topics: %w", err)
	}
	return topics, nil
}

// ListSubscribers returns the member profiles of a topic. Only the creator may call it.
func (s *TopicService) ListSubscribers(ctx context.Context, topicID, requesterID uuid.UUID) ([]domain.UserProfile, error) {
	topic, err := s.getTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if !topic.CanListSubscribers(requesterID) {
		return nil, errNotTopicCreator
	}

	profiles, err := s.users.ListProfiles(ctx, topic.Members)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return profiles, nil
}

func (s *TopicService) getTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	topic, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errTopicNotFound
		}
		return nil, fmt.Errorf("find topic: %w", err)
	}
	return topic, nil
}
