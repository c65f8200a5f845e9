package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sumire/notices/internal/domain"
)

//go:generate moq -out notification_store_mock_test.go . NotificationStore TopicFinder

// NotificationStore persists notifications. MarkRead, MarkUnread and MarkDeleted must be
// single-member atomic updates; MarkDeleted reports whether the deleted set changed.
type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListInbox(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	ListSent(ctx context.Context, senderID uuid.UUID) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkUnread(ctx context.Context, id, userID uuid.UUID) error
	MarkDeleted(ctx context.Context, id, userID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TopicFinder looks up a topic by id.
type TopicFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)
}

var (
	errNotificationNotFound = domain.NewError(domain.ErrNotFound, "Notification not found")
	errNotRecipient         = domain.NewError(domain.ErrForbidden, "You are not a recipient of this notification")
	errNotRecipientRemove   = domain.NewError(domain.ErrInvalidInput, "You are not a recipient of this notification")
	errAlreadyRemoved       = domain.NewError(domain.ErrInvalidInput, "Notification already removed from your inbox")
	errCannotDelete         = domain.NewError(domain.ErrForbidden, "You do not have permission to delete this notification")
)

// NotificationService handles sending notifications and each recipient's inbox state.
type NotificationService struct {
	notifications NotificationStore
	topics        TopicFinder
	log           *slog.Logger
	now           func() time.Time
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(log *slog.Logger, notifications NotificationStore, topics TopicFinder) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		topics:        topics,
		log:           log.With("service", "notification"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SendInput is the payload for sending a notification.
type SendInput struct {
	TopicID uuid.UUID
	Title   string
	Message string
}

// Send broadcasts a notification to the topic's current members. Only the topic creator may send.
func (s *NotificationService) Send(ctx context.Context, in SendInput, senderID uuid.UUID) (*domain.Notification, error) {
	topic, err := s.topics.FindByID(ctx, in.TopicID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errTopicNotFound
		}
		return nil, fmt.Errorf("send notification: %w", err)
	}

	n, err := domain.NewNotification(topic, senderID, in.Title, in.Message, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("send notification: %w", err)
	}

	s.log.InfoContext(ctx, "notification sent",
		slog.String("notification_id", n.ID.String()),
		slog.String("topic_id", topic.ID.String()),
		slog.Int("recipients", len(n.Recipients)),
	)
	return n, nil
}

// Inbox lists the notifications userID received and has not removed, newest first.
func (s *NotificationService) Inbox(ctx context.Context, userID uuid.UUID) ([]domain.InboxNotification, error) {
	ns, err := s.notifications.ListInbox(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch inbox: %w", err)
	}
	domain.SortNewestFirst(ns)

	items := make([]domain.InboxNotification, 0, len(ns))
	for _, n := range ns {
		if n.InInbox(userID) {
			items = append(items, n.ForUser(userID))
		}
	}
	return items, nil
}

// Sent lists the notifications senderID sent, newest first.
func (s *NotificationService) Sent(ctx context.Context, senderID uuid.UUID) ([]*domain.Notification, error) {
	ns, err := s.notifications.ListSent(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("fetch sent: %w", err)
	}
	domain.SortNewestFirst(ns)
	return ns, nil
}

// Get returns a single notification for a recipient.
func (s *NotificationService) Get(ctx context.Context, id, userID uuid.UUID) (*domain.InboxNotification, error) {
	n, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.CanView(userID) {
		return nil, errNotRecipient
	}

	item := n.ForUser(userID)
	return &item, nil
}

// MarkRead marks the notification read for userID. Repeating it is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	n, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !n.IsRecipient(userID) {
		return errNotRecipient
	}

	if err := s.notifications.MarkRead(ctx, id, userID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// MarkUnread clears the read flag for userID. Repeating it is a no-op.
func (s *NotificationService) MarkUnread(ctx context.Context, id, userID uuid.UUID) error {
	n, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !n.IsRecipient(userID) {
		return errNotRecipient
	}

	if err := s.notifications.MarkUnread(ctx, id, userID); err != nil {
		return fmt.Errorf("mark unread: %w", err)
	}
	return nil
}

// RemoveFromInbox hides the notification from userID's inbox. The recipient set is unchanged,
// so other recipients and the sender still see it.
func (s *NotificationService) RemoveFromInbox(ctx context.Context, id, userID uuid.UUID) error {
	n, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !n.IsRecipient(userID) {
		return errNotRecipientRemove
	}

	removed, err := s.notifications.MarkDeleted(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("remove from inbox: %w", err)
	}
	if !removed {
		return errAlreadyRemoved
	}

	s.log.InfoContext(ctx, "notification removed from inbox",
		slog.String("notification_id", id.String()),
		slog.String("user_id", userID.String()),
	)
	return nil
}

// Delete removes the notification for everyone. Only the sender or an admin may delete.
func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID, actor Identity) error {
	n, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !n.CanDelete(actor.UserID, actor.IsAdmin) {
		return errCannotDelete
	}

	if err := s.notifications.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errNotificationNotFound
		}
		return fmt.Errorf("delete notification: %w", err)
	}

	s.log.InfoContext(ctx, "notification deleted",
		slog.String("notification_id", id.String()),
		slog.String("actor_id", actor.UserID.String()),
		slog.Bool("admin", actor.IsAdmin),
	)
	return nil
}

func (s *NotificationService) find(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errNotificationNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	return n, nil
}
