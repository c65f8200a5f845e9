package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notification is a single broadcast from a topic creator to the topic's members.
// Recipients is fixed at send time; ReadBy and DeletedBy are subsets of it.
type Notification struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	Title      string      `json:"title" db:"title"`
	Message    string      `json:"message" db:"message"`
	SenderID   uuid.UUID   `json:"sender" db:"sender_id"`
	TopicID    uuid.UUID   `json:"topic" db:"topic_id"`
	Recipients []uuid.UUID `json:"recipients" db:"-"`
	ReadBy     []uuid.UUID `json:"readBy" db:"-"`
	DeletedBy  []uuid.UUID `json:"deletedBy" db:"-"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
}

// NewNotification builds a notification for topic sent by senderID. The recipient set is a
// snapshot of the topic's current members.
func NewNotification(topic *Topic, senderID uuid.UUID, title, message string, now time.Time) (*Notification, error) {
	if !topic.CanSend(senderID) {
		return nil, NewError(ErrForbidden, "You are not authorized to send notifications for this topic.")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewValidationError("title", "Title and message are required.")
	}
	if strings.TrimSpace(message) == "" {
		return nil, NewValidationError("message", "Title and message are required.")
	}

	return &Notification{
		ID:         uuid.New(),
		Title:      title,
		Message:    message,
		SenderID:   senderID,
		TopicID:    topic.ID,
		Recipients: topic.SnapshotMembers(),
		ReadBy:     []uuid.UUID{},
		DeletedBy:  []uuid.UUID{},
		CreatedAt:  now,
	}, nil
}

// IsRecipient reports whether userID was a member when the notification was sent.
func (n *Notification) IsRecipient(userID uuid.UUID) bool {
	return slices.Contains(n.Recipients, userID)
}

// IsReadBy reports whether userID has marked the notification read.
func (n *Notification) IsReadBy(userID uuid.UUID) bool {
	return slices.Contains(n.ReadBy, userID)
}

// IsDeletedBy reports whether userID removed the notification from their inbox.
func (n *Notification) IsDeletedBy(userID uuid.UUID) bool {
	return slices.Contains(n.DeletedBy, userID)
}

// InInbox reports whether the notification appears in userID's inbox.
func (n *Notification) InInbox(userID uuid.UUID) bool {
	return n.IsRecipient(userID) && !n.IsDeletedBy(userID)
}

// CanView reports whether userID may fetch the notification by id. The sender gets no
// exception: only recipients may view.
func (n *Notification) CanView(userID uuid.UUID) bool {
	return n.IsRecipient(userID)
}

// CanDelete reports whether the actor may hard-delete the notification.
func (n *Notification) CanDelete(actorID uuid.UUID, actorIsAdmin bool) bool {
	return actorIsAdmin || n.SenderID == actorID
}

// ForUser returns the notification annotated with userID's read state.
func (n *Notification) ForUser(userID uuid.UUID) InboxNotification {
	return InboxNotification{Notification: *n, IsRead: n.IsReadBy(userID)}
}

// InboxNotification is a notification as seen by one recipient.
type InboxNotification struct {
	Notification
	IsRead bool `json:"isRead"`
}

// SortNewestFirst orders notifications by creation time, newest first.
func SortNewestFirst(ns []*Notification) {
	slices.SortStableFunc(ns, func(a, b *Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
