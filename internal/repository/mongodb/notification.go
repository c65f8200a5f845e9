package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	b "go.mongodb.org/mongo-driver/bson"
	mdb "go.mongodb.org/mongo-driver/mongo"
	mdbopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sumire/notices/internal/domain"
)

type notificationDoc struct {
	ID         string    `bson:"_id"`
	Title      string    `bson:"title"`
	Message    string    `bson:"message"`
	Sender     string    `bson:"sender"`
	Topic      string    `bson:"topic"`
	Recipients []string  `bson:"recipients"`
	ReadBy     []string  `bson:"readBy"`
	DeletedBy  []string  `bson:"deletedBy"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func newNotificationDoc(n *domain.Notification) notificationDoc {
	return notificationDoc{
		ID:         idString(n.ID),
		Title:      n.Title,
		Message:    n.Message,
		Sender:     idString(n.SenderID),
		Topic:      idString(n.TopicID),
		Recipients: idStrings(n.Recipients),
		ReadBy:     idStrings(n.ReadBy),
		DeletedBy:  idStrings(n.DeletedBy),
		CreatedAt:  n.CreatedAt,
	}
}

func (d notificationDoc) toDomain() (*domain.Notification, error) {
	n := &domain.Notification{Title: d.Title, Message: d.Message, CreatedAt: d.CreatedAt}

	var err error
	if n.ID, err = parseID(d.ID); err != nil {
		return nil, err
	}
	if n.SenderID, err = parseID(d.Sender); err != nil {
		return nil, err
	}
	if n.TopicID, err = parseID(d.Topic); err != nil {
		return nil, err
	}
	if n.Recipients, err = parseIDs(d.Recipients); err != nil {
		return nil, err
	}
	if n.ReadBy, err = parseIDs(d.ReadBy); err != nil {
		return nil, err
	}
	if n.DeletedBy, err = parseIDs(d.DeletedBy); err != nil {
		return nil, err
	}
	return n, nil
}

// NotificationRepository stores each notification, with its recipient, read and deleted sets,
// as a single document in the "notifications" collection.
type NotificationRepository struct {
	coll *mdb.Collection
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *mdb.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection(notificationsCollection)}
}

// Create inserts the notification document.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	_, err := r.coll.InsertOne(ctx, newNotificationDoc(n))
	return mapError(err, "create notification")
}

// FindByID returns a notification.
func (r *NotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	op := fmt.Sprintf("find notification %s", id)

	var doc notificationDoc
	if err := r.coll.FindOne(ctx, b.M{"_id": idString(id)}).Decode(&doc); err != nil {
		return nil, mapError(err, op)
	}
	n, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListInbox lists notifications userID received and has not removed, newest first.
func (r *NotificationRepository) ListInbox(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	uid := idString(userID)
	return r.find(ctx, b.M{"recipients": uid, "deletedBy": b.M{"$ne": uid}}, "list inbox")
}

// ListSent lists notifications sent by senderID, newest first.
func (r *NotificationRepository) ListSent(ctx context.Context, senderID uuid.UUID) ([]*domain.Notification, error) {
	return r.find(ctx, b.M{"sender": idString(senderID)}, "list sent")
}

// MarkRead adds userID to readBy. Already-read is a no-op.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	uid := idString(userID)
	_, err := r.coll.UpdateOne(ctx,
		b.M{"_id": idString(id), "recipients": uid},
		b.M{"$addToSet": b.M{"readBy": uid}},
	)
	return mapError(err, "mark notification read")
}

// MarkUnread removes userID from readBy. Already-unread is a no-op.
func (r *NotificationRepository) MarkUnread(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.coll.UpdateOne(ctx,
		b.M{"_id": idString(id)},
		b.M{"$pull": b.M{"readBy": idString(userID)}},
	)
	return mapError(err, "mark notification unread")
}

// MarkDeleted adds userID to deletedBy. Reports false when userID is not a recipient or
// already removed it.
func (r *NotificationRepository) MarkDeleted(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	uid := idString(userID)
	res, err := r.coll.UpdateOne(ctx,
		b.M{"_id": idString(id), "recipients": uid, "deletedBy": b.M{"$ne": uid}},
		b.M{"$push": b.M{"deletedBy": uid}},
	)
	if err != nil {
		return false, mapError(err, "remove notification from inbox")
	}
	return res.ModifiedCount > 0, nil
}

// Delete removes the notification document.
func (r *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, b.M{"_id": idString(id)})
	if err != nil {
		return mapError(err, "delete notification")
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *NotificationRepository) find(ctx context.Context, filter b.M, op string) ([]*domain.Notification, error) {
	opts := mdbopts.Find().SetSort(b.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, op)
	}

	var docs []notificationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError(err, op)
	}

	ns := make([]*domain.Notification, 0, len(docs))
	for _, d := range docs {
		n, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ns = append(ns, n)
	}
	return ns, nil
}
