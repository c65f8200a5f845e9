package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sumire/notices/internal/domain"
)

// recipientBatchSize keeps each recipient insert under PostgreSQL's 65535 bind parameter limit
// (three parameters per row).
const recipientBatchSize = 1000

var notificationColumns = []string{"n.id", "n.title", "n.message", "n.sender_id", "n.topic_id", "n.created_at"}

// NotificationRepository persists notifications and per-recipient state.
// Each recipient is a row in notification_recipients; read_at and deleted_at
// hold the recipient's read and removed flags.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create stores the notification and its recipient snapshot in one transaction.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return runInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO notifications (id, title, message, sender_id, topic_id, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			n.ID, n.Title, n.Message, n.SenderID, n.TopicID, n.CreatedAt,
		)
		if err != nil {
			return mapError(err, "create notification")
		}

		if len(n.Recipients) == 0 {
			return nil
		}

		for start := 0; start < len(n.Recipients); start += recipientBatchSize {
			end := min(start+recipientBatchSize, len(n.Recipients))

			ins := psql.Insert("notification_recipients").Columns("notification_id", "user_id", "position")
			for i := start; i < end; i++ {
				ins = ins.Values(n.ID, n.Recipients[i], i)
			}
			query, args, err := ins.ToSql()
			if err != nil {
				return fmt.Errorf("create notification: build recipients insert: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return mapError(err, "create notification recipients")
			}
		}
		return nil
	})
}

// FindByID returns a notification with its recipient, read and deleted sets.
func (r *NotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	q := psql.Select(notificationColumns...).From("notifications n").Where(sq.Eq{"n.id": id})

	ns, err := r.selectNotifications(ctx, "find notification", q)
	if err != nil {
		return nil, err
	}
	if len(ns) == 0 {
		return nil, fmt.Errorf("find notification %s: %w", id, domain.ErrNotFound)
	}
	return ns[0], nil
}

// ListInbox lists notifications userID received and has not removed, newest first.
func (r *NotificationRepository) ListInbox(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	q := psql.Select(notificationColumns...).From("notifications n").
		Join("notification_recipients nr ON nr.notification_id = n.id").
		Where(sq.Eq{"nr.user_id": userID, "nr.deleted_at": nil}).
		OrderBy("n.created_at DESC", "n.id")

	return r.selectNotifications(ctx, "list inbox", q)
}

// ListSent lists notifications sent by senderID, newest first.
func (r *NotificationRepository) ListSent(ctx context.Context, senderID uuid.UUID) ([]*domain.Notification, error) {
	q := psql.Select(notificationColumns...).From("notifications n").
		Where(sq.Eq{"n.sender_id": senderID}).
		OrderBy("n.created_at DESC", "n.id")

	return r.selectNotifications(ctx, "list sent", q)
}

// MarkRead flags the notification read for userID. Already-read is a no-op.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notification_recipients SET read_at = NOW()
		 WHERE notification_id = $1 AND user_id = $2 AND read_at IS NULL`,
		id, userID,
	)
	return mapError(err, "mark notification read")
}

// MarkUnread clears userID's read flag. Already-unread is a no-op.
func (r *NotificationRepository) MarkUnread(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notification_recipients SET read_at = NULL
		 WHERE notification_id = $1 AND user_id = $2 AND read_at IS NOT NULL`,
		id, userID,
	)
	return mapError(err, "mark notification unread")
}

// MarkDeleted removes the notification from userID's inbox. Reports false when userID is not
// a recipient or already removed it.
func (r *NotificationRepository) MarkDeleted(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notification_recipients SET deleted_at = NOW()
		 WHERE notification_id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		id, userID,
	)
	if err != nil {
		return false, mapError(err, "remove notification from inbox")
	}
	return rowsAffected(res)
}

// Delete removes the notification and all recipient state.
func (r *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete notification")
	}

	ok, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *NotificationRepository) selectNotifications(ctx context.Context, op string, q sq.SelectBuilder) ([]*domain.Notification, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	ns := []*domain.Notification{}
	if err := r.db.SelectContext(ctx, &ns, query, args...); err != nil {
		return nil, mapError(err, op)
	}

	if err := r.loadRecipients(ctx, ns); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ns, nil
}

type recipientRow struct {
	NotificationID uuid.UUID    `db:"notification_id"`
	UserID         uuid.UUID    `db:"user_id"`
	ReadAt         sql.NullTime `db:"read_at"`
	DeletedAt      sql.NullTime `db:"deleted_at"`
}

// loadRecipients fills the three per-user sets for every notification with one batched query.
// ReadBy and DeletedBy are ordered by when the flag was set.
func (r *NotificationRepository) loadRecipients(ctx context.Context, ns []*domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(ns))
	index := make(map[uuid.UUID]*domain.Notification, len(ns))
	for i, n := range ns {
		ids[i] = n.ID
		index[n.ID] = n
		n.Recipients = []uuid.UUID{}
		n.ReadBy = []uuid.UUID{}
		n.DeletedBy = []uuid.UUID{}
	}

	query, args, err := sqlx.In(
		`SELECT notification_id, user_id, read_at, deleted_at
		 FROM notification_recipients WHERE notification_id IN (?) ORDER BY position`, ids)
	if err != nil {
		return fmt.Errorf("build recipients query: %w", err)
	}

	var rows []recipientRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return mapError(err, "load recipients")
	}

	readOrder := make(map[uuid.UUID][]recipientRow)
	deletedOrder := make(map[uuid.UUID][]recipientRow)
	for _, row := range rows {
		n := index[row.NotificationID]
		n.Recipients = append(n.Recipients, row.UserID)
		if row.ReadAt.Valid {
			readOrder[n.ID] = append(readOrder[n.ID], row)
		}
		if row.DeletedAt.Valid {
			deletedOrder[n.ID] = append(deletedOrder[n.ID], row)
		}
	}

	for id, rs := range readOrder {
		sortByTime(rs, func(r recipientRow) sql.NullTime { return r.ReadAt })
		for _, row := range rs {
			index[id].ReadBy = append(index[id].ReadBy, row.UserID)
		}
	}
	for id, rs := range deletedOrder {
		sortByTime(rs, func(r recipientRow) sql.NullTime { return r.DeletedAt })
		for _, row := range rs {
			index[id].DeletedBy = append(index[id].DeletedBy, row.UserID)
		}
	}
	return nil
}

func rowsAffected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func sortByTime(rows []recipientRow, at func(recipientRow) sql.NullTime) {
	slices.SortStableFunc(rows, func(a, b recipientRow) int {
		return at(a).Time.Compare(at(b).Time)
	})
}
