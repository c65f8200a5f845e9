package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sumire/notices/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var topicColumns = []string{
	"t.id", "t.name", "t.description", "t.kind", "t.secret_code", "t.creator_id", "t.created_at", "t.updated_at",
}

// TopicRepository persists topics and their membership.
type TopicRepository struct {
	db *sqlx.DB
}

// NewTopicRepository creates a new TopicRepository.
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// Create inserts a topic. Duplicate names and duplicate private secret codes are conflicts.
func (r *TopicRepository) Create(ctx context.Context, topic *domain.Topic) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO topics (id, name, description, kind, secret_code, creator_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		topic.ID, topic.Name, topic.Description, topic.Kind, topic.SecretCode, topic.CreatorID, topic.CreatedAt, topic.UpdatedAt,
	)
	return mapError(err, "create topic")
}

// FindByID returns a topic with its member set.
func (r *TopicRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	topics, err := r.selectTopics(ctx, "find topic", psql.Select(topicColumns...).From("topics t").Where(sq.Eq{"t.id": id}))
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("find topic %s: %w", id, domain.ErrNotFound)
	}
	return &topics[0], nil
}

// FindPrivateBySecret returns the private topic with the given secret code.
func (r *TopicRepository) FindPrivateBySecret(ctx context.Context, secretCode string) (*domain.Topic, error) {
	q := psql.Select(topicColumns...).From("topics t").
		Where(sq.Eq{"t.kind": domain.TopicKindPrivate, "t.secret_code": secretCode})

	topics, err := r.selectTopics(ctx, "find private topic", q)
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("find private topic: %w", domain.ErrNotFound)
	}
	return &topics[0], nil
}

// SearchPublic lists public topics whose name contains fragment, case-insensitively.
// An empty fragment lists every public topic.
func (r *TopicRepository) SearchPublic(ctx context.Context, fragment string) ([]domain.Topic, error) {
	q := psql.Select(topicColumns...).From("topics t").
		Where(sq.Eq{"t.kind": domain.TopicKindPublic}).
		OrderBy("t.created_at", "t.id")

	if fragment != "" {
		q = q.Where(sq.ILike{"t.name": "%" + escapeLike(fragment) + "%"})
	}

	return r.selectTopics(ctx, "search public topics", q)
}

// ListByCreator lists the topics created by userID.
func (r *TopicRepository) ListByCreator(ctx context.Context, userID uuid.UUID) ([]domain.Topic, error) {
	q := psql.Select(topicColumns...).From("topics t").
		Where(sq.Eq{"t.creator_id": userID}).
		OrderBy("t.created_at", "t.id")

	return r.selectTopics(ctx, "list topics by creator", q)
}

// ListByMember lists the topics userID belongs to, in join order.
func (r *TopicRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]domain.Topic, error) {
	q := psql.Select(topicColumns...).From("topics t").
		Join("topic_members m ON m.topic_id = t.id").
		Where(sq.Eq{"m.user_id": userID}).
		OrderBy("m.seq")

	return r.selectTopics(ctx, "list topics by member", q)
}

// AddMember adds userID to the topic if absent. Reports false when already a member.
func (r *TopicRepository) AddMember(ctx context.Context, topicID, userID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO topic_members (topic_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (topic_id, user_id) DO NOTHING`,
		topicID, userID,
	)
	if err != nil {
		return false, mapError(err, "add topic member")
	}
	return rowsAffected(res)
}

// RemoveMember removes userID from the topic if present. Reports false when not a member.
func (r *TopicRepository) RemoveMember(ctx context.Context, topicID, userID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM topic_members WHERE topic_id = $1 AND user_id = $2`,
		topicID, userID,
	)
	if err != nil {
		return false, mapError(err, "remove topic member")
	}
	return rowsAffected(res)
}

func (r *TopicRepository) selectTopics(ctx context.Context, op string, q sq.SelectBuilder) ([]domain.Topic, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	topics := []domain.Topic{}
	if err := r.db.SelectContext(ctx, &topics, query, args...); err != nil {
		return nil, mapError(err, op)
	}

	if err := r.loadMembers(ctx, topics); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return topics, nil
}

type memberRow struct {
	TopicID uuid.UUID `db:"topic_id"`
	UserID  uuid.UUID `db:"user_id"`
}

// loadMembers fills Members for every topic with one batched query.
func (r *TopicRepository) loadMembers(ctx context.Context, topics []domain.Topic) error {
	if len(topics) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(topics))
	index := make(map[uuid.UUID]int, len(topics))
	for i := range topics {
		ids[i] = topics[i].ID
		index[topics[i].ID] = i
		topics[i].Members = []uuid.UUID{}
	}

	query, args, err := sqlx.In(`SELECT topic_id, user_id FROM topic_members WHERE topic_id IN (?) ORDER BY seq`, ids)
	if err != nil {
		return fmt.Errorf("build members query: %w", err)
	}

	var rows []memberRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return mapError(err, "load members")
	}

	for _, row := range rows {
		i := index[row.TopicID]
		topics[i].Members = append(topics[i].Members, row.UserID)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
