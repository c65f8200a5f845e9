package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	b "go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mdb "go.mongodb.org/mongo-driver/mongo"
	mdbopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sumire/notices/internal/domain"
)

type topicDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Kind        string    `bson:"type"`
	SecretID    *string   `bson:"secretId,omitempty"`
	Creator     string    `bson:"creator"`
	Members     []string  `bson:"members"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func newTopicDoc(t *domain.Topic) topicDoc {
	return topicDoc{
		ID:          idString(t.ID),
		Name:        t.Name,
		Description: t.Description,
		Kind:        string(t.Kind),
		SecretID:    t.SecretCode,
		Creator:     idString(t.CreatorID),
		Members:     idStrings(t.Members),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d topicDoc) toDomain() (domain.Topic, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return domain.Topic{}, err
	}
	creator, err := parseID(d.Creator)
	if err != nil {
		return domain.Topic{}, err
	}
	members, err := parseIDs(d.Members)
	if err != nil {
		return domain.Topic{}, err
	}
	return domain.Topic{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Kind:        domain.TopicKind(d.Kind),
		SecretCode:  d.SecretID,
		CreatorID:   creator,
		Members:     members,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// TopicRepository stores topics, with the member set embedded, in the "topics" collection.
type TopicRepository struct {
	coll *mdb.Collection
}

// NewTopicRepository creates a new TopicRepository.
func NewTopicRepository(db *mdb.Database) *TopicRepository {
	return &TopicRepository{coll: db.Collection(topicsCollection)}
}

// Create inserts a topic. Duplicate names and duplicate private secret codes are conflicts.
func (r *TopicRepository) Create(ctx context.Context, topic *domain.Topic) error {
	_, err := r.coll.InsertOne(ctx, newTopicDoc(topic))
	return mapError(err, "create topic")
}

// FindByID returns a topic with its member set.
func (r *TopicRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	return r.findOne(ctx, b.M{"_id": idString(id)}, fmt.Sprintf("find topic %s", id))
}

// FindPrivateBySecret returns the private topic with the given secret code.
func (r *TopicRepository) FindPrivateBySecret(ctx context.Context, secretCode string) (*domain.Topic, error) {
	return r.findOne(ctx, b.M{"type": string(domain.TopicKindPrivate), "secretId": secretCode}, "find private topic")
}

// SearchPublic lists public topics whose name contains fragment, case-insensitively.
// An empty fragment lists every public topic.
func (r *TopicRepository) SearchPublic(ctx context.Context, fragment string) ([]domain.Topic, error) {
	filter := b.M{"type": string(domain.TopicKindPublic)}
	if fragment != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(fragment), Options: "i"}
	}
	return r.find(ctx, filter, "search public topics")
}

// ListByCreator lists the topics created by userID.
func (r *TopicRepository) ListByCreator(ctx context.Context, userID uuid.UUID) ([]domain.Topic, error) {
	return r.find(ctx, b.M{"creator": idString(userID)}, "list topics by creator")
}

// ListByMember lists the topics userID belongs to.
func (r *TopicRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]domain.Topic, error) {
	return r.find(ctx, b.M{"members": idString(userID)}, "list topics by member")
}

// AddMember appends userID to the member set if absent. Reports false when already a member.
// The membership test and the append happen in a single conditional update.
func (r *TopicRepository) AddMember(ctx context.Context, topicID, userID uuid.UUID) (bool, error) {
	uid := idString(userID)
	res, err := r.coll.UpdateOne(ctx,
		b.M{"_id": idString(topicID), "members": b.M{"$ne": uid}},
		b.M{
			"$push": b.M{"members": uid},
			"$set":  b.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, mapError(err, "add topic member")
	}
	return res.ModifiedCount > 0, nil
}

// RemoveMember removes userID from the member set if present. Reports false when not a member.
func (r *TopicRepository) RemoveMember(ctx context.Context, topicID, userID uuid.UUID) (bool, error) {
	uid := idString(userID)
	res, err := r.coll.UpdateOne(ctx,
		b.M{"_id": idString(topicID), "members": uid},
		b.M{
			"$pull": b.M{"members": uid},
			"$set":  b.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, mapError(err, "remove topic member")
	}
	return res.ModifiedCount > 0, nil
}

func (r *TopicRepository) findOne(ctx context.Context, filter b.M, op string) (*domain.Topic, error) {
	var doc topicDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(err, op)
	}
	topic, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &topic, nil
}

func (r *TopicRepository) find(ctx context.Context, filter b.M, op string) ([]domain.Topic, error) {
	opts := mdbopts.Find().SetSort(b.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, op)
	}

	var docs []topicDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError(err, op)
	}

	topics := make([]domain.Topic, 0, len(docs))
	for _, d := range docs {
		topic, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		topics = append(topics, topic)
	}
	return topics, nil
}
