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

type userDoc struct {
	ID               string    `bson:"_id"`
	Email            string    `bson:"email"`
	FullName         string    `bson:"fullName"`
	PasswordHash     string    `bson:"passwordHash"`
	Provider         string    `bson:"provider"`
	IsAdmin          bool      `bson:"isAdmin"`
	SubscribedTopics []string  `bson:"subscribedTopics"`
	CreatedAt        time.Time `bson:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt"`
}

func newUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:               idString(u.ID),
		Email:            u.Email,
		FullName:         u.FullName,
		PasswordHash:     u.PasswordHash,
		Provider:         string(u.Provider),
		IsAdmin:          u.IsAdmin,
		SubscribedTopics: idStrings(u.SubscribedTopics),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (d userDoc) toDomain() (*domain.User, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}
	topics, err := parseIDs(d.SubscribedTopics)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:               id,
		Email:            d.Email,
		FullName:         d.FullName,
		PasswordHash:     d.PasswordHash,
		Provider:         domain.AuthProvider(d.Provider),
		IsAdmin:          d.IsAdmin,
		SubscribedTopics: topics,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}, nil
}

// UserRepository stores users in the "users" collection.
type UserRepository struct {
	coll *mdb.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mdb.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// Create inserts a new user. Returns a conflict error if the email is already registered.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.coll.InsertOne(ctx, newUserDoc(user))
	return mapError(err, "create user")
}

// FindByID retrieves a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, b.M{"_id": idString(id)}, fmt.Sprintf("find user by id %s", id))
}

// FindByEmail retrieves a user by normalized email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, b.M{"email": email}, "find user by email")
}

// UpsertOAuth creates a user signing in through an OAuth provider, or refreshes the name of
// the existing account with the same email and provider. An email owned by an account of
// another provider yields domain.ErrEmailRegistered.
func (r *UserRepository) UpsertOAuth(ctx context.Context, user domain.User) (*domain.User, error) {
	update := b.M{
		"$set": b.M{"fullName": user.FullName, "updatedAt": user.UpdatedAt},
		"$setOnInsert": b.M{
			"_id":              idString(user.ID),
			"passwordHash":     "",
			"isAdmin":          user.IsAdmin,
			"subscribedTopics": []string{},
			"createdAt":        user.UpdatedAt,
		},
	}
	opts := mdbopts.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(mdbopts.After)

	// The filter's equality fields are copied into an inserted document. When the email exists
	// under another provider the insert hits the unique email index.
	filter := b.M{"email": user.Email, "provider": string(user.Provider)}

	var doc userDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if mdb.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("upsert user: %w", domain.ErrEmailRegistered)
	}
	if err != nil {
		return nil, mapError(err, "upsert user")
	}
	return doc.toDomain()
}

// UpdateFullName sets a user's display name and returns the updated record.
func (r *UserRepository) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string, now time.Time) (*domain.User, error) {
	opts := mdbopts.FindOneAndUpdate().SetReturnDocument(mdbopts.After)
	update := b.M{"$set": b.M{"fullName": fullName, "updatedAt": now}}

	var doc userDoc
	if err := r.coll.FindOneAndUpdate(ctx, b.M{"_id": idString(id)}, update, opts).Decode(&doc); err != nil {
		return nil, mapError(err, fmt.Sprintf("update user %s", id))
	}
	return doc.toDomain()
}

// ListProfiles returns the public profiles for ids, in the order of ids. Unknown ids are skipped.
func (r *UserRepository) ListProfiles(ctx context.Context, ids []uuid.UUID) ([]domain.UserProfile, error) {
	if len(ids) == 0 {
		return []domain.UserProfile{}, nil
	}

	opts := mdbopts.Find().SetProjection(b.M{"email": 1, "fullName": 1})
	cur, err := r.coll.Find(ctx, b.M{"_id": b.M{"$in": idStrings(ids)}}, opts)
	if err != nil {
		return nil, mapError(err, "list profiles")
	}

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError(err, "list profiles")
	}

	byID := make(map[string]userDoc, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}

	profiles := make([]domain.UserProfile, 0, len(docs))
	for _, id := range ids {
		if d, ok := byID[idString(id)]; ok {
			profiles = append(profiles, domain.UserProfile{ID: id, Email: d.Email, FullName: d.FullName})
		}
	}
	return profiles, nil
}

// AddSubscription records topicID in the user's subscribed topics if absent.
func (r *UserRepository) AddSubscription(ctx context.Context, userID, topicID uuid.UUID) error {
	_, err := r.coll.UpdateOne(ctx,
		b.M{"_id": idString(userID)},
		b.M{"$addToSet": b.M{"subscribedTopics": idString(topicID)}},
	)
	return mapError(err, "add subscription")
}

// RemoveSubscription drops topicID from the user's subscribed topics.
func (r *UserRepository) RemoveSubscription(ctx context.Context, userID, topicID uuid.UUID) error {
	_, err := r.coll.UpdateOne(ctx,
		b.M{"_id": idString(userID)},
		b.M{"$pull": b.M{"subscribedTopics": idString(topicID)}},
	)
	return mapError(err, "remove subscription")
}

func (r *UserRepository) findOne(ctx context.Context, filter b.M, op string) (*domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(err, op)
	}
	return doc.toDomain()
}
