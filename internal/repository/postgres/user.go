package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sumire/notices/internal/domain"
)

const userColumns = `id, email, full_name, password_hash, provider, is_admin, created_at, updated_at`

// UserRepository handles user data access operations.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Returns a conflict error if the email is already registered.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, full_name, password_hash, provider, is_admin, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.FullName, user.PasswordHash, user.Provider, user.IsAdmin, user.CreatedAt, user.UpdatedAt,
	)
	return mapError(err, "create user")
}

// FindByID retrieves a user by their ID, including the topics they are subscribed to.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("find user by id %s", id))
	}

	if err := r.loadSubscriptions(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves a user by normalized email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, mapError(err, "find user by email")
	}

	if err := r.loadSubscriptions(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertOAuth creates a user signing in through an OAuth provider, or refreshes the name of
// the existing account with the same email and provider. The admin flag is never touched.
// An email owned by an account of another provider yields domain.ErrEmailRegistered.
func (r *UserRepository) UpsertOAuth(ctx context.Context, user domain.User) (*domain.User, error) {
	var result domain.User
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (id, email, full_name, provider, is_admin, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 ON CONFLICT (email)
		 DO UPDATE SET full_name = EXCLUDED.full_name,
		               updated_at = EXCLUDED.updated_at
		 WHERE users.provider = EXCLUDED.provider
		 RETURNING `+userColumns,
		user.ID, user.Email, user.FullName, user.Provider, user.IsAdmin, user.UpdatedAt,
	).StructScan(&result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("upsert user: %w", domain.ErrEmailRegistered)
	}
	if err != nil {
		return nil, mapError(err, "upsert user")
	}

	if err := r.loadSubscriptions(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateFullName sets a user's display name and returns the updated record.
func (r *UserRepository) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string, now time.Time) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowxContext(ctx,
		`UPDATE users SET full_name = $2, updated_at = $3 WHERE id = $1 RETURNING `+userColumns,
		id, fullName, now,
	).StructScan(&user)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("update user %s", id))
	}

	if err := r.loadSubscriptions(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListProfiles returns the public profiles for ids, in the order of ids. Unknown ids are skipped.
func (r *UserRepository) ListProfiles(ctx context.Context, ids []uuid.UUID) ([]domain.UserProfile, error) {
	if len(ids) == 0 {
		return []domain.UserProfile{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, email, full_name FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build profiles query: %w", err)
	}

	var rows []domain.UserProfile
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, mapError(err, "list profiles")
	}

	byID := make(map[uuid.UUID]domain.UserProfile, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}

	profiles := make([]domain.UserProfile, 0, len(rows))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}

// AddSubscription is a no-op: subscriptions are read from topic_members.
func (r *UserRepository) AddSubscription(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

// RemoveSubscription is a no-op: subscriptions are read from topic_members.
func (r *UserRepository) RemoveSubscription(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

// Ping checks database connectivity.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *UserRepository) loadSubscriptions(ctx context.Context, user *domain.User) error {
	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids,
		`SELECT topic_id FROM topic_members WHERE user_id = $1 ORDER BY seq`, user.ID)
	if err != nil {
		return mapError(err, fmt.Sprintf("load subscriptions of user %s", user.ID))
	}
	user.SubscribedTopics = ids
	return nil
}
