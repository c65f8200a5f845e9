package mongodb

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	mdb "go.mongodb.org/mongo-driver/mongo"

	"github.com/sumire/notices/internal/config"
	"github.com/sumire/notices/internal/domain"
)

var (
	once      sync.Once
	sharedURI string
	initErr   error
)

// setupTestDB starts a shared MongoDB container once per test run and returns a fresh
// database with indexes in place, dropped via t.Cleanup.
func setupTestDB(t *testing.T) *mdb.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB integration test in short mode")
	}

	once.Do(func() {
		sharedURI, initErr = startContainer()
	})
	if initErr != nil {
		t.Fatalf("setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	store, err := Open(ctx, config.DatabaseConfig{
		MongoURI:      sharedURI,
		MongoDatabase: name,
		MongoTimeout:  10 * time.Second,
	})
	if err != nil {
		t.Fatalf("open test DB: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = store.Database().Drop(ctx)
		_ = store.Close(ctx)
	})

	return store.Database()
}

func startContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForListeningPort("27017/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port()), nil
}

func seedUser(t *testing.T, db *mdb.Database) *domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	id := uuid.New()
	user := &domain.User{
		ID:           id,
		Email:        fmt.Sprintf("user-%s@example.com", id),
		FullName:     "Test User",
		PasswordHash: "hash",
		Provider:     domain.AuthProviderPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedTopic(t *testing.T, db *mdb.Database, creatorID uuid.UUID, kind domain.TopicKind, secret string) *domain.Topic {
	t.Helper()

	topic, err := domain.NewTopic("topic-"+uuid.NewString(), "seeded", kind, secret, creatorID, time.Now().UTC())
	if err != nil {
		t.Fatalf("build topic: %v", err)
	}
	if err := NewTopicRepository(db).Create(context.Background(), topic); err != nil {
		t.Fatalf("seed topic: %v", err)
	}
	return topic
}
