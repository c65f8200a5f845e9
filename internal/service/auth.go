package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sumire/notices/internal/domain"
)

//go:generate moq -out user_store_mock_test.go . UserStore

// UserStore defines the user data access interface consumed by AuthService.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpsertOAuth(ctx context.Context, user domain.User) (*domain.User, error)
	UpdateFullName(ctx context.Context, id uuid.UUID, fullName string, now time.Time) (*domain.User, error)
}

// AuthConfig holds token, password and OAuth settings.
type AuthConfig struct {
	JWTSecret       string
	JWTIssuer       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int
	AdminEmails     []string

	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string
	OAuthRedirectBase  string
}

// AuthService handles registration, login, tokens and profile updates.
type AuthService struct {
	users     UserStore
	cfg       AuthConfig
	jwtSecret []byte
	admins    []string
	oauth     map[domain.AuthProvider]*oauthProvider
	log       *slog.Logger
	now       func() time.Time
}

// NewAuthService creates a new AuthService. OAuth providers without credentials are disabled.
func NewAuthService(log *slog.Logger, users UserStore, cfg AuthConfig) *AuthService {
	admins := make([]string, 0, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		if e = domain.NormalizeEmail(e); e != "" {
			admins = append(admins, e)
		}
	}

	return &AuthService{
		users:     users,
		cfg:       cfg,
		jwtSecret: []byte(cfg.JWTSecret),
		admins:    admins,
		oauth:     newOAuthProviders(cfg),
		log:       log.With("service", "auth"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RegisterInput is the payload for password registration.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

func (in RegisterInput) validate() error {
	if in.FullName == "" {
		return domain.NewValidationError("fullName", "full name is required")
	}
	if in.Email == "" {
		return domain.NewValidationError("email", "email is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domain.NewValidationError("email", "email is invalid")
	}
	if in.Password == "" {
		return domain.NewValidationError("password", "password is required")
	}
	if len(in.Password) > 72 {
		return domain.NewValidationError("password", "password must be at most 72 bytes")
	}
	return nil
}

// Register creates a password account. The email is normalized before the uniqueness check.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = domain.NormalizeEmail(in.Email)
	if err := in.validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:               uuid.New(),
		Email:            in.Email,
		FullName:         in.FullName,
		PasswordHash:     string(hash),
		Provider:         domain.AuthProviderPassword,
		IsAdmin:          s.isAdminEmail(in.Email),
		SubscribedTopics: []uuid.UUID{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()), slog.Bool("admin", user.IsAdmin))
	return user, nil
}

// Login verifies email and password and issues a token pair. Unknown emails, wrong passwords
// and accounts without a password all return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if user.PasswordHash == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))
	return user, pair, nil
}

// RefreshAccessToken validates a refresh token and returns a new token pair. The user is
// reloaded so a removed account or changed admin flag takes effect.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	_, userID, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	return s.generateTokenPair(user)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the user's full name, the only mutable profile field.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, domain.NewValidationError("fullName", "Name is required to update")
	}

	user, err := s.users.UpdateFullName(ctx, userID, fullName, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *AuthService) isAdminEmail(email string) bool {
	return slices.Contains(s.admins, email)
}
