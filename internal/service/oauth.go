package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	googleOAuth "golang.org/x/oauth2/google"

	"github.com/sumire/notices/internal/domain"
)

const (
	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	githubUserURL       = "https://api.github.com/user"
	githubUserEmailsURL = "https://api.github.com/user/emails"
	githubAcceptHeader  = "application/vnd.github.v3+json"
)

type oauthProfile struct {
	Email string
	Name  string
}

type oauthProvider struct {
	config *oauth2.Config
	fetch  func(ctx context.Context, client *http.Client) (*oauthProfile, error)
}

func newOAuthProviders(cfg AuthConfig) map[domain.AuthProvider]*oauthProvider {
	base := strings.TrimRight(cfg.OAuthRedirectBase, "/")
	providers := make(map[domain.AuthProvider]*oauthProvider, 2)

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		providers[domain.AuthProviderGoogle] = &oauthProvider{
			config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     googleOAuth.Endpoint,
				Scopes:       []string{"openid", "profile", "email"},
				RedirectURL:  base + "/api/users/oauth/google/callback",
			},
			fetch: fetchGoogleProfile(googleUserInfoURL),
		}
	}
	if cfg.GitHubClientID != "" && cfg.GitHubClientSecret != "" {
		providers[domain.AuthProviderGitHub] = &oauthProvider{
			config: &oauth2.Config{
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				Endpoint:     github.Endpoint,
				Scopes:       []string{"user:email"},
				RedirectURL:  base + "/api/users/oauth/github/callback",
			},
			fetch: fetchGitHubProfile(githubUserURL, githubUserEmailsURL),
		}
	}
	return providers
}

func (s *AuthService) provider(name string) (domain.AuthProvider, *oauthProvider, error) {
	key := domain.AuthProvider(strings.ToLower(name))
	p, ok := s.oauth[key]
	if !ok {
		return "", nil, domain.NewError(domain.ErrNotFound, fmt.Sprintf("OAuth provider %q is not enabled", name))
	}
	return key, p, nil
}

// OAuthURL returns the consent page URL for provider.
func (s *AuthService) OAuthURL(provider, state string) (string, error) {
	_, p, err := s.provider(provider)
	if err != nil {
		return "", err
	}
	return p.config.AuthCodeURL(state), nil
}

// OAuthCallback exchanges the authorization code, upserts the user by verified email and issues
// a token pair. An existing account is only reused when it was created through the same provider.
func (s *AuthService) OAuthCallback(ctx context.Context, provider, code string) (*domain.User, *TokenPair, error) {
	key, p, err := s.provider(provider)
	if err != nil {
		return nil, nil, err
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s token exchange: %v", domain.ErrUnauthorized, key, err)
	}

	profile, err := p.fetch(ctx, p.config.Client(ctx, token))
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s profile: %w", key, err)
	}

	email := domain.NormalizeEmail(profile.Email)
	if email == "" {
		return nil, nil, domain.NewError(domain.ErrInvalidInput, "the OAuth account has no email address")
	}
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = email
	}

	now := s.now()
	user, err := s.users.UpsertOAuth(ctx, domain.User{
		ID:        uuid.New(),
		Email:     email,
		FullName:  name,
		Provider:  key,
		IsAdmin:   s.isAdminEmail(email),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("upsert %s user: %w", key, err)
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	s.log.InfoContext(ctx, "oauth sign-in", slog.String("provider", string(key)), slog.String("user_id", user.ID.String()))
	return user, pair, nil
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

var errUnverifiedEmail = domain.NewError(domain.ErrUnauthorized, "The OAuth account has no verified email address.")

func fetchGoogleProfile(userInfoURL string) func(context.Context, *http.Client) (*oauthProfile, error) {
	return func(ctx context.Context, client *http.Client) (*oauthProfile, error) {
		var info googleUserInfo
		if err := getJSON(ctx, client, userInfoURL, "", &info); err != nil {
			return nil, err
		}
		if !info.VerifiedEmail {
			return nil, errUnverifiedEmail
		}
		return &oauthProfile{Email: info.Email, Name: info.Name}, nil
	}
}

type githubUserInfo struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func fetchGitHubProfile(userURL, emailsURL string) func(context.Context, *http.Client) (*oauthProfile, error) {
	return func(ctx context.Context, client *http.Client) (*oauthProfile, error) {
		var info githubUserInfo
		if err := getJSON(ctx, client, userURL, githubAcceptHeader, &info); err != nil {
			return nil, err
		}

		name := info.Name
		if name == "" {
			name = info.Login
		}
		// The public profile email is not guaranteed to be verified; only the email list says so.
		var emails []githubEmail
		if err := getJSON(ctx, client, emailsURL, githubAcceptHeader, &emails); err != nil {
			return nil, err
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				return &oauthProfile{Email: e.Email, Name: name}, nil
			}
		}
		return nil, errUnverifiedEmail
	}
}

func getJSON(ctx context.Context, client *http.Client, url, accept string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
