package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sumire/notices/internal/domain"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenPair holds an access token and refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Identity is the authenticated caller carried by an access token.
type Identity struct {
	UserID  uuid.UUID
	IsAdmin bool
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Admin bool   `json:"adm,omitempty"`
	Type  string `json:"typ"`
}

func (s *AuthService) generateTokenPair(user *domain.User) (*TokenPair, error) {
	now := s.now()

	access, err := s.signToken(user, tokenTypeAccess, now, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.signToken(user, tokenTypeRefresh, now, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *AuthService) signToken(user *domain.User, typ string, now time.Time, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Admin: user.IsAdmin,
		Type:  typ,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// parseToken validates signature, expiry, issuer and token type, and returns the claims.
func (s *AuthService) parseToken(tokenString, wantType string) (*tokenClaims, uuid.UUID, error) {
	if tokenString == "" {
		return nil, uuid.Nil, fmt.Errorf("%w: token is empty", domain.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	},
		jwt.WithIssuer(s.cfg.JWTIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: parse token: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, uuid.Nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}
	if claims.Type != wantType {
		return nil, uuid.Nil, fmt.Errorf("%w: expected %s token, got %q", domain.ErrUnauthorized, wantType, claims.Type)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: invalid subject: %v", domain.ErrUnauthorized, err)
	}
	return claims, userID, nil
}

// ValidateToken validates an access token and returns the caller identity.
func (s *AuthService) ValidateToken(tokenString string) (Identity, error) {
	claims, userID, err := s.parseToken(tokenString, tokenTypeAccess)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: userID, IsAdmin: claims.Admin}, nil
}
