package handler

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sumire/notices/internal/domain"
	"github.com/sumire/notices/internal/service"
)

const (
	contextKeyIdentity = "identity"
)

var (
	errNoToken      = domain.NewError(domain.ErrUnauthorized, "Access denied. No token provided.")
	errInvalidToken = domain.NewError(domain.ErrUnauthorized, "Invalid or expired token.")
)

// TokenValidator validates access tokens.
type TokenValidator interface {
	ValidateToken(token string) (service.Identity, error)
}

// RequestLogger logs each HTTP request with structured fields.
func RequestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// resolve the status before the response is logged
				c.Error(err)
			}

			attrs := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			}
			if id, ok := GetIdentity(c); ok {
				attrs = append(attrs, "user_id", id.UserID.String())
			}
			log.InfoContext(c.Request().Context(), "http request", attrs...)

			return nil
		}
	}
}

// JWTAuth validates the Bearer token and injects the caller identity into echo context.
func JWTAuth(tokens TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return errNoToken
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
				return errNoToken
			}

			identity, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return errInvalidToken
			}

			c.Set(contextKeyIdentity, identity)
			return next(c)
		}
	}
}

// GetIdentity extracts the authenticated caller from echo context.
func GetIdentity(c echo.Context) (service.Identity, bool) {
	id, ok := c.Get(contextKeyIdentity).(service.Identity)
	return id, ok
}

// GetUserID extracts the authenticated user ID from echo context.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := GetIdentity(c)
	return id.UserID, ok
}

func requireIdentity(c echo.Context) (service.Identity, error) {
	id, ok := GetIdentity(c)
	if !ok {
		return service.Identity{}, errNoToken
	}
	return id, nil
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a valid id")
	}
	return id, nil
}
