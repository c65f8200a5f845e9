package handler

import (
	"github.com/labstack/echo/v4"
)

// Handlers bundles every route group mounted by Register.
type Handlers struct {
	Health        *HealthHandler
	Users         *UserHandler
	Topics        *TopicHandler
	Notifications *NotificationHandler
}

// Register mounts the API routes on e. Everything except registration, login, token refresh,
// OAuth and health requires a Bearer access token.
func Register(e *echo.Echo, h Handlers, tokens TokenValidator) {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api")
	auth := JWTAuth(tokens)

	users := api.Group("/users")
	users.POST("/register", h.Users.Register)
	users.POST("/login", h.Users.Login)
	users.POST("/refresh", h.Users.Refresh)
	users.GET("/oauth/:provider", h.Users.OAuthRedirect)
	users.GET("/oauth/:provider/callback", h.Users.OAuthCallback)
	users.GET("/me", h.Users.Me, auth)
	users.PUT("/me", h.Users.UpdateMe, auth)

	topics := api.Group("/topics", auth)
	topics.POST("", h.Topics.Create)
	topics.GET("/search", h.Topics.Search)
	topics.POST("/search", h.Topics.Search)
	topics.POST("/private/search", h.Topics.SearchPrivate)
	topics.POST("/join", h.Topics.Join)
	topics.POST("/unsubscribe", h.Topics.Unsubscribe)
	topics.GET("/subscribed", h.Topics.Subscribed)
	topics.GET("/my/topics", h.Topics.MyTopics)
	topics.GET("/:id", h.Topics.Details)
	topics.GET("/:id/subscribers", h.Topics.Subscribers)

	notifications := api.Group("/notifications", auth)
	notifications.POST("/send", h.Notifications.Send)
	notifications.GET("", h.Notifications.Inbox)
	notifications.GET("/sent", h.Notifications.Sent)
	notifications.GET("/:id", h.Notifications.Get)
	notifications.PATCH("/:id/mark-as-read", h.Notifications.MarkRead)
	notifications.PATCH("/:id/mark-as-unread", h.Notifications.MarkUnread)
	notifications.PATCH("/:id/delete-from-inbox", h.Notifications.RemoveFromInbox)
	notifications.DELETE("/:id", h.Notifications.Delete)
}

// NewEcho returns an echo instance with the shared validator and error handler installed.
func NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewAppValidator()
	e.HTTPErrorHandler = HTTPErrorHandler
	return e
}
