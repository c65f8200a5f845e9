package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sumire/notices/internal/service"
)

// NotificationHandler handles notification and inbox endpoints.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type sendRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	TopicID string `json:"topicId" validate:"required,uuid"`
}

// Send broadcasts a notification to a topic's members.
func (h *NotificationHandler) Send(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req sendRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	n, err := h.notifications.Send(c.Request().Context(), service.SendInput{
		TopicID: uuid.MustParse(req.TopicID),
		Title:   req.Title,
		Message: req.Message,
	}, identity.UserID)
	if err != nil {
		return err
	}

	return JSONMessage(c, http.StatusCreated, "Notification sent successfully!", n)
}

// Inbox lists the caller's inbox, newest first.
func (h *NotificationHandler) Inbox(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.notifications.Inbox(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return JSONList(c, http.StatusOK, items)
}

// Sent lists notifications the caller sent.
func (h *NotificationHandler) Sent(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	ns, err := h.notifications.Sent(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return JSONList(c, http.StatusOK, ns)
}

// Get returns a single notification with the caller's read flag.
func (h *NotificationHandler) Get(c echo.Context) error {
	identity, id, err := notificationRef(c)
	if err != nil {
		return err
	}

	item, err := h.notifications.Get(c.Request().Context(), id, identity.UserID)
	if err != nil {
		return err
	}

	return JSON(c, http.StatusOK, item)
}

// MarkRead marks a notification read for the caller.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	identity, id, err := notificationRef(c)
	if err != nil {
		return err
	}

	if err := h.notifications.MarkRead(c.Request().Context(), id, identity.UserID); err != nil {
		return err
	}

	return JSONMessage(c, http.StatusOK, "Notification marked as read!", nil)
}

// MarkUnread clears the caller's read flag.
func (h *NotificationHandler) MarkUnread(c echo.Context) error {
	identity, id, err := notificationRef(c)
	if err != nil {
		return err
	}

	if err := h.notifications.MarkUnread(c.Request().Context(), id, identity.UserID); err != nil {
		return err
	}

	return JSONMessage(c, http.StatusOK, "Notification marked as unread!", nil)
}

// RemoveFromInbox hides a notification from the caller's inbox.
func (h *NotificationHandler) RemoveFromInbox(c echo.Context) error {
	identity, id, err := notificationRef(c)
	if err != nil {
		return err
	}

	if err := h.notifications.RemoveFromInbox(c.Request().Context(), id, identity.UserID); err != nil {
		return err
	}

	return JSONMessage(c, http.StatusOK, "Notification removed from your inbox!", nil)
}

// Delete removes a notification for everyone. Sender or admin only.
func (h *NotificationHandler) Delete(c echo.Context) error {
	identity, id, err := notificationRef(c)
	if err != nil {
		return err
	}

	if err := h.notifications.Delete(c.Request().Context(), id, identity); err != nil {
		return err
	}

	return JSONMessage(c, http.StatusOK, "Notification deleted successfully!", nil)
}

func notificationRef(c echo.Context) (service.Identity, uuid.UUID, error) {
	identity, err := requireIdentity(c)
	if err != nil {
		return service.Identity{}, uuid.Nil, err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return service.Identity{}, uuid.Nil, err
	}
	return identity, id, nil
}
