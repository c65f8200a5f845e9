package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sumire/notices/internal/domain"
	"github.com/sumire/notices/internal/service"
)

var (
	errBadNameFilter      = domain.NewValidationError("name", "Invalid name format. Must be a string.")
	errBadSecretFilter    = domain.NewValidationError("secretId", "Valid secretId is required to search private topics.")
	errNoPublicTopics     = domain.NewError(domain.ErrNotFound, "No public topics found matching the search criteria.")
	errNoCreatedTopics    = domain.NewError(domain.ErrNotFound, "You have not created any topics.")
	errNoSubscribedTopics = domain.NewError(domain.ErrNotFound, "You are not subscribed to any topics.")
)

// TopicHandler handles topic endpoints.
type TopicHandler struct {
	topics *service.TopicService
}

// NewTopicHandler creates a new TopicHandler.
func NewTopicHandler(topics *service.TopicService) *TopicHandler {
	return &TopicHandler{topics: topics}
}

// topicView is the JSON shape of a topic. The secret code is only set for the creator.
type topicView struct {
	domain.Topic
	SecretID        *string `json:"secretId,omitempty"`
	SubscriberCount *int    `json:"subscriberCount,omitempty"`
}

func viewTopic(t domain.Topic, viewer uuid.UUID) topicView {
	v := topicView{Topic: t}
	if t.IsCreator(viewer) && t.SecretCode != nil {
		code := *t.SecretCode
		v.SecretID = &code
	}
	return v
}

func viewTopics(ts []domain.Topic, viewer uuid.UUID) []topicView {
	out := make([]topicView, 0, len(ts))
	for _, t := range ts {
		out = append(out, viewTopic(t, viewer))
	}
	return out
}

type createTopicRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required"`
	SecretID    string `json:"secretId"`
}

type topicRefRequest struct {
	TopicID string `json:"topicId" validate:"required,uuid"`
}

type privateSearchRequest struct {
	SecretID string `json:"secretId"`
}

// Create creates a topic owned by the caller.
func (h *TopicHandler) Create(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req createTopicRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return domain.NewValidationError(fieldOf(err), "Name and type are required.")
	}

	topic, err := h.topics.Create(c.Request().Context(), service.CreateTopicInput{
		Name:        req.Name,
		Description: req.Description,
		Kind:        domain.TopicKind(req.Type),
		SecretCode:  req.SecretID,
	}, identity.UserID)
	if err != nil {
		return err
	}

	return JSONMessage(c, http.StatusCreated, "Topic created successfully", viewTopic(*topic, identity.UserID))
}

// Search finds public topics by name fragment. GET reads ?name=, POST reads {"name": "..."}.
func (h *TopicHandler) Search(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	fragment, err := searchFragment(c)
	if err != nil {
		return err
	}

	topics, err := h.topics.SearchPublic(c.Request().Context(), fragment)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		return errNoPublicTopics
	}

	return JSONList(c, http.StatusOK, viewTopics(topics, identity.UserID))
}

func searchFragment(c echo.Context) (string, error) {
	if c.Request().Method == http.MethodGet {
		return checkNameFilter(c.QueryParam("name"))
	}

	var body struct {
		Name json.RawMessage `json:"name"`
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput)
	}
	if len(body.Name) == 0 || string(body.Name) == "null" {
		return "", nil
	}

	var name string
	if err := json.Unmarshal(body.Name, &name); err != nil {
		return "", errBadNameFilter
	}
	return checkNameFilter(name)
}

// checkNameFilter rejects a name made only of whitespace. An absent or empty name lists
// every public topic.
func checkNameFilter(name string) (string, error) {
	if name != "" && strings.TrimSpace(name) == "" {
		return "", errBadNameFilter
	}
	return name, nil
}

// SearchPrivate finds a private topic by its secret code.
func (h *TopicHandler) SearchPrivate(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req privateSearchRequest
	if err := c.Bind(&req); err != nil {
		return errBadSecretFilter
	}

	topic, err := h.topics.SearchPrivateBySecret(c.Request().Context(), req.SecretID)
	if err != nil {
		return err
	}

	return JSON(c, http.StatusOK, viewTopic(*topic, identity.UserID))
}

// Join adds the caller to a topic.
func (h *TopicHandler) Join(c echo.Context) error {
	identity, topicID, err := h.topicRef(c)
	if err != nil {
		return err
	}

	topic, err := h.topics.Join(c.Request().Context(), topicID, identity.UserID)
	if err != nil {
		return err
	}

	return JSONMessage(c, http.StatusOK, "Joined topic successfully.", viewTopic(*topic, identity.UserID))
}

// Unsubscribe removes the caller from a topic.
func (h *TopicHandler) Unsubscribe(c echo.Context) error {
	identity, topicID, err := h.topicRef(c)
	if err != nil {
		return err
	}

	topic, err := h.topics.Unsubscribe(c.Request().Context(), topicID, identity.UserID)
	if err != nil {
		return err
	}

	return JSONMessage(c, http.StatusOK, "Unsubscribed from topic successfully.", viewTopic(*topic, identity.UserID))
}

func (h *TopicHandler) topicRef(c echo.Context) (service.Identity, uuid.UUID, error) {
	identity, err := requireIdentity(c)
	if err != nil {
		return service.Identity{}, uuid.Nil, err
	}

	var req topicRefRequest
	if err := bindAndValidate(c, &req); err != nil {
		return service.Identity{}, uuid.Nil, err
	}

	return identity, uuid.MustParse(req.TopicID), nil
}

// Details returns a topic with its subscriber count.
func (h *TopicHandler) Details(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	topicID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	details, err := h.topics.GetDetails(c.Request().Context(), topicID)
	if err != nil {
		return err
	}

	v := viewTopic(details.Topic, identity.UserID)
	v.SubscriberCount = &details.SubscriberCount
	return JSON(c, http.StatusOK, v)
}

// MyTopics lists the topics the caller created.
func (h *TopicHandler) MyTopics(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	topics, err := h.topics.ListCreatedBy(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		return errNoCreatedTopics
	}

	return JSONList(c, http.StatusOK, viewTopics(topics, identity.UserID))
}

// Subscribed lists the topics the caller is a member of.
func (h *TopicHandler) Subscribed(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	topics, err := h.topics.ListSubscribedBy(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		return errNoSubscribedTopics
	}

	return JSONList(c, http.StatusOK, viewTopics(topics, identity.UserID))
}

// Subscribers lists member profiles. Creator only.
func (h *TopicHandler) Subscribers(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	topicID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	profiles, err := h.topics.ListSubscribers(c.Request().Context(), topicID, identity.UserID)
	if err != nil {
		return err
	}

	return JSONList(c, http.StatusOK, profiles)
}

func fieldOf(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	return "name"
}
