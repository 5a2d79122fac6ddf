package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/service"
	"github.com/Ankitkushwaha90/techforge/internal/utils"
)

// ForumHandler serves the discussion board endpoints.
type ForumHandler struct {
	service service.ForumService
	logger  zerolog.Logger
}

// NewForumHandler constructs the handler instance.
func NewForumHandler(service service.ForumService, logger zerolog.Logger) *ForumHandler {
	return &ForumHandler{
		service: service,
		logger:  logger.With().Str("component", "forum_handler").Logger(),
	}
}

// Register wires the forum routes. Reads are public; writes require the
// auth middleware installed by the router.
func (h *ForumHandler) Register(public fiber.Router, protected fiber.Router) {
	public.Get("/posts", h.list)
	public.Get("/posts/:id", h.get)
	protected.Post("/posts", h.createPost)
	protected.Post("/posts/:id/replies", h.createReply)
}

func (h *ForumHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.ListPosts(c.Context(), c.Query("category"), page, pageSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list forum posts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list posts")
	}

	return utils.SendSuccess(c, "posts retrieved", result)
}

func (h *ForumHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid post id")
	}

	result, err := h.service.GetPost(c.Context(), id)
	if errors.Is(err, service.ErrPostNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "post not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Uint("post_id", id).Msg("failed to fetch post")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch post")
	}

	return utils.SendSuccess(c, "post retrieved", result)
}

func (h *ForumHandler) createPost(c *fiber.Ctx) error {
	var payload dto.ForumPostCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.CreatePost(c.Context(), userIDFromContext(c), payload)
	if isValidationError(err) {
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create forum post")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create post")
	}

	return utils.SendCreated(c, "post created", result)
}

func (h *ForumHandler) createReply(c *fiber.Ctx) error {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid post id")
	}

	var payload dto.ForumReplyCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.CreateReply(c.Context(), userIDFromContext(c), postID, payload)
	if isValidationError(err) {
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	}
	if errors.Is(err, service.ErrPostNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "post not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Uint("post_id", postID).Msg("failed to create reply")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create reply")
	}

	return utils.SendCreated(c, "reply created", result)
}
