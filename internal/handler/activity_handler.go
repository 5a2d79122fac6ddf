package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/service"
)

const defaultFeedDays = 7

// ActivityHandler serves the owner-scoped activity feed endpoints. The
// response payloads follow the wire contract consumed by the feed widget,
// not the shared API envelope.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler instance.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires the activity feed routes. Mutations accept POST only;
// other verbs are rejected with 405 by the router.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/mark-read/:id/", h.markRead)
	router.Post("/mark-all-read/", h.markAllRead)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	days, err := parseQueryInt(c, "days")
	if err != nil || c.Query("days") == "" {
		days = defaultFeedDays
	}

	req := dto.ActivityListRequest{
		Kind: c.Query("type", "all"),
		Days: days,
	}

	result, err := h.service.ListFiltered(c.Context(), userIDFromContext(c), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list activities")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load activities",
		})
	}

	return c.JSON(result)
}

func (h *ActivityHandler) markRead(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Activity not found",
		})
	}

	err = h.service.MarkRead(c.Context(), id, userIDFromContext(c))
	if errors.Is(err, service.ErrActivityNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Activity not found",
		})
	}
	if err != nil {
		h.logger.Error().Err(err).Uint("activity_id", id).Msg("failed to mark activity read")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update activity",
		})
	}

	return c.JSON(fiber.Map{"status": "success"})
}

func (h *ActivityHandler) markAllRead(c *fiber.Ctx) error {
	if err := h.service.MarkAllRead(c.Context(), userIDFromContext(c)); err != nil {
		h.logger.Error().Err(err).Msg("failed to mark all activities read")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update activities",
		})
	}

	return c.JSON(fiber.Map{"status": "success"})
}
