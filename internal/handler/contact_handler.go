package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/service"
	"github.com/Ankitkushwaha90/techforge/internal/utils"
)

// ContactHandler serves the contact form endpoint.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler constructs the handler instance.
func NewContactHandler(service service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires the public form endpoint and the authenticated
// message-management endpoints.
func (h *ContactHandler) Register(public, protected fiber.Router) {
	public.Post("/", h.submit)
	protected.Get("/messages", h.listMessages)
	protected.Post("/messages/:id/resolve", h.resolveMessage)
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	var payload dto.ContactRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Submit(c.Context(), payload)
	switch {
	case errors.Is(err, service.ErrContactSpam):
		// Spam is acknowledged as if accepted so bots learn nothing.
		return utils.SendSuccess(c, "message received", dto.ContactResponse{Status: "received"})
	case errors.Is(err, service.ErrContactDuplicate):
		return utils.SendError(c, fiber.StatusTooManyRequests, "duplicate submission, please wait")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to store contact submission")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit message")
	}

	return utils.SendCreated(c, "message received", result)
}

func (h *ContactHandler) listMessages(c *fiber.Ctx) error {
	onlyUnresolved := c.Query("unresolved") == "true"

	result, err := h.service.List(c.Context(), onlyUnresolved)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list contact messages")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list messages")
	}

	return utils.SendSuccess(c, "contact messages retrieved", result)
}

func (h *ContactHandler) resolveMessage(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid message id")
	}

	err = h.service.Resolve(c.Context(), id)
	if errors.Is(err, service.ErrContactNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "message not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Uint("contact_id", id).Msg("failed to resolve contact message")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve message")
	}

	return utils.SendSuccess(c, "message resolved", nil)
}
