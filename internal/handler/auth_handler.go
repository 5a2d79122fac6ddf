package handler

import (
	"context"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/service"
	"github.com/Ankitkushwaha90/techforge/internal/utils"
)

// AuthHandler serves registration, sessions and profile management.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler instance.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the public auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
	router.Post("/refresh", h.refresh)
}

// RegisterProfile wires the authenticated profile routes.
func (h *AuthHandler) RegisterProfile(router fiber.Router) {
	router.Get("/", h.getProfile)
	router.Put("/", h.updateProfile)
	router.Post("/avatar", h.uploadAvatar)
	router.Post("/resume", h.uploadResume)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Register(c.Context(), payload)
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	case errors.Is(err, service.ErrUsernameTaken):
		return utils.SendError(c, fiber.StatusConflict, "username already taken")
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to register user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to register")
	}

	return utils.SendCreated(c, "account created", result)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Login(c.Context(), payload)
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid username or password")
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to log in user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to log in")
	}

	return utils.SendSuccess(c, "logged in", result)
}

func (h *AuthHandler) refresh(c *fiber.Ctx) error {
	var payload dto.RefreshRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Refresh(c.Context(), payload.RefreshToken)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid refresh token")
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to refresh session")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to refresh session")
	}

	return utils.SendSuccess(c, "session refreshed", result)
}

func (h *AuthHandler) getProfile(c *fiber.Ctx) error {
	result, err := h.service.GetProfile(c.Context(), userIDFromContext(c))
	if errors.Is(err, service.ErrUserNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch profile")
	}

	return utils.SendSuccess(c, "profile retrieved", result)
}

func (h *AuthHandler) updateProfile(c *fiber.Ctx) error {
	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.UpdateProfile(c.Context(), userIDFromContext(c), payload)
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to update profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	return utils.SendSuccess(c, "profile updated", result)
}

func (h *AuthHandler) uploadAvatar(c *fiber.Ctx) error {
	return h.uploadAsset(c, "avatar", h.service.UploadAvatar)
}

func (h *AuthHandler) uploadResume(c *fiber.Ctx) error {
	return h.uploadAsset(c, "resume", h.service.UploadResume)
}

func (h *AuthHandler) uploadAsset(c *fiber.Ctx, field string, upload func(ctx context.Context, userID uint, name string, file io.Reader) (dto.UserResponse, error)) error {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "missing "+field+" file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "failed to read uploaded file")
	}
	defer file.Close()

	result, err := upload(c.Context(), userIDFromContext(c), fileHeader.Filename, file)
	if errors.Is(err, service.ErrUserNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Str("field", field).Msg("failed to upload profile asset")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to upload file")
	}

	return utils.SendSuccess(c, field+" uploaded", result)
}
