package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/service"
	"github.com/Ankitkushwaha90/techforge/internal/utils"
)

// ResourceHandler serves the downloadable resource endpoints.
type ResourceHandler struct {
	service service.ResourceService
	logger  zerolog.Logger
}

// NewResourceHandler constructs the handler instance.
func NewResourceHandler(service service.ResourceService, logger zerolog.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		logger:  logger.With().Str("component", "resource_handler").Logger(),
	}
}

// Register wires the resource routes. Downloads require auth so the
// access can be attributed; the listing is public.
func (h *ResourceHandler) Register(public fiber.Router, protected fiber.Router) {
	public.Get("/", h.list)
	protected.Get("/:id/download", h.download)
	protected.Post("/", h.upload)
}

func (h *ResourceHandler) list(c *fiber.Ctx) error {
	result, err := h.service.List(c.Context(), c.Query("category"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list resources")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list resources")
	}

	return utils.SendSuccess(c, "resources retrieved", result)
}

func (h *ResourceHandler) download(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid resource id")
	}

	result, err := h.service.Download(c.Context(), id, userIDFromContext(c))
	if errors.Is(err, service.ErrResourceNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "resource not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Uint("resource_id", id).Msg("failed to resolve download")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve download")
	}

	return utils.SendSuccess(c, "download ready", result)
}

func (h *ResourceHandler) upload(c *fiber.Ctx) error {
	req := service.ResourceUploadRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		DownloadURL: c.FormValue("download_url"),
	}

	fileHeader, err := c.FormFile("file")
	if err != nil && req.DownloadURL == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "a file or download url is required")
	}

	var result interface{}
	if fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "failed to read uploaded file")
		}
		defer file.Close()

		req.FileName = fileHeader.Filename
		result, err = h.service.Upload(c.Context(), req, file)
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
		}
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to upload resource")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to upload resource")
		}
	} else {
		result, err = h.service.Upload(c.Context(), req, nil)
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
		}
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to create resource")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create resource")
		}
	}

	return utils.SendCreated(c, "resource created", result)
}
