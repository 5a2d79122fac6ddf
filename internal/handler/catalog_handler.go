package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/service"
	"github.com/Ankitkushwaha90/techforge/internal/utils"
)

// CatalogHandler serves the course catalog endpoints.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler constructs the handler instance.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("component", "catalog_handler").Logger(),
	}
}

// Register wires the catalog routes.
func (h *CatalogHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Get("/:slug", h.get)
	router.Put("/:slug", h.update)
	router.Delete("/:slug", h.delete)
	router.Get("/:slug/modules", h.listModules)
	router.Get("/:slug/modules/:moduleId", h.getModule)
	router.Put("/:slug/modules/:moduleId", h.updateModule)
	router.Delete("/:slug/modules/:moduleId", h.deleteModule)
	router.Post("/:courseId/modules", h.createModule)
	router.Get("/modules/:moduleId/contents", h.listContents)
	router.Post("/modules/:moduleId/contents", h.createContent)
	router.Put("/modules/:moduleId/contents/:contentId", h.updateContent)
	router.Delete("/modules/:moduleId/contents/:contentId", h.deleteContent)
}

func (h *CatalogHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.ListCourses(c.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list courses")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list courses")
	}

	return utils.SendSuccess(c, "courses retrieved", result)
}

func (h *CatalogHandler) get(c *fiber.Ctx) error {
	result, err := h.service.GetCourse(c.Context(), c.Params("slug"), userIDFromContext(c))
	if errors.Is(err, service.ErrCourseNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Str("slug", c.Params("slug")).Msg("failed to fetch course")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch course")
	}

	return utils.SendSuccess(c, "course retrieved", result)
}

func (h *CatalogHandler) getModule(c *fiber.Ctx) error {
	moduleID, err := parseUintParam(c, "moduleId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid module id")
	}

	result, err := h.service.GetModule(c.Context(), c.Params("slug"), moduleID, userIDFromContext(c))
	if errors.Is(err, service.ErrCourseNotFound) || errors.Is(err, service.ErrModuleNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "module not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Uint("module_id", moduleID).Msg("failed to fetch module")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch module")
	}

	return utils.SendSuccess(c, "module retrieved", result)
}

func (h *CatalogHandler) create(c *fiber.Ctx) error {
	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.CreateCourse(c.Context(), payload)
	if isValidationError(err) {
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create course")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create course")
	}

	return utils.SendCreated(c, "course created", result)
}

func (h *CatalogHandler) update(c *fiber.Ctx) error {
	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.UpdateCourse(c.Context(), c.Params("slug"), payload)
	if isValidationError(err) {
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	}
	if errors.Is(err, service.ErrCourseNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to update course")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update course")
	}

	return utils.SendSuccess(c, "course updated", result)
}

func (h *CatalogHandler) delete(c *fiber.Ctx) error {
	err := h.service.DeleteCourse(c.Context(), c.Params("slug"))
	if errors.Is(err, service.ErrCourseNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to delete course")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete course")
	}

	return utils.SendSuccess(c, "course deleted", nil)
}

func (h *CatalogHandler) createModule(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	var payload dto.ModuleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.CreateModule(c.Context(), courseID, payload)
	if isValidationError(err) {
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	}
	if errors.Is(err, service.ErrCourseNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create module")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create module")
	}

	return utils.SendCreated(c, "module created", result)
}

func (h *CatalogHandler) listModules(c *fiber.Ctx) error {
	result, err := h.service.ListModules(c.Context(), c.Params("slug"))
	if errors.Is(err, service.ErrCourseNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Str("slug", c.Params("slug")).Msg("failed to list modules")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list modules")
	}

	return utils.SendSuccess(c, "modules retrieved", result)
}

func (h *CatalogHandler) updateModule(c *fiber.Ctx) error {
	moduleID, err := parseUintParam(c, "moduleId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid module id")
	}

	var payload dto.ModuleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.UpdateModule(c.Context(), c.Params("slug"), moduleID, payload)
	if isValidationError(err) {
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	}
	if errors.Is(err, service.ErrCourseNotFound) || errors.Is(err, service.ErrModuleNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "module not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Uint("module_id", moduleID).Msg("failed to update module")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update module")
	}

	return utils.SendSuccess(c, "module updated", result)
}

func (h *CatalogHandler) deleteModule(c *fiber.Ctx) error {
	moduleID, err := parseUintParam(c, "moduleId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid module id")
	}

	err = h.service.DeleteModule(c.Context(), c.Params("slug"), moduleID)
	if errors.Is(err, service.ErrCourseNotFound) || errors.Is(err, service.ErrModuleNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "module not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Uint("module_id", moduleID).Msg("failed to delete module")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete module")
	}

	return utils.SendSuccess(c, "module deleted", nil)
}

func (h *CatalogHandler) listContents(c *fiber.Ctx) error {
	moduleID, err := parseUintParam(c, "moduleId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid module id")
	}

	result, err := h.service.ListContents(c.Context(), moduleID)
	if err != nil {
		h.logger.Error().Err(err).Uint("module_id", moduleID).Msg("failed to list contents")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list contents")
	}

	return utils.SendSuccess(c, "contents retrieved", result)
}

func (h *CatalogHandler) updateContent(c *fiber.Ctx) error {
	moduleID, err := parseUintParam(c, "moduleId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid module id")
	}
	contentID, err := parseUintParam(c, "contentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid content id")
	}

	var payload dto.ContentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.UpdateContent(c.Context(), moduleID, contentID, payload)
	if isValidationError(err) {
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	}
	if errors.Is(err, service.ErrContentNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "content not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Uint("content_id", contentID).Msg("failed to update content")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update content")
	}

	return utils.SendSuccess(c, "content updated", result)
}

func (h *CatalogHandler) deleteContent(c *fiber.Ctx) error {
	moduleID, err := parseUintParam(c, "moduleId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid module id")
	}
	contentID, err := parseUintParam(c, "contentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid content id")
	}

	err = h.service.DeleteContent(c.Context(), moduleID, contentID)
	if errors.Is(err, service.ErrContentNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "content not found")
	}
	if err != nil {
		h.logger.Error().Err(err).Uint("content_id", contentID).Msg("failed to delete content")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete content")
	}

	return utils.SendSuccess(c, "content deleted", nil)
}

func (h *CatalogHandler) createContent(c *fiber.Ctx) error {
	moduleID, err := parseUintParam(c, "moduleId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid module id")
	}

	var payload dto.ContentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.CreateContent(c.Context(), moduleID, payload)
	if isValidationError(err) {
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create content")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create content")
	}

	return utils.SendCreated(c, "content created", result)
}
