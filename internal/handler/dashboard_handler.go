package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/service"
	"github.com/Ankitkushwaha90/techforge/internal/utils"
)

// DashboardHandler serves the aggregated landing, dashboard and search
// endpoints backed by the upstream course API.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler instance.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires the dashboard routes.
func (h *DashboardHandler) Register(public fiber.Router, protected fiber.Router) {
	public.Get("/home", h.home)
	protected.Get("/dashboard", h.dashboard)
	protected.Get("/search", h.search)
	protected.Get("/recommendations", h.recommendations)
}

func (h *DashboardHandler) home(c *fiber.Ctx) error {
	result, err := h.service.Home(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build home page data")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load home data")
	}

	return utils.SendSuccess(c, "home data retrieved", fiber.Map{"featured_courses": result})
}

func (h *DashboardHandler) dashboard(c *fiber.Ctx) error {
	result, err := h.service.Dashboard(c.Context(), userIDFromContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", result)
}

func (h *DashboardHandler) search(c *fiber.Ctx) error {
	result, err := h.service.Search(c.Context(), userIDFromContext(c), c.Query("q"))
	if err != nil {
		h.logger.Error().Err(err).Str("query", c.Query("q")).Msg("search failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "search failed")
	}

	return utils.SendSuccess(c, "search results retrieved", result)
}

func (h *DashboardHandler) recommendations(c *fiber.Ctx) error {
	result, err := h.service.Recommendations(c.Context(), userIDFromContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build recommendations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load recommendations")
	}

	return utils.SendSuccess(c, "recommendations retrieved", result)
}
