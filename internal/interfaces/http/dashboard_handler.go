package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/gst-invoicing-api/internal/application/analytics"
)

// DashboardHandler serves the factory statistics.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log zerolog.Logger
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetFactoryDashboard godoc
// @Summary      Revenue, invoice count and six-month sales chart of a factory
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        factoryId  path  string  true  "factory id"
// @Success      200  {object}  dto.FactoryDashboardDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/factories/{factoryId}/dashboard [get]
func (h *DashboardHandler) GetFactoryDashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetFactoryDashboard(c.UserContext(), GetUserID(c), c.Params("factoryId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
