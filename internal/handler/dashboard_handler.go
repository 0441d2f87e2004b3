package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	stats, err := h.dashboardService.Get(c.UserContext(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(stats, ""))
}
