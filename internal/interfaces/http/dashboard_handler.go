package http

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/application"
)

type DashboardHandler struct {
	service *application.DashboardService
}

func NewDashboardHandler(service *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(time.Now())
	if err != nil {
		log.Printf("Error computing dashboard stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error computing dashboard stats",
		})
	}

	return c.JSON(stats)
}
