package http

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/application"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type ChatbotHandler struct {
	service *application.ConciergeService
}

func NewChatbotHandler(service *application.ConciergeService) *ChatbotHandler {
	return &ChatbotHandler{
		service: service,
	}
}

func (h *ChatbotHandler) Chat(c *fiber.Ctx) error {
	var req domain.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing chat body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	response, err := h.service.ProcessMessage(&req)
	if err != nil {
		log.Printf("Error processing chat message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(response)
}

func (h *ChatbotHandler) GetConversation(c *fiber.Ctx) error {
	conversationID := c.Params("id")
	if conversationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Conversation id is required",
		})
	}

	conversation, err := h.service.GetConversation(conversationID)
	if err != nil {
		log.Printf("Error getting conversation %s: %v", conversationID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Conversation not found",
		})
	}

	return c.JSON(conversation)
}
