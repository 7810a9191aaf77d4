package http

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	services "github.com/anshuman365/hotel-royal-orchid-management/internal/service"
)

type S3Handler struct {
	service *services.S3Service
}

func NewS3Handler(service *services.S3Service) *S3Handler {
	return &S3Handler{
		service: service,
	}
}

// HandleUploadFile stores a room or offer banner image in S3 and returns
// its public URL.
func (h *S3Handler) HandleUploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Printf("Failed to retrieve file %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Error retrieving file: %v", err),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Failed to open file %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Error opening file: %v", err),
		})
	}
	defer file.Close()

	url, err := services.UploadFile(h.service, file, fileHeader, true)
	if err != nil {
		log.Printf("Failed to upload file %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Error uploading file: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"url": url,
	})
}
