package http

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/application"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type ReviewHandler struct {
	service *application.ReviewService
}

func NewReviewHandler(service *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

type createReviewRequest struct {
	UserID    int    `json:"userId"`
	RoomID    int    `json:"roomId"`
	BookingID int    `json:"bookingId"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`

	CleanlinessRating int `json:"cleanlinessRating"`
	ComfortRating     int `json:"comfortRating"`
	LocationRating    int `json:"locationRating"`
	AmenitiesRating   int `json:"amenitiesRating"`
	ServiceRating     int `json:"serviceRating"`
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	review := &domain.Review{
		UserID:            req.UserID,
		RoomID:            req.RoomID,
		BookingID:         req.BookingID,
		Rating:            req.Rating,
		Title:             req.Title,
		Comment:           req.Comment,
		CleanlinessRating: req.CleanlinessRating,
		ComfortRating:     req.ComfortRating,
		LocationRating:    req.LocationRating,
		AmenitiesRating:   req.AmenitiesRating,
		ServiceRating:     req.ServiceRating,
	}

	if err := h.service.SubmitReview(review); err != nil {
		log.Printf("Error submitting review: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"review":  review,
		"message": "Review submitted and awaiting moderation",
	})
}

func (h *ReviewHandler) GetRoomReviews(c *fiber.Ctx) error {
	roomID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room id",
		})
	}

	reviews, stats, err := h.service.GetRoomReviews(roomID)
	if err != nil {
		log.Printf("Error listing reviews for room %d: %v", roomID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching reviews",
		})
	}

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"stats":   stats,
	})
}

func (h *ReviewHandler) MarkHelpful(c *fiber.Ctx) error {
	reviewID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review id",
		})
	}

	if err := h.service.MarkHelpful(reviewID); err != nil {
		log.Printf("Error marking review %d helpful: %v", reviewID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error recording helpful vote",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Thanks for your feedback",
	})
}

// Admin surface

func (h *ReviewHandler) GetPendingReviews(c *fiber.Ctx) error {
	reviews, err := h.service.GetPendingReviews()
	if err != nil {
		log.Printf("Error listing pending reviews: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching pending reviews",
		})
	}

	return c.JSON(reviews)
}

type moderateReviewRequest struct {
	Approve bool `json:"approve"`
}

func (h *ReviewHandler) ModerateReview(c *fiber.Ctx) error {
	reviewID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review id",
		})
	}

	var req moderateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.service.ModerateReview(reviewID, req.Approve); err != nil {
		log.Printf("Error moderating review %d: %v", reviewID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error moderating review",
		})
	}

	return c.JSON(fiber.Map{
		"id":       reviewID,
		"approved": req.Approve,
	})
}

type replyReviewRequest struct {
	Reply string `json:"reply"`
}

func (h *ReviewHandler) ReplyToReview(c *fiber.Ctx) error {
	reviewID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review id",
		})
	}

	var req replyReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.service.ReplyToReview(reviewID, req.Reply, time.Now()); err != nil {
		log.Printf("Error replying to review %d: %v", reviewID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Reply saved",
	})
}
