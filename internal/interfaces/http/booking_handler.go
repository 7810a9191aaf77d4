package http

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/application"
)

type BookingHandler struct {
	service   *application.BookingService
	validator *application.Validator
}

func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{
		service:   service,
		validator: &application.Validator{},
	}
}

type createBookingRequest struct {
	UserID          int    `json:"userId"`
	RoomID          int    `json:"roomId"`
	CheckIn         string `json:"checkIn"`
	CheckOut        string `json:"checkOut"`
	Adults          int    `json:"adults"`
	Children        int    `json:"children"`
	CouponCode      string `json:"couponCode"`
	SpecialRequests string `json:"specialRequests"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.UserID <= 0 || req.RoomID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId and roomId are required",
		})
	}
	if req.Adults < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one adult is required",
		})
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid checkIn date, expected YYYY-MM-DD",
		})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid checkOut date, expected YYYY-MM-DD",
		})
	}
	if err := h.validator.ValidateStayDates(checkIn, checkOut, time.Now()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	booking, quote, err := h.service.CreateBooking(
		req.UserID, req.RoomID, checkIn, checkOut,
		req.Adults, req.Children, req.CouponCode, req.SpecialRequests,
		time.Now(),
	)
	if err != nil {
		log.Printf("Error creating booking: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"booking":        booking,
		"quote":          quote,
		"gatewayOrderId": booking.GatewayOrderID,
	})
}

type quoteRequest struct {
	UserID     int    `json:"userId"`
	RoomID     int    `json:"roomId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	CouponCode string `json:"couponCode"`
}

// QuoteBooking prices a stay without creating anything, for the checkout
// preview.
func (h *BookingHandler) QuoteBooking(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid checkIn date, expected YYYY-MM-DD",
		})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid checkOut date, expected YYYY-MM-DD",
		})
	}

	quote, err := h.service.QuoteBooking(req.UserID, req.RoomID, checkIn, checkOut, req.CouponCode, time.Now())
	if err != nil {
		log.Printf("Error quoting booking: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(quote)
}

type verifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpayOrderId"`
	GatewayPaymentID string `json:"razorpayPaymentId"`
	GatewaySignature string `json:"razorpaySignature"`
}

func (h *BookingHandler) VerifyPayment(c *fiber.Ctx) error {
	bookingID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking id",
		})
	}

	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.GatewaySignature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "razorpayOrderId, razorpayPaymentId and razorpaySignature are required",
		})
	}

	if err := h.service.VerifyPayment(bookingID, req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature); err != nil {
		log.Printf("Error verifying payment for booking %d: %v", bookingID, err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("Payment verification failed: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Payment verified, booking confirmed",
	})
}

type cancelBookingRequest struct {
	UserID int `json:"userId"`
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	bookingID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking id",
		})
	}

	var req cancelBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.service.CancelBooking(bookingID, req.UserID); err != nil {
		log.Printf("Error cancelling booking %d: %v", bookingID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Booking cancelled",
	})
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	bookingID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking id",
		})
	}
	userID, err := strconv.Atoi(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	booking, err := h.service.GetBooking(bookingID, userID)
	if err != nil {
		log.Printf("Error getting booking %d: %v", bookingID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	return c.JSON(booking)
}

func (h *BookingHandler) ListUserBookings(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	bookings, err := h.service.ListUserBookings(userID)
	if err != nil {
		log.Printf("Error listing bookings for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error fetching bookings",
		})
	}

	return c.JSON(bookings)
}
