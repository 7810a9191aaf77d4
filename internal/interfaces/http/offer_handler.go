package http

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/application"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type OfferHandler struct {
	offerService *application.OfferService
	roomService  *application.RoomService
}

func NewOfferHandler(offerService *application.OfferService, roomService *application.RoomService) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
		roomService:  roomService,
	}
}

// bookingContextRequest is the trip context guests attach to offer queries.
// All fields are optional; absent fields simply skip the related checks.
type bookingContextRequest struct {
	CheckIn     string  `json:"checkIn"`
	CheckOut    string  `json:"checkOut"`
	RoomID      int     `json:"roomId"`
	RoomType    string  `json:"roomType"`
	TotalAmount float64 `json:"totalAmount"`
}

func (h *OfferHandler) resolveContext(req *bookingContextRequest) (*domain.BookingContext, *domain.Room, error) {
	if req == nil {
		return nil, nil, nil
	}

	ctx := &domain.BookingContext{
		RoomType:    req.RoomType,
		TotalAmount: req.TotalAmount,
	}
	if req.CheckIn != "" {
		checkIn, err := parseDate(req.CheckIn)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid checkIn date, expected YYYY-MM-DD")
		}
		ctx.CheckIn = checkIn
	}
	if req.CheckOut != "" {
		checkOut, err := parseDate(req.CheckOut)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid checkOut date, expected YYYY-MM-DD")
		}
		ctx.CheckOut = checkOut
	}

	var room *domain.Room
	if req.RoomID > 0 {
		r, err := h.roomService.GetRoom(req.RoomID)
		if err != nil {
			return nil, nil, fmt.Errorf("room %d not found", req.RoomID)
		}
		room = r
		if ctx.RoomType == "" {
			ctx.RoomType = r.RoomType
		}
	}

	return ctx, room, nil
}

func (h *OfferHandler) ListPublicOffers(c *fiber.Ctx) error {
	offers, err := h.offerService.ListPublicOffers()
	if err != nil {
		log.Printf("Error listing offers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Error fetching offers: %v", err),
		})
	}

	return c.JSON(offers)
}

type personalizedOffersRequest struct {
	UserID  int                    `json:"userId"`
	Context *bookingContextRequest `json:"context"`
}

func (h *OfferHandler) GetPersonalizedOffers(c *fiber.Ctx) error {
	var req personalizedOffersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, room, err := h.resolveContext(req.Context)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	guest, err := h.offerService.GuestProfileFor(req.UserID)
	if err != nil {
		log.Printf("Error building guest profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error loading guest profile",
		})
	}

	offers, err := h.offerService.GeneratePersonalizedOffers(guest, ctx, room, time.Now())
	if err != nil {
		log.Printf("Error generating offers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error generating offers",
		})
	}

	return c.JSON(fiber.Map{
		"offers": offers,
		"count":  len(offers),
	})
}

type validateCouponRequest struct {
	CouponCode  string                 `json:"couponCode"`
	UserID      int                    `json:"userId"`
	TotalAmount float64                `json:"totalAmount"`
	Context     *bookingContextRequest `json:"context"`
}

func (h *OfferHandler) ValidateCoupon(c *fiber.Ctx) error {
	var req validateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, room, err := h.resolveContext(req.Context)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if ctx == nil {
		ctx = &domain.BookingContext{}
	}
	if req.TotalAmount > 0 {
		ctx.TotalAmount = req.TotalAmount
	}

	guest, err := h.offerService.GuestProfileFor(req.UserID)
	if err != nil {
		log.Printf("Error building guest profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error loading guest profile",
		})
	}

	validation, err := h.offerService.ValidateCoupon(req.CouponCode, guest, ctx, room, time.Now())
	if err != nil {
		log.Printf("Error validating coupon: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error validating coupon",
		})
	}

	if !validation.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"valid":  false,
			"reason": validation.Reason,
		})
	}

	return c.JSON(fiber.Map{
		"valid":          true,
		"offer":          validation.Offer,
		"discountAmount": validation.DiscountAmount,
		"finalAmount":    validation.FinalAmount,
		"message":        fmt.Sprintf("Coupon applied! Discount: ₹%.2f", validation.DiscountAmount),
	})
}

// Admin surface

type offerRequest struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	TermsConditions string   `json:"termsConditions"`
	DiscountType    string   `json:"discountType"`
	DiscountValue   float64  `json:"discountValue"`
	MinAmount       float64  `json:"minAmount"`
	MaxDiscount     *float64 `json:"maxDiscount"`

	ValidFrom  string `json:"validFrom"`
	ValidUntil string `json:"validUntil"`
	IsActive   bool   `json:"isActive"`
	UsageLimit *int   `json:"usageLimit"`

	IsPublic  bool `json:"isPublic"`
	AutoApply bool `json:"autoApply"`
	Priority  int  `json:"priority"`

	TargetUserType        string `json:"targetUserType"`
	MinStayNights         int    `json:"minStayNights"`
	MaxStayNights         *int   `json:"maxStayNights"`
	AdvanceBookingDays    int    `json:"advanceBookingDays"`
	MaxAdvanceBookingDays *int   `json:"maxAdvanceBookingDays"`
	SeasonType            string `json:"seasonType"`
	DayOfWeek             string `json:"dayOfWeek"`
	TargetRooms           string `json:"targetRooms"`

	BannerImage string `json:"bannerImage"`
}

func (req *offerRequest) toDomain() (*domain.Offer, error) {
	validFrom, err := parseDate(req.ValidFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid validFrom date, expected YYYY-MM-DD")
	}
	validUntil, err := parseDate(req.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("invalid validUntil date, expected YYYY-MM-DD")
	}

	offer := &domain.Offer{
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		TermsConditions: req.TermsConditions,
		DiscountType:    domain.DiscountType(req.DiscountType),
		DiscountValue:   req.DiscountValue,
		MinAmount:       req.MinAmount,
		MaxDiscount:     req.MaxDiscount,
		ValidFrom:       validFrom,
		ValidUntil:      validUntil.Add(24*time.Hour - time.Second),
		IsActive:        req.IsActive,
		UsageLimit:      req.UsageLimit,
		IsPublic:        req.IsPublic,
		AutoApply:       req.AutoApply,
		Priority:        req.Priority,

		TargetUserType:        domain.TargetAllUsers,
		MinStayNights:         req.MinStayNights,
		MaxStayNights:         req.MaxStayNights,
		AdvanceBookingDays:    req.AdvanceBookingDays,
		MaxAdvanceBookingDays: req.MaxAdvanceBookingDays,
		SeasonType:            domain.SeasonAll,
		DayOfWeek:             domain.DayAll,
		TargetRooms:           req.TargetRooms,
		BannerImage:           req.BannerImage,
	}
	if req.TargetUserType != "" {
		offer.TargetUserType = domain.TargetUserType(req.TargetUserType)
	}
	if req.SeasonType != "" {
		offer.SeasonType = domain.SeasonType(req.SeasonType)
	}
	if req.DayOfWeek != "" {
		offer.DayOfWeek = domain.DayOfWeekType(req.DayOfWeek)
	}
	return offer, nil
}

func (h *OfferHandler) ListOffers(c *fiber.Ctx) error {
	offers, err := h.offerService.ListOffers()
	if err != nil {
		log.Printf("Error listing offers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Error fetching offers: %v", err),
		})
	}

	return c.JSON(offers)
}

func (h *OfferHandler) CreateOffer(c *fiber.Ctx) error {
	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	offer, err := req.toDomain()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.offerService.CreateOffer(offer); err != nil {
		if errors.Is(err, domain.ErrDuplicateCode) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "An offer with this code already exists",
			})
		}
		log.Printf("Error creating offer: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(offer)
}

func (h *OfferHandler) UpdateOffer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid offer id",
		})
	}

	var req offerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	offer, err := req.toDomain()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	offer.ID = id

	if err := h.offerService.UpdateOffer(offer); err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Offer not found",
			})
		}
		log.Printf("Error updating offer %d: %v", id, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(offer)
}

func (h *OfferHandler) DeleteOffer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid offer id",
		})
	}

	if err := h.offerService.DeleteOffer(id); err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Offer not found",
			})
		}
		if errors.Is(err, domain.ErrOfferInUse) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Offer has been used and cannot be deleted, deactivate it instead",
			})
		}
		log.Printf("Error deleting offer %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error deleting offer",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Offer deleted",
	})
}

func (h *OfferHandler) DuplicateOffer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid offer id",
		})
	}

	clone, err := h.offerService.DuplicateOffer(id, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Offer not found",
			})
		}
		if errors.Is(err, domain.ErrDuplicateCode) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A copy of this offer already exists",
			})
		}
		log.Printf("Error duplicating offer %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error duplicating offer",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(clone)
}

func (h *OfferHandler) ToggleOffer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid offer id",
		})
	}

	active, err := h.offerService.ToggleOffer(id)
	if err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Offer not found",
			})
		}
		log.Printf("Error toggling offer %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error toggling offer",
		})
	}

	return c.JSON(fiber.Map{
		"id":       id,
		"isActive": active,
	})
}

func (h *OfferHandler) GetOfferAnalytics(c *fiber.Ctx) error {
	analytics, err := h.offerService.GetOfferAnalytics(time.Now())
	if err != nil {
		log.Printf("Error computing offer analytics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error computing analytics",
		})
	}

	return c.JSON(analytics)
}

func (h *OfferHandler) GetOfferInsights(c *fiber.Ctx) error {
	insights, err := h.offerService.GenerateOfferInsights(time.Now())
	if err != nil {
		log.Printf("Error generating offer insights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error generating insights",
		})
	}

	return c.JSON(insights)
}
