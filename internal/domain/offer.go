package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DiscountType identifies how an offer's discount is computed
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
	DiscountStayXPayY  DiscountType = "stay_x_pay_y"
	DiscountFreeNight  DiscountType = "free_night"
)

// TargetUserType restricts an offer to a guest segment
type TargetUserType string

const (
	TargetAllUsers      TargetUserType = "all"
	TargetNewUser       TargetUserType = "new_user"
	TargetReturningUser TargetUserType = "returning_user"
	TargetVIP           TargetUserType = "vip"
)

// SeasonType restricts an offer to check-ins in certain months
type SeasonType string

const (
	SeasonAll      SeasonType = "all"
	SeasonPeak     SeasonType = "peak"
	SeasonOffPeak  SeasonType = "off_peak"
	SeasonFestival SeasonType = "festival"
)

// DayOfWeekType restricts an offer to the check-in weekday
type DayOfWeekType string

const (
	DayAll     DayOfWeekType = "all"
	DayWeekend DayOfWeekType = "weekend"
	DayWeekday DayOfWeekType = "weekday"
)

// Offer is a promotional discount rule, optionally code-activated or
// auto-applied when a guest qualifies.
type Offer struct {
	ID              int          `json:"id"`
	Code            string       `json:"code"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	TermsConditions string       `json:"termsConditions,omitempty"`
	DiscountType    DiscountType `json:"discountType"`
	DiscountValue   float64      `json:"discountValue"`
	MinAmount       float64      `json:"minAmount"`
	MaxDiscount     *float64     `json:"maxDiscount,omitempty"`

	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `json:"validUntil"`
	IsActive   bool      `json:"isActive"`
	UsageLimit *int      `json:"usageLimit,omitempty"`
	UsedCount  int       `json:"usedCount"`

	IsPublic  bool `json:"isPublic"`
	AutoApply bool `json:"autoApply"`
	Priority  int  `json:"priority"`

	TargetUserType        TargetUserType `json:"targetUserType"`
	MinStayNights         int            `json:"minStayNights"`
	MaxStayNights         *int           `json:"maxStayNights,omitempty"`
	AdvanceBookingDays    int            `json:"advanceBookingDays"`
	MaxAdvanceBookingDays *int           `json:"maxAdvanceBookingDays,omitempty"`
	SeasonType            SeasonType     `json:"seasonType"`
	DayOfWeek             DayOfWeekType  `json:"dayOfWeek"`

	// TargetRooms is the raw room-targeting JSON as stored:
	// {"room_types": [...], "room_ids": [...]}. Empty means all rooms.
	TargetRooms string `json:"targetRooms,omitempty"`

	BannerImage string    `json:"bannerImage,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RoomTarget is the parsed form of Offer.TargetRooms. A zero RoomTarget
// applies to every room.
type RoomTarget struct {
	RoomTypes []string `json:"room_types"`
	RoomIDs   []int    `json:"room_ids"`
}

// IsEmpty reports whether no room restriction was specified
func (t RoomTarget) IsEmpty() bool {
	return len(t.RoomTypes) == 0 && len(t.RoomIDs) == 0
}

// MatchesRoom reports whether the given room satisfies the targeting.
// An exact room-id hit takes precedence over a room-type hit.
func (t RoomTarget) MatchesRoom(room *Room) bool {
	if t.IsEmpty() {
		return true
	}
	for _, id := range t.RoomIDs {
		if id == room.ID {
			return true
		}
	}
	for _, rt := range t.RoomTypes {
		if rt == room.RoomType {
			return true
		}
	}
	return false
}

// ParseTargetRooms decodes the stored targeting JSON. Callers must treat a
// decode error as "no targeting" (applies to all rooms) and log it; the
// engine never fails closed on malformed stored data.
func (o *Offer) ParseTargetRooms() (RoomTarget, error) {
	var target RoomTarget
	raw := strings.TrimSpace(o.TargetRooms)
	if raw == "" {
		return target, nil
	}
	if err := json.Unmarshal([]byte(raw), &target); err != nil {
		return RoomTarget{}, err
	}
	return target, nil
}

// NormalizeCode uppercases and trims an offer code the way it is stored
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

var (
	// ErrOfferNotFound means no offer exists with the given code
	ErrOfferNotFound = errors.New("offer not found")
	// ErrOfferInUse blocks deletion of offers with recorded redemptions
	ErrOfferInUse = errors.New("offer has been used and cannot be deleted")
	// ErrDuplicateCode means the code is already registered
	ErrDuplicateCode = errors.New("offer code already exists")
)

// OfferRepository defines the interface for offer catalog data operations
type OfferRepository interface {
	// GetByCode returns the offer with the given (normalized) code
	GetByCode(code string) (*Offer, error)
	// GetByID returns the offer with the given id
	GetByID(id int) (*Offer, error)
	// ListPublicActive returns all offers with is_active and is_public set,
	// ordered by priority desc, created_at desc
	ListPublicActive() ([]Offer, error)
	// ListAll returns every offer for the admin catalog view
	ListAll() ([]Offer, error)
	// Create inserts a new offer and fills in its id
	Create(offer *Offer) error
	// Update rewrites all mutable fields of an offer
	Update(offer *Offer) error
	// Delete removes an unused offer
	Delete(id int) error
	// IncrementUsage adds one confirmed redemption to used_count
	IncrementUsage(id int) error
	// SetActive toggles the manual kill-switch
	SetActive(id int, active bool) error
}
