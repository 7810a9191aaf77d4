package domain

import "time"

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// PaymentState tracks whether a booking has been paid
type PaymentState string

const (
	PaymentStatePending PaymentState = "pending"
	PaymentStatePaid    PaymentState = "paid"
	PaymentStateFailed  PaymentState = "failed"
)

// Booking represents a reservation of one room for a guest
type Booking struct {
	ID              int           `json:"id"`
	UserID          int           `json:"userId"`
	RoomID          int           `json:"roomId"`
	CheckIn         time.Time     `json:"checkIn"`
	CheckOut        time.Time     `json:"checkOut"`
	Adults          int           `json:"adults"`
	Children        int           `json:"children"`
	TotalNights     int           `json:"totalNights"`
	BaseAmount      float64       `json:"baseAmount"`
	TaxAmount       float64       `json:"taxAmount"`
	DiscountAmount  float64       `json:"discountAmount"`
	TotalAmount     float64       `json:"totalAmount"`
	FinalAmount     float64       `json:"finalAmount"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentState  `json:"paymentStatus"`
	CouponCode      string        `json:"couponCode,omitempty"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	GatewayOrderID  string        `json:"-"`

	// AppliedOfferIDs are the auto-apply offers whose discounts priced this
	// booking, captured at creation so redemption counting at payment time
	// matches exactly what the guest was charged.
	AppliedOfferIDs []int `json:"appliedOfferIds,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Nights is the stay length in whole days
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// BookingContext is the ephemeral set of trip parameters used to evaluate
// offer applicability. It is caller-supplied and never persisted.
type BookingContext struct {
	CheckIn     time.Time
	CheckOut    time.Time
	RoomType    string
	TotalAmount float64
}

// Nights is the prospective stay length in whole days
func (c *BookingContext) Nights() int {
	if c.CheckIn.IsZero() || c.CheckOut.IsZero() {
		return 0
	}
	return int(c.CheckOut.Sub(c.CheckIn).Hours() / 24)
}

// HasDates reports whether both trip dates were supplied
func (c *BookingContext) HasDates() bool {
	return !c.CheckIn.IsZero() && !c.CheckOut.IsZero()
}

// RedemptionTotals aggregates the bookings that redeemed one coupon code
type RedemptionTotals struct {
	Bookings      int     `json:"totalBookings"`
	TotalDiscount float64 `json:"totalDiscount"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// GetByID returns a booking by its id
	GetByID(id int) (*Booking, error)
	// Create inserts a new booking and fills in its id
	Create(booking *Booking) error
	// UpdateStatus updates the lifecycle state of a booking
	UpdateStatus(id int, status BookingStatus) error
	// UpdatePayment records the payment state and gateway order id
	UpdatePayment(id int, state PaymentState, gatewayOrderID string) error
	// GetByUser returns all bookings of a user, newest first
	GetByUser(userID int) ([]Booking, error)
	// CountCompletedByUser returns the user's completed-stay count, the
	// fact used to classify new/returning/vip guests
	CountCompletedByUser(userID int) (int, error)
	// CompleteExpired moves confirmed bookings past checkout to completed
	CompleteExpired() error
	// CountByStatus returns how many bookings are in the given state
	CountByStatus(status BookingStatus) (int, error)
	// CountOccupiedRooms returns distinct rooms with an active booking
	// covering the given date
	CountOccupiedRooms(date time.Time) (int, error)
	// CountRedemptionsSince returns redemptions of a code created after t
	CountRedemptionsSince(code string, t time.Time) (int, error)
	// RedemptionTotals sums the discount and revenue of bookings that
	// redeemed a coupon code
	RedemptionTotals(code string) (RedemptionTotals, error)
}
