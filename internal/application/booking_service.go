package application

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/email"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/payment"
)

// taxRate is the GST applied on the room charge
const taxRate = 0.18

// AppliedOffer records one offer's contribution to a quote's discount
type AppliedOffer struct {
	Offer    domain.Offer `json:"offer"`
	Discount float64      `json:"discount"`
}

// BookingQuote is the priced breakdown of a prospective booking before
// payment: base amount, tax, stacked auto-apply discounts, and an optional
// manual coupon on top.
type BookingQuote struct {
	Room           *domain.Room   `json:"room"`
	Nights         int            `json:"nights"`
	BaseAmount     float64        `json:"baseAmount"`
	TaxAmount      float64        `json:"taxAmount"`
	TotalAmount    float64        `json:"totalAmount"`
	AppliedOffers  []AppliedOffer `json:"appliedOffers"`
	CouponDiscount float64        `json:"couponDiscount"`
	CouponCode     string         `json:"couponCode,omitempty"`
	CouponMessage  string         `json:"couponMessage,omitempty"`
	DiscountAmount float64        `json:"discountAmount"`
	FinalAmount    float64        `json:"finalAmount"`
}

type BookingService struct {
	bookingRepo  domain.BookingRepository
	roomRepo     domain.RoomRepository
	userRepo     domain.UserRepository
	paymentRepo  domain.PaymentRepository
	offerService *OfferService
	gateway      *payment.RazorpayClient
	emailClient  *email.Client
}

// NewBookingService creates a new instance of the booking service
func NewBookingService(
	bookingRepo domain.BookingRepository,
	roomRepo domain.RoomRepository,
	userRepo domain.UserRepository,
	paymentRepo domain.PaymentRepository,
	offerService *OfferService,
	gateway *payment.RazorpayClient,
	emailClient *email.Client,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		userRepo:     userRepo,
		paymentRepo:  paymentRepo,
		offerService: offerService,
		gateway:      gateway,
		emailClient:  emailClient,
	}
}

// QuoteBooking prices a prospective stay. The base charge is nights times
// the nightly rate, tax is added on top, then every qualifying auto-apply
// offer discounts the taxed total additively, and finally a manually entered
// coupon, if any, discounts on top of that. The final amount never drops
// below zero.
func (s *BookingService) QuoteBooking(userID, roomID int, checkIn, checkOut time.Time, couponCode string, now time.Time) (*BookingQuote, error) {
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("check-out must be after check-in")
	}

	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("error loading room: %w", err)
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	baseAmount := room.Price * float64(nights)
	taxAmount := round2(baseAmount * taxRate)
	totalAmount := round2(baseAmount + taxAmount)

	guest, err := s.offerService.GuestProfileFor(userID)
	if err != nil {
		return nil, err
	}
	ctx := &domain.BookingContext{
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		RoomType:    room.RoomType,
		TotalAmount: totalAmount,
	}

	quote := &BookingQuote{
		Room:          room,
		Nights:        nights,
		BaseAmount:    round2(baseAmount),
		TaxAmount:     taxAmount,
		TotalAmount:   totalAmount,
		AppliedOffers: []AppliedOffer{},
	}

	autoOffers, err := s.offerService.GetAutoApplyOffers(guest, ctx, room, now)
	if err != nil {
		return nil, err
	}
	autoDiscount := 0.0
	for i := range autoOffers {
		d := CalculateDiscount(&autoOffers[i], totalAmount, nights)
		if d <= 0 {
			continue
		}
		autoDiscount += d
		quote.AppliedOffers = append(quote.AppliedOffers, AppliedOffer{Offer: autoOffers[i], Discount: d})
	}

	if couponCode != "" {
		validation, err := s.offerService.ValidateCoupon(couponCode, guest, ctx, room, now)
		if err != nil {
			return nil, err
		}
		if validation.Valid {
			quote.CouponDiscount = validation.DiscountAmount
			quote.CouponCode = validation.Offer.Code
			quote.CouponMessage = fmt.Sprintf("Coupon applied! Discount: ₹%.2f", validation.DiscountAmount)
		} else {
			quote.CouponMessage = validation.Reason
		}
	}

	quote.DiscountAmount = round2(autoDiscount + quote.CouponDiscount)
	quote.FinalAmount = round2(math.Max(totalAmount-quote.DiscountAmount, 0))
	return quote, nil
}

// CreateBooking checks availability, prices the stay, persists a pending
// booking, and opens a gateway order for the final amount. The returned
// booking carries the gateway order id the frontend needs for checkout.
func (s *BookingService) CreateBooking(userID, roomID int, checkIn, checkOut time.Time, adults, children int, couponCode, specialRequests string, now time.Time) (*domain.Booking, *BookingQuote, error) {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading room: %w", err)
	}
	if adults > room.MaxAdults || children > room.MaxChildren {
		return nil, nil, fmt.Errorf("room %s allows at most %d adults and %d children", room.Name, room.MaxAdults, room.MaxChildren)
	}

	available, err := s.roomRepo.IsRoomAvailable(roomID, checkIn, checkOut)
	if err != nil {
		return nil, nil, fmt.Errorf("error checking availability: %w", err)
	}
	if !available {
		return nil, nil, fmt.Errorf("room is not available for the selected dates")
	}

	quote, err := s.QuoteBooking(userID, roomID, checkIn, checkOut, couponCode, now)
	if err != nil {
		return nil, nil, err
	}

	appliedOfferIDs := make([]int, 0, len(quote.AppliedOffers))
	for _, applied := range quote.AppliedOffers {
		appliedOfferIDs = append(appliedOfferIDs, applied.Offer.ID)
	}

	booking := &domain.Booking{
		UserID:          userID,
		RoomID:          roomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          adults,
		Children:        children,
		TotalNights:     quote.Nights,
		BaseAmount:      quote.BaseAmount,
		TaxAmount:       quote.TaxAmount,
		DiscountAmount:  quote.DiscountAmount,
		TotalAmount:     quote.TotalAmount,
		FinalAmount:     quote.FinalAmount,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentStatePending,
		CouponCode:      quote.CouponCode,
		SpecialRequests: specialRequests,
		AppliedOfferIDs: appliedOfferIDs,
	}
	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, nil, fmt.Errorf("error creating booking: %w", err)
	}

	order, err := s.gateway.CreateOrder(booking.FinalAmount, "INR", fmt.Sprintf("booking_%d", booking.ID))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating payment order: %w", err)
	}
	if err := s.bookingRepo.UpdatePayment(booking.ID, domain.PaymentStatePending, order.ID); err != nil {
		return nil, nil, fmt.Errorf("error saving payment order: %w", err)
	}
	booking.GatewayOrderID = order.ID

	return booking, quote, nil
}

// VerifyPayment validates the gateway's checkout callback. On a valid
// signature the booking is confirmed, the payment is recorded, each applied
// offer's usage counter is incremented, and the guest gets a confirmation
// email. An invalid signature marks the payment failed.
func (s *BookingService) VerifyPayment(bookingID int, orderID, paymentID, signature string) error {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return fmt.Errorf("error loading booking: %w", err)
	}
	if booking.GatewayOrderID != orderID {
		return fmt.Errorf("order id does not match booking")
	}

	// Gateways retry callbacks; a booking already paid and confirmed is
	// acknowledged without recording anything again.
	if booking.PaymentStatus == domain.PaymentStatePaid || booking.Status == domain.BookingConfirmed {
		return nil
	}

	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		if err := s.bookingRepo.UpdatePayment(bookingID, domain.PaymentStateFailed, orderID); err != nil {
			log.Printf("booking %d: failed to record failed payment: %v", bookingID, err)
		}
		return fmt.Errorf("payment signature verification failed")
	}

	if err := s.bookingRepo.UpdatePayment(bookingID, domain.PaymentStatePaid, orderID); err != nil {
		return fmt.Errorf("error updating payment state: %w", err)
	}
	if err := s.bookingRepo.UpdateStatus(bookingID, domain.BookingConfirmed); err != nil {
		return fmt.Errorf("error confirming booking: %w", err)
	}

	if err := s.paymentRepo.Create(&domain.Payment{
		BookingID:        bookingID,
		Amount:           booking.FinalAmount,
		Method:           domain.PaymentMethodGateway,
		Status:           domain.PaymentStatusCompleted,
		GatewayOrderID:   orderID,
		GatewayPaymentID: paymentID,
		GatewaySignature: signature,
	}); err != nil {
		return fmt.Errorf("error recording payment: %w", err)
	}

	s.recordOfferRedemptions(booking)
	s.sendConfirmationEmail(booking)

	return nil
}

// recordOfferRedemptions increments usage on every offer that discounted
// this booking: the manual coupon plus the auto-apply offer ids captured at
// creation. Counting failures are logged, never surfaced; the payment already
// went through.
func (s *BookingService) recordOfferRedemptions(booking *domain.Booking) {
	redeemed := map[int]bool{}

	if booking.CouponCode != "" {
		if offer, err := s.offerService.offerRepo.GetByCode(booking.CouponCode); err == nil {
			if err := s.offerService.RecordRedemption(offer.ID); err != nil {
				log.Printf("booking %d: %v", booking.ID, err)
			} else {
				redeemed[offer.ID] = true
			}
		}
	}

	for _, id := range booking.AppliedOfferIDs {
		if redeemed[id] {
			continue
		}
		redeemed[id] = true
		if err := s.offerService.RecordRedemption(id); err != nil {
			log.Printf("booking %d: %v", booking.ID, err)
		}
	}
}

// CancelBooking cancels a pending or confirmed booking and notifies the
// guest. Completed and checked-in stays cannot be cancelled.
func (s *BookingService) CancelBooking(bookingID, userID int) error {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return fmt.Errorf("error loading booking: %w", err)
	}
	if booking.UserID != userID {
		return fmt.Errorf("booking does not belong to this user")
	}
	if booking.Status != domain.BookingPending && booking.Status != domain.BookingConfirmed {
		return fmt.Errorf("booking in state %s cannot be cancelled", booking.Status)
	}

	if err := s.bookingRepo.UpdateStatus(bookingID, domain.BookingCancelled); err != nil {
		return fmt.Errorf("error cancelling booking: %w", err)
	}

	s.sendCancellationEmail(booking)
	return nil
}

// GetBooking returns a single booking, restricted to its owner
func (s *BookingService) GetBooking(bookingID, userID int) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("booking does not belong to this user")
	}
	return booking, nil
}

// ListUserBookings returns a user's bookings, newest first
func (s *BookingService) ListUserBookings(userID int) ([]domain.Booking, error) {
	return s.bookingRepo.GetByUser(userID)
}

// CompleteExpiredBookings sweeps confirmed bookings past their checkout
// date into the completed state. Run periodically by the scheduler.
func (s *BookingService) CompleteExpiredBookings() error {
	if err := s.bookingRepo.CompleteExpired(); err != nil {
		return fmt.Errorf("error completing expired bookings: %w", err)
	}
	return nil
}

func (s *BookingService) sendConfirmationEmail(booking *domain.Booking) {
	if s.emailClient == nil {
		return
	}
	info, err := s.bookingEmailInfo(booking)
	if err != nil {
		log.Printf("booking %d: error preparing confirmation email: %v", booking.ID, err)
		return
	}
	if err := s.emailClient.SendBookingConfirmation(info); err != nil {
		log.Printf("booking %d: error sending confirmation email: %v", booking.ID, err)
	}
}

func (s *BookingService) sendCancellationEmail(booking *domain.Booking) {
	if s.emailClient == nil {
		return
	}
	info, err := s.bookingEmailInfo(booking)
	if err != nil {
		log.Printf("booking %d: error preparing cancellation email: %v", booking.ID, err)
		return
	}
	if err := s.emailClient.SendBookingCancellation(info); err != nil {
		log.Printf("booking %d: error sending cancellation email: %v", booking.ID, err)
	}
}

func (s *BookingService) bookingEmailInfo(booking *domain.Booking) (email.BookingInfo, error) {
	user, err := s.userRepo.GetByID(booking.UserID)
	if err != nil {
		return email.BookingInfo{}, fmt.Errorf("error loading user: %w", err)
	}
	room, err := s.roomRepo.GetRoomByID(booking.RoomID)
	if err != nil {
		return email.BookingInfo{}, fmt.Errorf("error loading room: %w", err)
	}
	return email.BookingInfo{
		ID:             booking.ID,
		GuestName:      user.Name,
		GuestEmail:     user.Email,
		RoomName:       room.Name,
		CheckIn:        booking.CheckIn,
		CheckOut:       booking.CheckOut,
		Adults:         booking.Adults,
		Children:       booking.Children,
		Nights:         booking.TotalNights,
		BaseAmount:     booking.BaseAmount,
		TaxAmount:      booking.TaxAmount,
		DiscountAmount: booking.DiscountAmount,
		FinalAmount:    booking.FinalAmount,
		CouponCode:     booking.CouponCode,
		ConfirmedAt:    time.Now(),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
