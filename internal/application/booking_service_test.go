package application

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/payment"
)

const testGatewaySecret = "test_secret"

type bookingFixture struct {
	svc         *BookingService
	bookingRepo *fakeBookingRepo
	offerRepo   *fakeOfferRepo
	roomRepo    *fakeRoomRepo
	paymentRepo *fakePaymentRepo
}

func newBookingFixture(offers ...*domain.Offer) *bookingFixture {
	room := &domain.Room{
		ID:          1,
		Name:        "Deluxe Garden View",
		RoomType:    "deluxe",
		Price:       5000,
		Capacity:    3,
		MaxAdults:   2,
		MaxChildren: 1,
	}

	offerRepo := newFakeOfferRepo(offers...)
	bookingRepo := newFakeBookingRepo()
	roomRepo := newFakeRoomRepo(room)
	userRepo := newFakeUserRepo(&domain.User{ID: 1, Name: "Asha", Email: "asha@example.com"})
	paymentRepo := &fakePaymentRepo{}

	offerService := NewOfferService(offerRepo, bookingRepo, roomRepo)
	gateway := payment.NewRazorpayClient("test_key", testGatewaySecret)
	svc := NewBookingService(bookingRepo, roomRepo, userRepo, paymentRepo, offerService, gateway, nil)

	return &bookingFixture{
		svc:         svc,
		bookingRepo: bookingRepo,
		offerRepo:   offerRepo,
		roomRepo:    roomRepo,
		paymentRepo: paymentRepo,
	}
}

func signPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testGatewaySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestQuoteBookingBaseAndTax(t *testing.T) {
	f := newBookingFixture()

	checkIn := testNow.AddDate(0, 0, 10)
	checkOut := checkIn.AddDate(0, 0, 2)

	quote, err := f.svc.QuoteBooking(0, 1, checkIn, checkOut, "", testNow)
	require.NoError(t, err)

	assert.Equal(t, 2, quote.Nights)
	assert.Equal(t, 10000.0, quote.BaseAmount)
	assert.Equal(t, 1800.0, quote.TaxAmount)
	assert.Equal(t, 11800.0, quote.TotalAmount)
	assert.Equal(t, 0.0, quote.DiscountAmount)
	assert.Equal(t, 11800.0, quote.FinalAmount)
	assert.Empty(t, quote.AppliedOffers)
}

func TestQuoteBookingAutoApplyStacksAdditively(t *testing.T) {
	flat := activeOffer()
	flat.ID = 1
	flat.Code = "AUTO500"
	flat.IsPublic = true
	flat.AutoApply = true
	flat.DiscountType = domain.DiscountFixed
	flat.DiscountValue = 500

	percent := activeOffer()
	percent.ID = 2
	percent.Code = "AUTO5PCT"
	percent.IsPublic = true
	percent.AutoApply = true
	percent.DiscountType = domain.DiscountPercentage
	percent.DiscountValue = 5

	f := newBookingFixture(flat, percent)

	checkIn := testNow.AddDate(0, 0, 10)
	checkOut := checkIn.AddDate(0, 0, 2)

	quote, err := f.svc.QuoteBooking(0, 1, checkIn, checkOut, "", testNow)
	require.NoError(t, err)

	// 5% of the taxed total 11800 is 590, plus the flat 500.
	assert.Len(t, quote.AppliedOffers, 2)
	assert.Equal(t, 1090.0, quote.DiscountAmount)
	assert.Equal(t, 10710.0, quote.FinalAmount)
}

func TestQuoteBookingCouponStacksOnAutoApply(t *testing.T) {
	auto := activeOffer()
	auto.ID = 1
	auto.Code = "AUTO500"
	auto.IsPublic = true
	auto.AutoApply = true
	auto.DiscountType = domain.DiscountFixed
	auto.DiscountValue = 500

	coupon := activeOffer()
	coupon.ID = 2
	coupon.Code = "EXTRA10"
	coupon.DiscountType = domain.DiscountPercentage
	coupon.DiscountValue = 10

	f := newBookingFixture(auto, coupon)

	checkIn := testNow.AddDate(0, 0, 10)
	checkOut := checkIn.AddDate(0, 0, 2)

	quote, err := f.svc.QuoteBooking(0, 1, checkIn, checkOut, "EXTRA10", testNow)
	require.NoError(t, err)

	// Coupon takes 10% of the taxed total, independent of the auto stack.
	assert.Equal(t, 1180.0, quote.CouponDiscount)
	assert.Equal(t, "EXTRA10", quote.CouponCode)
	assert.Equal(t, 1680.0, quote.DiscountAmount)
	assert.Equal(t, 10120.0, quote.FinalAmount)
}

func TestQuoteBookingInvalidCouponKeepsQuote(t *testing.T) {
	f := newBookingFixture()

	checkIn := testNow.AddDate(0, 0, 10)
	checkOut := checkIn.AddDate(0, 0, 2)

	quote, err := f.svc.QuoteBooking(0, 1, checkIn, checkOut, "BOGUS", testNow)
	require.NoError(t, err)

	assert.Equal(t, 0.0, quote.CouponDiscount)
	assert.Empty(t, quote.CouponCode)
	assert.Equal(t, "invalid coupon code", quote.CouponMessage)
	assert.Equal(t, 11800.0, quote.FinalAmount)
}

func TestQuoteBookingFinalNeverNegative(t *testing.T) {
	huge := activeOffer()
	huge.ID = 1
	huge.Code = "HUGE"
	huge.IsPublic = true
	huge.AutoApply = true
	huge.DiscountType = domain.DiscountFixed
	huge.DiscountValue = 999999

	f := newBookingFixture(huge)

	checkIn := testNow.AddDate(0, 0, 10)
	quote, err := f.svc.QuoteBooking(0, 1, checkIn, checkIn.AddDate(0, 0, 1), "", testNow)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, quote.FinalAmount, 0.0)
}

func TestQuoteBookingRejectsInvertedDates(t *testing.T) {
	f := newBookingFixture()

	checkIn := testNow.AddDate(0, 0, 10)
	_, err := f.svc.QuoteBooking(0, 1, checkIn, checkIn, "", testNow)
	assert.Error(t, err)
}

func TestVerifyPaymentConfirmsBooking(t *testing.T) {
	coupon := activeOffer()
	coupon.ID = 1
	coupon.Code = "EXTRA10"
	coupon.DiscountType = domain.DiscountPercentage
	coupon.DiscountValue = 10

	f := newBookingFixture(coupon)

	checkIn := testNow.AddDate(0, 0, 10)
	booking := &domain.Booking{
		UserID:         1,
		RoomID:         1,
		CheckIn:        checkIn,
		CheckOut:       checkIn.AddDate(0, 0, 2),
		TotalNights:    2,
		FinalAmount:    10120,
		DiscountAmount: 1180,
		Status:         domain.BookingPending,
		PaymentStatus:  domain.PaymentStatePending,
		CouponCode:     "EXTRA10",
	}
	require.NoError(t, f.bookingRepo.Create(booking))
	require.NoError(t, f.bookingRepo.UpdatePayment(booking.ID, domain.PaymentStatePending, "order_test_1"))

	sig := signPayment("order_test_1", "pay_test_1")
	require.NoError(t, f.svc.VerifyPayment(booking.ID, "order_test_1", "pay_test_1", sig))

	stored, err := f.bookingRepo.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, stored.Status)
	assert.Equal(t, domain.PaymentStatePaid, stored.PaymentStatus)

	payments, err := f.paymentRepo.GetByBookingID(booking.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, domain.PaymentStatusCompleted, payments[0].Status)
	assert.Equal(t, 10120.0, payments[0].Amount)

	// The coupon redemption was counted.
	redeemed, err := f.offerRepo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 1, redeemed.UsedCount)
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	f := newBookingFixture()

	checkIn := testNow.AddDate(0, 0, 10)
	booking := &domain.Booking{
		UserID:        1,
		RoomID:        1,
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 2),
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentStatePending,
	}
	require.NoError(t, f.bookingRepo.Create(booking))
	require.NoError(t, f.bookingRepo.UpdatePayment(booking.ID, domain.PaymentStatePending, "order_test_2"))

	err := f.svc.VerifyPayment(booking.ID, "order_test_2", "pay_test_2", "forged")
	require.Error(t, err)

	stored, err := f.bookingRepo.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStateFailed, stored.PaymentStatus)
	assert.Equal(t, domain.BookingPending, stored.Status)
}

func TestVerifyPaymentRejectsMismatchedOrder(t *testing.T) {
	f := newBookingFixture()

	checkIn := testNow.AddDate(0, 0, 10)
	booking := &domain.Booking{
		UserID:        1,
		RoomID:        1,
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 2),
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentStatePending,
	}
	require.NoError(t, f.bookingRepo.Create(booking))
	require.NoError(t, f.bookingRepo.UpdatePayment(booking.ID, domain.PaymentStatePending, "order_real"))

	sig := signPayment("order_other", "pay_test_3")
	err := f.svc.VerifyPayment(booking.ID, "order_other", "pay_test_3", sig)
	assert.Error(t, err)
}

func TestVerifyPaymentReplayIsIdempotent(t *testing.T) {
	coupon := activeOffer()
	coupon.ID = 1
	coupon.Code = "EXTRA10"
	coupon.DiscountType = domain.DiscountPercentage
	coupon.DiscountValue = 10

	f := newBookingFixture(coupon)

	checkIn := testNow.AddDate(0, 0, 10)
	booking := &domain.Booking{
		UserID:         1,
		RoomID:         1,
		CheckIn:        checkIn,
		CheckOut:       checkIn.AddDate(0, 0, 2),
		TotalNights:    2,
		FinalAmount:    10120,
		DiscountAmount: 1180,
		Status:         domain.BookingPending,
		PaymentStatus:  domain.PaymentStatePending,
		CouponCode:     "EXTRA10",
	}
	require.NoError(t, f.bookingRepo.Create(booking))
	require.NoError(t, f.bookingRepo.UpdatePayment(booking.ID, domain.PaymentStatePending, "order_replay"))

	sig := signPayment("order_replay", "pay_replay")
	require.NoError(t, f.svc.VerifyPayment(booking.ID, "order_replay", "pay_replay", sig))

	// The gateway delivers the same callback again. The booking stays
	// confirmed and nothing is counted twice.
	require.NoError(t, f.svc.VerifyPayment(booking.ID, "order_replay", "pay_replay", sig))

	redeemed, err := f.offerRepo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 1, redeemed.UsedCount)

	payments, err := f.paymentRepo.GetByBookingID(booking.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	stored, err := f.bookingRepo.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, stored.Status)
	assert.Equal(t, domain.PaymentStatePaid, stored.PaymentStatus)
}

func TestVerifyPaymentReplayWithBadSignatureKeepsPaid(t *testing.T) {
	f := newBookingFixture()

	checkIn := testNow.AddDate(0, 0, 10)
	booking := &domain.Booking{
		UserID:        1,
		RoomID:        1,
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 2),
		FinalAmount:   11800,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentStatePending,
	}
	require.NoError(t, f.bookingRepo.Create(booking))
	require.NoError(t, f.bookingRepo.UpdatePayment(booking.ID, domain.PaymentStatePending, "order_replay_2"))

	sig := signPayment("order_replay_2", "pay_replay_2")
	require.NoError(t, f.svc.VerifyPayment(booking.ID, "order_replay_2", "pay_replay_2", sig))

	// A garbage retry after settlement must not flip the booking to failed.
	require.NoError(t, f.svc.VerifyPayment(booking.ID, "order_replay_2", "pay_replay_2", "forged"))

	stored, err := f.bookingRepo.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePaid, stored.PaymentStatus)
	assert.Equal(t, domain.BookingConfirmed, stored.Status)
}

func TestVerifyPaymentRedeemsOffersAppliedAtCreation(t *testing.T) {
	auto := activeOffer()
	auto.ID = 1
	auto.Code = "AUTO500"
	auto.IsPublic = true
	auto.AutoApply = true
	auto.DiscountType = domain.DiscountFixed
	auto.DiscountValue = 500

	f := newBookingFixture(auto)

	checkIn := testNow.AddDate(0, 0, 10)
	quote, err := f.svc.QuoteBooking(1, 1, checkIn, checkIn.AddDate(0, 0, 2), "", testNow)
	require.NoError(t, err)
	require.Len(t, quote.AppliedOffers, 1)

	booking := &domain.Booking{
		UserID:          1,
		RoomID:          1,
		CheckIn:         checkIn,
		CheckOut:        checkIn.AddDate(0, 0, 2),
		TotalNights:     quote.Nights,
		TotalAmount:     quote.TotalAmount,
		DiscountAmount:  quote.DiscountAmount,
		FinalAmount:     quote.FinalAmount,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentStatePending,
		AppliedOfferIDs: []int{quote.AppliedOffers[0].Offer.ID},
	}
	require.NoError(t, f.bookingRepo.Create(booking))
	require.NoError(t, f.bookingRepo.UpdatePayment(booking.ID, domain.PaymentStatePending, "order_auto_1"))

	// The offer is deactivated between checkout and the payment callback.
	// The booking was priced with it, so it is still the one redeemed.
	require.NoError(t, f.offerRepo.SetActive(1, false))

	sig := signPayment("order_auto_1", "pay_auto_1")
	require.NoError(t, f.svc.VerifyPayment(booking.ID, "order_auto_1", "pay_auto_1", sig))

	redeemed, err := f.offerRepo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 1, redeemed.UsedCount)
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture()

	checkIn := testNow.AddDate(0, 0, 10)
	booking := &domain.Booking{
		UserID:   1,
		RoomID:   1,
		CheckIn:  checkIn,
		CheckOut: checkIn.AddDate(0, 0, 2),
		Status:   domain.BookingConfirmed,
	}
	require.NoError(t, f.bookingRepo.Create(booking))

	// The wrong user cannot cancel.
	err := f.svc.CancelBooking(booking.ID, 99)
	assert.Error(t, err)

	require.NoError(t, f.svc.CancelBooking(booking.ID, 1))

	stored, err := f.bookingRepo.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, stored.Status)

	// A cancelled booking cannot be cancelled again.
	err = f.svc.CancelBooking(booking.ID, 1)
	assert.Error(t, err)
}

func TestCancelBookingCompletedStay(t *testing.T) {
	f := newBookingFixture()

	booking := &domain.Booking{
		UserID: 1,
		RoomID: 1,
		Status: domain.BookingCompleted,
	}
	require.NoError(t, f.bookingRepo.Create(booking))

	err := f.svc.CancelBooking(booking.ID, 1)
	assert.Error(t, err)
}

func TestGetBookingOwnership(t *testing.T) {
	f := newBookingFixture()

	booking := &domain.Booking{UserID: 1, RoomID: 1, Status: domain.BookingConfirmed}
	require.NoError(t, f.bookingRepo.Create(booking))

	got, err := f.svc.GetBooking(booking.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = f.svc.GetBooking(booking.ID, 2)
	assert.Error(t, err)
}

func TestCompleteExpiredBookings(t *testing.T) {
	f := newBookingFixture()

	past := &domain.Booking{
		UserID:   1,
		RoomID:   1,
		CheckIn:  time.Now().AddDate(0, 0, -5),
		CheckOut: time.Now().AddDate(0, 0, -2),
		Status:   domain.BookingConfirmed,
	}
	require.NoError(t, f.bookingRepo.Create(past))

	require.NoError(t, f.svc.CompleteExpiredBookings())

	stored, err := f.bookingRepo.GetByID(past.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, stored.Status)
}
