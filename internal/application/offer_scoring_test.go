package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

func TestScoreOfferDeterministic(t *testing.T) {
	offer := activeOffer()
	offer.Priority = 3
	offer.TargetUserType = domain.TargetVIP
	offer.MinStayNights = 2
	offer.SeasonType = domain.SeasonPeak

	guest := &domain.GuestProfile{UserID: 1, CompletedStays: 4}
	checkIn := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	ctx := &domain.BookingContext{CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 3), TotalAmount: 9000}
	room := &domain.Room{ID: 2, RoomType: "deluxe"}

	first := ScoreOffer(offer, guest, ctx, room, testNow)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ScoreOffer(offer, guest, ctx, room, testNow))
	}
}

func TestScoreOfferPriorityWeight(t *testing.T) {
	low := activeOffer()
	low.Priority = 1
	high := activeOffer()
	high.Priority = 5

	diff := ScoreOffer(high, nil, nil, nil, testNow) - ScoreOffer(low, nil, nil, nil, testNow)
	assert.Equal(t, 40, diff)
}

func TestScoreOfferUserSegments(t *testing.T) {
	base := activeOffer()
	base.Priority = 0

	// An untargeted offer scores its flat bonus for everyone.
	assert.Equal(t, 10, ScoreOffer(base, nil, nil, nil, testNow))

	vipOffer := activeOffer()
	vipOffer.Priority = 0
	vipOffer.TargetUserType = domain.TargetVIP

	vip := &domain.GuestProfile{UserID: 1, CompletedStays: 5}
	newGuest := &domain.GuestProfile{UserID: 2, CompletedStays: 0}

	assert.Equal(t, 30, ScoreOffer(vipOffer, vip, nil, nil, testNow))
	assert.Equal(t, -20, ScoreOffer(vipOffer, newGuest, nil, nil, testNow))
	// No profile: targeted offers contribute nothing either way.
	assert.Equal(t, 0, ScoreOffer(vipOffer, nil, nil, nil, testNow))

	newOffer := activeOffer()
	newOffer.Priority = 0
	newOffer.TargetUserType = domain.TargetNewUser
	assert.Equal(t, 25, ScoreOffer(newOffer, newGuest, nil, nil, testNow))

	returningOffer := activeOffer()
	returningOffer.Priority = 0
	returningOffer.TargetUserType = domain.TargetReturningUser
	returning := &domain.GuestProfile{UserID: 3, CompletedStays: 2}
	assert.Equal(t, 20, ScoreOffer(returningOffer, returning, nil, nil, testNow))
}

func TestScoreOfferAutoApplyBonus(t *testing.T) {
	plain := activeOffer()
	plain.Priority = 0
	auto := activeOffer()
	auto.Priority = 0
	auto.AutoApply = true

	diff := ScoreOffer(auto, nil, nil, nil, testNow) - ScoreOffer(plain, nil, nil, nil, testNow)
	assert.Equal(t, 15, diff)
}

func TestScoreOfferStayAndAmountSignals(t *testing.T) {
	offer := activeOffer()
	offer.Priority = 0
	offer.MinStayNights = 3
	offer.MinAmount = 5000

	checkIn := testNow.AddDate(0, 0, 10)

	met := &domain.BookingContext{CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 4), TotalAmount: 6000}
	missed := &domain.BookingContext{CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 1), TotalAmount: 3000}

	// all-users 10 + min-stay 15 + min-amount 12
	assert.Equal(t, 37, ScoreOffer(offer, nil, met, nil, testNow))
	// all-users 10 - min-stay 10 - min-amount 8
	assert.Equal(t, -8, ScoreOffer(offer, nil, missed, nil, testNow))

	// Zero-valued constraints emit no signal at all.
	unconstrained := activeOffer()
	unconstrained.Priority = 0
	assert.Equal(t, 10, ScoreOffer(unconstrained, nil, met, nil, testNow))
}

func TestScoreOfferRoomTargeting(t *testing.T) {
	room := &domain.Room{ID: 7, RoomType: "deluxe"}

	idMatch := activeOffer()
	idMatch.Priority = 0
	idMatch.TargetRooms = `{"room_ids": [7], "room_types": ["suite"]}`

	typeMatch := activeOffer()
	typeMatch.Priority = 0
	typeMatch.TargetRooms = `{"room_types": ["deluxe"]}`

	noMatch := activeOffer()
	noMatch.Priority = 0
	noMatch.TargetRooms = `{"room_types": ["suite"]}`

	malformed := activeOffer()
	malformed.Priority = 0
	malformed.TargetRooms = `not json`

	// all-users 10 plus the room signal.
	assert.Equal(t, 40, ScoreOffer(idMatch, nil, nil, room, testNow))
	assert.Equal(t, 35, ScoreOffer(typeMatch, nil, nil, room, testNow))
	assert.Equal(t, -5, ScoreOffer(noMatch, nil, nil, room, testNow))
	assert.Equal(t, 10, ScoreOffer(malformed, nil, nil, room, testNow))
}

func TestScoreOfferSeasonSignals(t *testing.T) {
	offer := activeOffer()
	offer.Priority = 0
	offer.SeasonType = domain.SeasonPeak

	june := &domain.BookingContext{CheckIn: time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)}
	march := &domain.BookingContext{CheckIn: time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, 25, ScoreOffer(offer, nil, june, nil, testNow))
	assert.Equal(t, 0, ScoreOffer(offer, nil, march, nil, testNow))
	// A seasonal offer with no check-in date cannot demonstrate a match.
	assert.Equal(t, 0, ScoreOffer(offer, nil, nil, nil, testNow))
}

func TestScoreOfferLastMinuteBonus(t *testing.T) {
	offer := activeOffer()
	offer.Priority = 0

	soon := &domain.BookingContext{CheckIn: testNow.AddDate(0, 0, 2)}
	later := &domain.BookingContext{CheckIn: testNow.AddDate(0, 0, 30)}

	// all-users 10 + last-minute 20.
	assert.Equal(t, 30, ScoreOffer(offer, nil, soon, nil, testNow))
	assert.Equal(t, 10, ScoreOffer(offer, nil, later, nil, testNow))

	// Offers requiring long advance booking never earn the bonus.
	advance := activeOffer()
	advance.Priority = 0
	advance.AdvanceBookingDays = 14
	// all-users 10 - advance-min 8.
	assert.Equal(t, 2, ScoreOffer(advance, nil, soon, nil, testNow))
}

func TestScoreOfferAdvanceSignals(t *testing.T) {
	offer := activeOffer()
	offer.Priority = 0
	offer.AdvanceBookingDays = 7
	offer.MaxAdvanceBookingDays = intPtr(60)

	inWindow := &domain.BookingContext{CheckIn: testNow.AddDate(0, 0, 30)}
	tooFar := &domain.BookingContext{CheckIn: testNow.AddDate(0, 0, 90)}

	// all-users 10 + advance-min 10 + advance-max 8.
	assert.Equal(t, 28, ScoreOffer(offer, nil, inWindow, nil, testNow))
	// all-users 10 + advance-min 10 - advance-max 6.
	assert.Equal(t, 14, ScoreOffer(offer, nil, tooFar, nil, testNow))
}
