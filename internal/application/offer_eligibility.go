package application

import (
	"log"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

// Eligibility reasons surfaced to callers. Business-rule failures are
// (bool, reason) pairs, never errors.
const (
	ReasonValid            = "valid"
	ReasonNotActive        = "offer is not active"
	ReasonOutsideWindow    = "offer has expired"
	ReasonUsageLimit       = "offer usage limit reached"
	ReasonUserTypeMismatch = "offer not applicable for your account type"
	ReasonBelowMinAmount   = "booking total below minimum amount"
	ReasonStayTooShort     = "stay shorter than minimum nights"
	ReasonStayTooLong      = "stay longer than maximum nights"
	ReasonTooLittleAdvance = "booking not far enough in advance"
	ReasonTooMuchAdvance   = "booking too far in advance"
	ReasonSeasonMismatch   = "check-in outside offer season"
	ReasonDayMismatch      = "check-in on non-qualifying day"
	ReasonRoomMismatch     = "offer not applicable for this room"
)

// EvaluateOffer decides whether a single offer applies to the given guest,
// booking context, and room at the instant now. Checks short-circuit in a
// fixed order; the first failure wins and its reason is returned. Missing
// optional inputs simply skip the corresponding checks. The function is pure
// apart from a warning logged when stored room targeting cannot be parsed.
func EvaluateOffer(offer *domain.Offer, guest *domain.GuestProfile, ctx *domain.BookingContext, room *domain.Room, now time.Time) (bool, string) {
	if !offer.IsActive {
		return false, ReasonNotActive
	}

	if now.Before(offer.ValidFrom) || now.After(offer.ValidUntil) {
		return false, ReasonOutsideWindow
	}

	if offer.UsageLimit != nil && offer.UsedCount >= *offer.UsageLimit {
		return false, ReasonUsageLimit
	}

	if guest != nil && offer.TargetUserType != domain.TargetAllUsers {
		if !guest.MatchesUserType(offer.TargetUserType) {
			return false, ReasonUserTypeMismatch
		}
	}

	if ctx != nil {
		if ok, reason := evaluateBookingContext(offer, ctx, now); !ok {
			return false, reason
		}
	}

	if room != nil {
		if !offerAppliesToRoom(offer, room) {
			return false, ReasonRoomMismatch
		}
	}

	return true, ReasonValid
}

func evaluateBookingContext(offer *domain.Offer, ctx *domain.BookingContext, now time.Time) (bool, string) {
	if ctx.TotalAmount < offer.MinAmount {
		return false, ReasonBelowMinAmount
	}

	if ctx.HasDates() {
		nights := ctx.Nights()
		if nights < offer.MinStayNights {
			return false, ReasonStayTooShort
		}
		if offer.MaxStayNights != nil && nights > *offer.MaxStayNights {
			return false, ReasonStayTooLong
		}
	}

	if !ctx.CheckIn.IsZero() {
		lead := daysUntil(now, ctx.CheckIn)
		if offer.AdvanceBookingDays > 0 && lead < offer.AdvanceBookingDays {
			return false, ReasonTooLittleAdvance
		}
		if offer.MaxAdvanceBookingDays != nil && lead > *offer.MaxAdvanceBookingDays {
			return false, ReasonTooMuchAdvance
		}

		if offer.SeasonType != domain.SeasonAll && !seasonMatches(offer.SeasonType, ctx.CheckIn) {
			return false, ReasonSeasonMismatch
		}

		if offer.DayOfWeek != domain.DayAll && !dayMatches(offer.DayOfWeek, ctx.CheckIn) {
			return false, ReasonDayMismatch
		}
	}

	return true, ReasonValid
}

// offerAppliesToRoom checks stored room targeting against a concrete room.
// Malformed targeting JSON degrades to "applies to all rooms": the engine
// fails open on stored-data corruption, never closed.
func offerAppliesToRoom(offer *domain.Offer, room *domain.Room) bool {
	target, err := offer.ParseTargetRooms()
	if err != nil {
		log.Printf("offer %s: malformed target_rooms %q, treating as all rooms: %v", offer.Code, offer.TargetRooms, err)
		return true
	}
	return target.MatchesRoom(room)
}

// seasonMatches reports whether the check-in month falls in the season's
// month set. Unknown season values pass; the default arm is deliberate.
func seasonMatches(season domain.SeasonType, checkIn time.Time) bool {
	month := checkIn.Month()
	switch season {
	case domain.SeasonPeak:
		return month == time.December || month == time.January || month == time.June || month == time.July
	case domain.SeasonOffPeak:
		return month == time.February || month == time.March || month == time.September || month == time.October
	case domain.SeasonFestival:
		return month == time.October || month == time.November || month == time.December
	default:
		return true
	}
}

// dayMatches reports whether the check-in weekday satisfies the restriction.
// Unknown values pass, matching the season default arm.
func dayMatches(day domain.DayOfWeekType, checkIn time.Time) bool {
	weekday := checkIn.Weekday()
	switch day {
	case domain.DayWeekend:
		return weekday == time.Saturday || weekday == time.Sunday
	case domain.DayWeekday:
		return weekday >= time.Monday && weekday <= time.Friday
	default:
		return true
	}
}

// daysUntil is the lead time in whole days between now and check-in,
// comparing calendar dates rather than instants.
func daysUntil(now, checkIn time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	return int(in.Sub(today).Hours() / 24)
}
