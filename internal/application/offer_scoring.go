package application

import (
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

// Scoring weights. Each sub-score is independent and may go negative as a
// penalty; the raw signed sum is used for ranking, never for validity.
const (
	scorePriorityWeight = 10

	scoreUserAllTypes       = 10
	scoreUserNewMatch       = 25
	scoreUserReturningMatch = 20
	scoreUserVIPMatch       = 30
	scoreUserMismatch       = -20

	scoreMinStayMet      = 15
	scoreMinStayMissed   = -10
	scoreMaxStayMet      = 10
	scoreMaxStayExceeded = -10
	scoreMinAmountMet    = 12
	scoreMinAmountMissed = -8

	scoreRoomIDMatch   = 30
	scoreRoomTypeMatch = 25
	scoreRoomNoMatch   = -15

	scoreSeasonMatch       = 15
	scoreSeasonMismatch    = -10
	scoreDayMatch          = 12
	scoreDayMismatch       = -8
	scoreAdvanceMinMet     = 10
	scoreAdvanceMinMissed  = -8
	scoreAdvanceMaxMet     = 8
	scoreAdvanceMaxMissed  = -6
	scoreLastMinuteBonus   = 20
	lastMinuteLeadDays     = 3
	scoreAutoApplyBonus    = 15
)

// ScoreOffer computes the relevance score used to rank offers already known
// to be valid. It is a pure function of its inputs: identical arguments
// always produce identical scores.
func ScoreOffer(offer *domain.Offer, guest *domain.GuestProfile, ctx *domain.BookingContext, room *domain.Room, now time.Time) int {
	score := offer.Priority * scorePriorityWeight

	score += userTypeScore(offer, guest)

	if ctx != nil {
		score += bookingContextScore(offer, ctx)
	}

	if room != nil {
		score += roomTargetScore(offer, room)
	}

	score += timingScore(offer, ctx, now)

	if offer.AutoApply {
		score += scoreAutoApplyBonus
	}

	return score
}

// userTypeScore rewards offers aimed at the guest's segment and penalizes
// targeted offers shown to the wrong segment.
func userTypeScore(offer *domain.Offer, guest *domain.GuestProfile) int {
	if offer.TargetUserType == domain.TargetAllUsers {
		return scoreUserAllTypes
	}
	if guest == nil {
		return 0
	}
	if !guest.MatchesUserType(offer.TargetUserType) {
		return scoreUserMismatch
	}
	switch offer.TargetUserType {
	case domain.TargetNewUser:
		return scoreUserNewMatch
	case domain.TargetReturningUser:
		return scoreUserReturningMatch
	case domain.TargetVIP:
		return scoreUserVIPMatch
	default:
		return 0
	}
}

func bookingContextScore(offer *domain.Offer, ctx *domain.BookingContext) int {
	score := 0

	if ctx.HasDates() {
		nights := ctx.Nights()
		if offer.MinStayNights > 0 {
			if nights >= offer.MinStayNights {
				score += scoreMinStayMet
			} else {
				score += scoreMinStayMissed
			}
		}
		if offer.MaxStayNights != nil {
			if nights <= *offer.MaxStayNights {
				score += scoreMaxStayMet
			} else {
				score += scoreMaxStayExceeded
			}
		}
	}

	if offer.MinAmount > 0 {
		if ctx.TotalAmount >= offer.MinAmount {
			score += scoreMinAmountMet
		} else {
			score += scoreMinAmountMissed
		}
	}

	return score
}

// roomTargetScore gives the exact room-id hit precedence over a type hit.
// No targeting, or targeting that cannot be parsed, contributes nothing.
func roomTargetScore(offer *domain.Offer, room *domain.Room) int {
	target, err := offer.ParseTargetRooms()
	if err != nil || target.IsEmpty() {
		return 0
	}
	for _, id := range target.RoomIDs {
		if id == room.ID {
			return scoreRoomIDMatch
		}
	}
	for _, rt := range target.RoomTypes {
		if rt == room.RoomType {
			return scoreRoomTypeMatch
		}
	}
	return scoreRoomNoMatch
}

func timingScore(offer *domain.Offer, ctx *domain.BookingContext, now time.Time) int {
	score := 0
	hasCheckIn := ctx != nil && !ctx.CheckIn.IsZero()

	if offer.SeasonType != domain.SeasonAll {
		if hasCheckIn && seasonMatches(offer.SeasonType, ctx.CheckIn) {
			score += scoreSeasonMatch
		} else {
			score += scoreSeasonMismatch
		}
	}

	if offer.DayOfWeek != domain.DayAll && hasCheckIn {
		if dayMatches(offer.DayOfWeek, ctx.CheckIn) {
			score += scoreDayMatch
		} else {
			score += scoreDayMismatch
		}
	}

	if hasCheckIn {
		lead := daysUntil(now, ctx.CheckIn)

		if offer.AdvanceBookingDays > 0 {
			if lead >= offer.AdvanceBookingDays {
				score += scoreAdvanceMinMet
			} else {
				score += scoreAdvanceMinMissed
			}
		}

		if offer.MaxAdvanceBookingDays != nil {
			if lead <= *offer.MaxAdvanceBookingDays {
				score += scoreAdvanceMaxMet
			} else {
				score += scoreAdvanceMaxMissed
			}
		}

		// Rewards genuine last-minute-deal alignment: both the trip and
		// the offer's own advance requirement sit inside the window.
		if lead <= lastMinuteLeadDays && offer.AdvanceBookingDays <= lastMinuteLeadDays {
			score += scoreLastMinuteBonus
		}
	}

	return score
}
