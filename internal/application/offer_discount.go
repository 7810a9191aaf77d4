package application

import (
	"math"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

// CalculateDiscount computes the currency discount a valid offer yields on
// the given pre-discount amount and stay length. The result is rounded to
// two decimals and clamped to [0, amount]; an unknown discount type yields 0
// rather than an error.
func CalculateDiscount(offer *domain.Offer, amount float64, nights int) float64 {
	if nights < 1 {
		nights = 1
	}

	var discount float64
	switch offer.DiscountType {
	case domain.DiscountPercentage:
		discount = amount * offer.DiscountValue / 100
		if offer.MaxDiscount != nil && discount > *offer.MaxDiscount {
			discount = *offer.MaxDiscount
		}
	case domain.DiscountFixed:
		discount = math.Min(offer.DiscountValue, amount)
	case domain.DiscountStayXPayY:
		discount = stayXPayYDiscount(offer, amount, nights)
	case domain.DiscountFreeNight:
		discount = freeNightDiscount(offer, amount, nights)
	default:
		// Documented fallback: unrecognized schemes discount nothing.
		discount = 0
	}

	if discount < 0 {
		discount = 0
	}
	if discount > amount {
		discount = amount
	}
	return math.Round(discount*100) / 100
}

// stayXPayYDiscount grants one free night on stays of four or more nights,
// provided the configured pay-for value is below the stay length.
//
// TODO: the fixed four-night threshold ignores what discount_value actually
// encodes (pay-for-N nights); generalizing the formula needs a product
// decision first.
func stayXPayYDiscount(offer *domain.Offer, amount float64, nights int) float64 {
	if offer.DiscountValue >= float64(nights) {
		return 0
	}
	if nights >= 4 {
		return amount / float64(nights)
	}
	return 0
}

// freeNightDiscount grants one free night per full multiple of the minimum
// stay: min_stay_nights=3 over a 6-night stay discounts two nightly rates.
func freeNightDiscount(offer *domain.Offer, amount float64, nights int) float64 {
	if offer.MinStayNights < 1 || nights < offer.MinStayNights {
		return 0
	}
	freeNights := nights / offer.MinStayNights
	nightlyRate := amount / float64(nights)
	return float64(freeNights) * nightlyRate
}
