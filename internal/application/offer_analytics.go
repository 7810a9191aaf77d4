package application

import (
	"fmt"
	"math"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

// OfferAnalytics summarizes one offer's performance for the admin dashboard.
type OfferAnalytics struct {
	Offer          domain.Offer  `json:"offer"`
	UsageRate      float64       `json:"usageRate"`
	RecentUsage    int           `json:"recentUsage"`
	Effectiveness  float64       `json:"effectiveness"`
	RevenueImpact  RevenueImpact `json:"revenueImpact"`
	ConversionRate float64       `json:"conversionRate"`
	Status         string        `json:"status"`
}

// RevenueImpact sums what an offer's redeemed bookings earned and cost.
type RevenueImpact struct {
	TotalBookings      int     `json:"totalBookings"`
	TotalDiscount      float64 `json:"totalDiscount"`
	TotalRevenue       float64 `json:"totalRevenue"`
	NetRevenue         float64 `json:"netRevenue"`
	AvgDiscountBooking float64 `json:"averageDiscountPerBooking"`
}

// OfferInsights groups offers by performance and attaches recommendations.
type OfferInsights struct {
	TopPerforming   []OfferAnalytics `json:"topPerformingOffers"`
	Underperforming []OfferAnalytics `json:"underperformingOffers"`
	Recommendations []string         `json:"recommendations"`
}

// Human-readable lifecycle labels for the admin catalog.
const (
	OfferStatusInactive     = "Inactive"
	OfferStatusExpired      = "Expired"
	OfferStatusLimitReached = "Limit Reached"
	OfferStatusScheduled    = "Scheduled"
	OfferStatusActive       = "Active"
)

const recentUsageWindow = 30 * 24 * time.Hour

// GetOfferAnalytics computes per-offer performance metrics across the whole
// catalog.
func (s *OfferService) GetOfferAnalytics(now time.Time) ([]OfferAnalytics, error) {
	offers, err := s.offerRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("error listing offers: %w", err)
	}

	since := now.Add(-recentUsageWindow)
	analytics := make([]OfferAnalytics, 0, len(offers))
	for _, offer := range offers {
		recent, err := s.bookingRepo.CountRedemptionsSince(offer.Code, since)
		if err != nil {
			return nil, fmt.Errorf("error counting recent redemptions for %s: %w", offer.Code, err)
		}
		totals, err := s.bookingRepo.RedemptionTotals(offer.Code)
		if err != nil {
			return nil, fmt.Errorf("error summing redemptions for %s: %w", offer.Code, err)
		}

		usageRate := 0.0
		if offer.UsageLimit != nil && *offer.UsageLimit > 0 {
			usageRate = float64(offer.UsedCount) / float64(*offer.UsageLimit) * 100
		}

		analytics = append(analytics, OfferAnalytics{
			Offer:          offer,
			UsageRate:      math.Round(usageRate*10) / 10,
			RecentUsage:    recent,
			Effectiveness:  calculateEffectiveness(&offer, recent, now),
			RevenueImpact:  revenueImpactFrom(totals),
			ConversionRate: calculateConversionRate(&offer, totals.Bookings, now),
			Status:         OfferStatus(&offer, now),
		})
	}
	return analytics, nil
}

// revenueImpactFrom derives net revenue and the per-booking average from the
// redemption sums.
func revenueImpactFrom(totals domain.RedemptionTotals) RevenueImpact {
	impact := RevenueImpact{
		TotalBookings: totals.Bookings,
		TotalDiscount: totals.TotalDiscount,
		TotalRevenue:  totals.TotalRevenue,
		NetRevenue:    totals.TotalRevenue - totals.TotalDiscount,
	}
	if totals.Bookings > 0 {
		impact.AvgDiscountBooking = totals.TotalDiscount / float64(totals.Bookings)
	}
	return impact
}

// calculateConversionRate compares redemptions against how often the offer
// could have been used. Without a usage limit the availability is estimated
// from days active, ten uses a day with a floor of 100.
func calculateConversionRate(offer *domain.Offer, applied int, now time.Time) float64 {
	var available int
	if offer.UsageLimit != nil && *offer.UsageLimit > 0 {
		available = *offer.UsageLimit
	} else {
		daysActive := int(now.Sub(offer.CreatedAt).Hours() / 24)
		available = daysActive * 10
		if available < 100 {
			available = 100
		}
	}
	return math.Round(float64(applied)/float64(available)*100*10) / 10
}

// GenerateOfferInsights splits the catalog into top and underperforming
// offers and derives actionable recommendations.
func (s *OfferService) GenerateOfferInsights(now time.Time) (*OfferInsights, error) {
	analytics, err := s.GetOfferAnalytics(now)
	if err != nil {
		return nil, err
	}

	insights := &OfferInsights{
		TopPerforming:   []OfferAnalytics{},
		Underperforming: []OfferAnalytics{},
		Recommendations: []string{},
	}

	activeCount := 0
	for _, a := range analytics {
		if a.Effectiveness >= 70 {
			insights.TopPerforming = append(insights.TopPerforming, a)
		} else if a.Effectiveness <= 30 && a.Offer.IsActive {
			insights.Underperforming = append(insights.Underperforming, a)
		}
		if a.Status == OfferStatusActive {
			activeCount++
		}
	}

	if n := len(insights.Underperforming); n > 0 {
		insights.Recommendations = append(insights.Recommendations,
			fmt.Sprintf("Consider updating or deactivating %d underperforming offers", n))
	}
	if activeCount < 3 {
		insights.Recommendations = append(insights.Recommendations,
			"Consider creating more active offers to increase booking incentives")
	}

	return insights, nil
}

// calculateEffectiveness scores an offer 0 to 100 from three weighted parts:
// usage against its limit (40), redemptions in the last 30 days (30), and
// the share of its validity window still remaining (30).
func calculateEffectiveness(offer *domain.Offer, recentUsage int, now time.Time) float64 {
	var usage float64
	if offer.UsageLimit != nil && *offer.UsageLimit > 0 {
		usage = math.Min(float64(offer.UsedCount)/float64(*offer.UsageLimit)*40, 40)
	} else {
		usage = math.Min(float64(offer.UsedCount)*2, 40)
	}

	recency := math.Min(float64(recentUsage)*3, 30)

	var remaining float64
	if offer.ValidUntil.After(now) {
		total := offer.ValidUntil.Sub(offer.CreatedAt).Hours() / 24
		left := offer.ValidUntil.Sub(now).Hours() / 24
		if total > 0 {
			remaining = left / total * 30
		}
	}

	return math.Round((usage+recency+remaining)*10) / 10
}

// OfferStatus maps an offer's current state to a display label. Inactive
// wins over expiry, expiry over limits, and a future valid_from reads as
// scheduled.
func OfferStatus(offer *domain.Offer, now time.Time) string {
	switch {
	case !offer.IsActive:
		return OfferStatusInactive
	case offer.ValidUntil.Before(now):
		return OfferStatusExpired
	case offer.UsageLimit != nil && offer.UsedCount >= *offer.UsageLimit:
		return OfferStatusLimitReached
	case offer.ValidFrom.After(now):
		return OfferStatusScheduled
	default:
		return OfferStatusActive
	}
}
