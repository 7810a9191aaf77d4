package application

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

// maxPersonalizedOffers caps the ranked list returned to guests. Auto-apply
// aggregation is never capped.
const maxPersonalizedOffers = 8

// ScoredOffer pairs an offer with the relevance score it ranked under.
type ScoredOffer struct {
	Offer          domain.Offer `json:"offer"`
	RelevanceScore int          `json:"relevanceScore"`
}

// CouponValidation is the outcome of checking a coupon code against a
// prospective booking.
type CouponValidation struct {
	Valid          bool          `json:"valid"`
	Reason         string        `json:"reason"`
	Offer          *domain.Offer `json:"offer,omitempty"`
	DiscountAmount float64       `json:"discountAmount"`
	FinalAmount    float64       `json:"finalAmount"`
}

type OfferService struct {
	offerRepo   domain.OfferRepository
	bookingRepo domain.BookingRepository
	roomRepo    domain.RoomRepository
}

// NewOfferService creates a new instance of the offer service
func NewOfferService(offerRepo domain.OfferRepository, bookingRepo domain.BookingRepository, roomRepo domain.RoomRepository) *OfferService {
	return &OfferService{
		offerRepo:   offerRepo,
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
	}
}

// GuestProfileFor builds the offer engine's view of a user from their
// completed-stay history. A zero userID means an anonymous visitor and
// returns nil.
func (s *OfferService) GuestProfileFor(userID int) (*domain.GuestProfile, error) {
	if userID == 0 {
		return nil, nil
	}
	completed, err := s.bookingRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error counting completed stays: %w", err)
	}
	return &domain.GuestProfile{UserID: userID, CompletedStays: completed}, nil
}

// GeneratePersonalizedOffers returns the ranked list of public offers valid
// for the guest and trip. Scores are floored at zero before sorting so a
// heavily penalized offer cannot invert ordering against a zero-score one;
// the list is ordered by score, then priority, then recency, and capped.
func (s *OfferService) GeneratePersonalizedOffers(guest *domain.GuestProfile, ctx *domain.BookingContext, room *domain.Room, now time.Time) ([]ScoredOffer, error) {
	offers, err := s.offerRepo.ListPublicActive()
	if err != nil {
		return nil, fmt.Errorf("error listing offers: %w", err)
	}

	ranked := make([]ScoredOffer, 0, len(offers))
	for i := range offers {
		offer := &offers[i]
		if ok, _ := EvaluateOffer(offer, guest, ctx, room, now); !ok {
			continue
		}
		score := ScoreOffer(offer, guest, ctx, room, now)
		if score < 0 {
			score = 0
		}
		ranked = append(ranked, ScoredOffer{Offer: *offer, RelevanceScore: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RelevanceScore != ranked[j].RelevanceScore {
			return ranked[i].RelevanceScore > ranked[j].RelevanceScore
		}
		if ranked[i].Offer.Priority != ranked[j].Offer.Priority {
			return ranked[i].Offer.Priority > ranked[j].Offer.Priority
		}
		return ranked[i].Offer.CreatedAt.After(ranked[j].Offer.CreatedAt)
	})

	if len(ranked) > maxPersonalizedOffers {
		ranked = ranked[:maxPersonalizedOffers]
	}
	return ranked, nil
}

// GetAutoApplyOffers returns every auto-apply offer the guest and trip
// qualify for, ordered like the personalized list but without a cap. Their
// discounts stack additively at checkout.
func (s *OfferService) GetAutoApplyOffers(guest *domain.GuestProfile, ctx *domain.BookingContext, room *domain.Room, now time.Time) ([]domain.Offer, error) {
	offers, err := s.offerRepo.ListPublicActive()
	if err != nil {
		return nil, fmt.Errorf("error listing offers: %w", err)
	}

	type scored struct {
		offer domain.Offer
		score int
	}
	qualified := make([]scored, 0)
	for i := range offers {
		offer := &offers[i]
		if !offer.AutoApply {
			continue
		}
		if ok, _ := EvaluateOffer(offer, guest, ctx, room, now); !ok {
			continue
		}
		qualified = append(qualified, scored{offer: *offer, score: ScoreOffer(offer, guest, ctx, room, now)})
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		if qualified[i].score != qualified[j].score {
			return qualified[i].score > qualified[j].score
		}
		if qualified[i].offer.Priority != qualified[j].offer.Priority {
			return qualified[i].offer.Priority > qualified[j].offer.Priority
		}
		return qualified[i].offer.CreatedAt.After(qualified[j].offer.CreatedAt)
	})

	result := make([]domain.Offer, len(qualified))
	for i, q := range qualified {
		result[i] = q.offer
	}
	return result, nil
}

// ValidateCoupon checks a manually entered coupon code against the guest and
// trip and, when valid, computes its discount on the given amount. An
// unknown code is a business failure, not an error.
func (s *OfferService) ValidateCoupon(code string, guest *domain.GuestProfile, ctx *domain.BookingContext, room *domain.Room, now time.Time) (*CouponValidation, error) {
	normalized := domain.NormalizeCode(code)
	if normalized == "" {
		return &CouponValidation{Valid: false, Reason: "coupon code is required"}, nil
	}

	offer, err := s.offerRepo.GetByCode(normalized)
	if err != nil {
		if err == domain.ErrOfferNotFound {
			return &CouponValidation{Valid: false, Reason: "invalid coupon code"}, nil
		}
		return nil, fmt.Errorf("error looking up coupon: %w", err)
	}

	ok, reason := EvaluateOffer(offer, guest, ctx, room, now)
	if !ok {
		return &CouponValidation{Valid: false, Reason: reason, Offer: offer}, nil
	}

	nights := 1
	amount := 0.0
	if ctx != nil {
		amount = ctx.TotalAmount
		if n := ctx.Nights(); n > 0 {
			nights = n
		}
	}
	discount := CalculateDiscount(offer, amount, nights)

	return &CouponValidation{
		Valid:          true,
		Reason:         ReasonValid,
		Offer:          offer,
		DiscountAmount: discount,
		FinalAmount:    amount - discount,
	}, nil
}

// RecordRedemption counts one confirmed use of an offer
func (s *OfferService) RecordRedemption(offerID int) error {
	if err := s.offerRepo.IncrementUsage(offerID); err != nil {
		return fmt.Errorf("error recording redemption: %w", err)
	}
	return nil
}

// ListPublicOffers returns the active public catalog for the landing page
func (s *OfferService) ListPublicOffers() ([]domain.Offer, error) {
	offers, err := s.offerRepo.ListPublicActive()
	if err != nil {
		return nil, fmt.Errorf("error listing public offers: %w", err)
	}
	return offers, nil
}

// ListOffers returns the full catalog for the admin view
func (s *OfferService) ListOffers() ([]domain.Offer, error) {
	offers, err := s.offerRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("error listing offers: %w", err)
	}
	return offers, nil
}

// GetOffer returns a single offer by id
func (s *OfferService) GetOffer(id int) (*domain.Offer, error) {
	return s.offerRepo.GetByID(id)
}

// CreateOffer registers a new offer after validating its configuration
func (s *OfferService) CreateOffer(offer *domain.Offer) error {
	if err := validateOffer(offer); err != nil {
		return err
	}
	offer.Code = domain.NormalizeCode(offer.Code)
	offer.UsedCount = 0
	if err := s.offerRepo.Create(offer); err != nil {
		return fmt.Errorf("error creating offer: %w", err)
	}
	return nil
}

// UpdateOffer rewrites an existing offer's configuration
func (s *OfferService) UpdateOffer(offer *domain.Offer) error {
	if err := validateOffer(offer); err != nil {
		return err
	}
	offer.Code = domain.NormalizeCode(offer.Code)
	if err := s.offerRepo.Update(offer); err != nil {
		return fmt.Errorf("error updating offer: %w", err)
	}
	return nil
}

// DeleteOffer removes an offer. Offers with recorded redemptions cannot be
// deleted and must be deactivated instead, so historical bookings keep a
// resolvable coupon code.
func (s *OfferService) DeleteOffer(id int) error {
	offer, err := s.offerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if offer.UsedCount > 0 {
		return domain.ErrOfferInUse
	}
	if err := s.offerRepo.Delete(id); err != nil {
		return fmt.Errorf("error deleting offer: %w", err)
	}
	return nil
}

// DuplicateOffer clones an offer under a derived code. The copy starts
// inactive with zeroed usage and a fresh validity start so it can be edited
// before going live.
func (s *OfferService) DuplicateOffer(id int, now time.Time) (*domain.Offer, error) {
	original, err := s.offerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	clone := *original
	clone.ID = 0
	clone.Code = original.Code + "_COPY"
	clone.Name = original.Name + " (Copy)"
	clone.IsActive = false
	clone.UsedCount = 0
	clone.ValidFrom = now

	if err := s.offerRepo.Create(&clone); err != nil {
		return nil, fmt.Errorf("error duplicating offer: %w", err)
	}
	return &clone, nil
}

// ToggleOffer flips an offer's active flag and returns the new state
func (s *OfferService) ToggleOffer(id int) (bool, error) {
	offer, err := s.offerRepo.GetByID(id)
	if err != nil {
		return false, err
	}
	next := !offer.IsActive
	if err := s.offerRepo.SetActive(id, next); err != nil {
		return false, fmt.Errorf("error toggling offer: %w", err)
	}
	return next, nil
}

// validateOffer checks admin-supplied offer configuration
func validateOffer(offer *domain.Offer) error {
	if strings.TrimSpace(offer.Code) == "" {
		return fmt.Errorf("offer code is required")
	}
	if strings.TrimSpace(offer.Name) == "" {
		return fmt.Errorf("offer name is required")
	}
	switch offer.DiscountType {
	case domain.DiscountPercentage:
		if offer.DiscountValue <= 0 || offer.DiscountValue > 100 {
			return fmt.Errorf("percentage discount must be between 0 and 100")
		}
	case domain.DiscountFixed, domain.DiscountStayXPayY:
		if offer.DiscountValue <= 0 {
			return fmt.Errorf("discount value must be greater than 0")
		}
	case domain.DiscountFreeNight:
		if offer.MinStayNights < 1 {
			return fmt.Errorf("free night offers require a minimum stay")
		}
	default:
		return fmt.Errorf("unknown discount type: %s", offer.DiscountType)
	}
	if !offer.ValidUntil.After(offer.ValidFrom) {
		return fmt.Errorf("valid_until must be after valid_from")
	}
	if offer.TargetRooms != "" {
		if _, err := offer.ParseTargetRooms(); err != nil {
			return fmt.Errorf("invalid room targeting: %w", err)
		}
	}
	return nil
}
