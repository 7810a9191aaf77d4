package application

import (
	"fmt"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type ReviewService struct {
	reviewRepo  domain.ReviewRepository
	bookingRepo domain.BookingRepository
	validator   *Validator
}

// NewReviewService creates a new instance of the review service
func NewReviewService(reviewRepo domain.ReviewRepository, bookingRepo domain.BookingRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		validator:   &Validator{},
	}
}

// SubmitReview records a guest review for a completed stay. Reviews require
// a completed booking by the same user on the same room, one review per
// booking. New reviews await moderation; the verified flag marks them as
// tied to a real stay.
func (s *ReviewService) SubmitReview(review *domain.Review) error {
	if err := s.validator.ValidateRating(review.Rating, "rating"); err != nil {
		return err
	}
	for _, r := range []struct {
		value int
		name  string
	}{
		{review.CleanlinessRating, "cleanliness rating"},
		{review.ComfortRating, "comfort rating"},
		{review.LocationRating, "location rating"},
		{review.AmenitiesRating, "amenities rating"},
		{review.ServiceRating, "service rating"},
	} {
		if r.value != 0 {
			if err := s.validator.ValidateRating(r.value, r.name); err != nil {
				return err
			}
		}
	}

	booking, err := s.bookingRepo.GetByID(review.BookingID)
	if err != nil {
		return fmt.Errorf("error loading booking: %w", err)
	}
	if booking.UserID != review.UserID {
		return fmt.Errorf("booking does not belong to this user")
	}
	if booking.RoomID != review.RoomID {
		return fmt.Errorf("booking is for a different room")
	}
	if booking.Status != domain.BookingCompleted && booking.Status != domain.BookingCheckedOut {
		return fmt.Errorf("only completed stays can be reviewed")
	}

	exists, err := s.reviewRepo.ExistsForBooking(review.BookingID)
	if err != nil {
		return fmt.Errorf("error checking existing review: %w", err)
	}
	if exists {
		return fmt.Errorf("this booking has already been reviewed")
	}

	review.IsApproved = false
	review.IsVerified = true
	review.HelpfulCount = 0

	if err := s.reviewRepo.Create(review); err != nil {
		return fmt.Errorf("error creating review: %w", err)
	}
	return nil
}

// GetRoomReviews returns the approved reviews of a room with aggregate stats
func (s *ReviewService) GetRoomReviews(roomID int) ([]domain.Review, *domain.ReviewStats, error) {
	reviews, err := s.reviewRepo.GetApprovedByRoom(roomID)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing reviews: %w", err)
	}

	stats := &domain.ReviewStats{
		RatingBreakdown: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) > 0 {
		sum := 0
		recommended := 0
		for _, r := range reviews {
			sum += r.Rating
			stats.RatingBreakdown[r.Rating]++
			if r.Rating >= 4 {
				recommended++
			}
		}
		stats.TotalReviews = len(reviews)
		stats.AverageRating = float64(sum) / float64(len(reviews))
		stats.RecommendationRate = float64(recommended) / float64(len(reviews)) * 100
	}

	return reviews, stats, nil
}

// MarkHelpful adds one helpful vote to a review
func (s *ReviewService) MarkHelpful(reviewID int) error {
	if err := s.reviewRepo.IncrementHelpful(reviewID); err != nil {
		return fmt.Errorf("error recording helpful vote: %w", err)
	}
	return nil
}

// GetPendingReviews returns reviews awaiting moderation
func (s *ReviewService) GetPendingReviews() ([]domain.Review, error) {
	return s.reviewRepo.GetPending()
}

// ModerateReview approves or rejects a pending review
func (s *ReviewService) ModerateReview(reviewID int, approve bool) error {
	if err := s.reviewRepo.SetApproved(reviewID, approve); err != nil {
		return fmt.Errorf("error moderating review: %w", err)
	}
	return nil
}

// ReplyToReview stores a management response on a review
func (s *ReviewService) ReplyToReview(reviewID int, reply string, now time.Time) error {
	if reply == "" {
		return fmt.Errorf("reply text is required")
	}
	if err := s.reviewRepo.SetReply(reviewID, reply, now); err != nil {
		return fmt.Errorf("error saving reply: %w", err)
	}
	return nil
}
