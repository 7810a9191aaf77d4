package application

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type fakeReviewRepo struct {
	reviews map[int]*domain.Review
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[int]*domain.Review{}, nextID: 1}
}

func (r *fakeReviewRepo) GetByID(id int) (*domain.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review %d not found", id)
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) Create(review *domain.Review) error {
	review.ID = r.nextID
	r.nextID++
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetApprovedByRoom(roomID int) ([]domain.Review, error) {
	var result []domain.Review
	for _, review := range r.reviews {
		if review.RoomID == roomID && review.IsApproved {
			result = append(result, *review)
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) GetPending() ([]domain.Review, error) {
	var result []domain.Review
	for _, review := range r.reviews {
		if !review.IsApproved {
			result = append(result, *review)
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) SetApproved(id int, approved bool) error {
	review, ok := r.reviews[id]
	if !ok {
		return fmt.Errorf("review %d not found", id)
	}
	review.IsApproved = approved
	return nil
}

func (r *fakeReviewRepo) SetReply(id int, reply string, at time.Time) error {
	review, ok := r.reviews[id]
	if !ok {
		return fmt.Errorf("review %d not found", id)
	}
	review.Reply = reply
	review.ReplyDate = &at
	return nil
}

func (r *fakeReviewRepo) IncrementHelpful(id int) error {
	review, ok := r.reviews[id]
	if !ok {
		return fmt.Errorf("review %d not found", id)
	}
	review.HelpfulCount++
	return nil
}

func (r *fakeReviewRepo) ExistsForBooking(bookingID int) (bool, error) {
	for _, review := range r.reviews {
		if review.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func newReviewFixture(t *testing.T) (*ReviewService, *fakeReviewRepo, *domain.Booking) {
	t.Helper()

	bookingRepo := newFakeBookingRepo()
	booking := &domain.Booking{
		UserID: 1,
		RoomID: 2,
		Status: domain.BookingCompleted,
	}
	require.NoError(t, bookingRepo.Create(booking))

	reviewRepo := newFakeReviewRepo()
	return NewReviewService(reviewRepo, bookingRepo), reviewRepo, booking
}

func TestSubmitReview(t *testing.T) {
	svc, repo, booking := newReviewFixture(t)

	review := &domain.Review{
		UserID:    1,
		RoomID:    2,
		BookingID: booking.ID,
		Rating:    5,
		Title:     "Wonderful stay",
		// Submitted flags should be overwritten by the service.
		IsApproved: true,
		IsVerified: false,
	}
	require.NoError(t, svc.SubmitReview(review))

	stored, err := repo.GetByID(review.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsApproved)
	assert.True(t, stored.IsVerified)
	assert.Equal(t, 0, stored.HelpfulCount)
}

func TestSubmitReviewRejectsBadRating(t *testing.T) {
	svc, _, booking := newReviewFixture(t)

	review := &domain.Review{UserID: 1, RoomID: 2, BookingID: booking.ID, Rating: 6}
	assert.Error(t, svc.SubmitReview(review))

	review.Rating = 4
	review.ComfortRating = 9
	assert.Error(t, svc.SubmitReview(review))
}

func TestSubmitReviewOwnershipAndState(t *testing.T) {
	svc, _, booking := newReviewFixture(t)

	wrongUser := &domain.Review{UserID: 9, RoomID: 2, BookingID: booking.ID, Rating: 4}
	assert.Error(t, svc.SubmitReview(wrongUser))

	wrongRoom := &domain.Review{UserID: 1, RoomID: 7, BookingID: booking.ID, Rating: 4}
	assert.Error(t, svc.SubmitReview(wrongRoom))
}

func TestSubmitReviewRequiresCompletedStay(t *testing.T) {
	bookingRepo := newFakeBookingRepo()
	pending := &domain.Booking{UserID: 1, RoomID: 2, Status: domain.BookingPending}
	require.NoError(t, bookingRepo.Create(pending))

	svc := NewReviewService(newFakeReviewRepo(), bookingRepo)

	review := &domain.Review{UserID: 1, RoomID: 2, BookingID: pending.ID, Rating: 4}
	assert.Error(t, svc.SubmitReview(review))
}

func TestSubmitReviewOncePerBooking(t *testing.T) {
	svc, _, booking := newReviewFixture(t)

	first := &domain.Review{UserID: 1, RoomID: 2, BookingID: booking.ID, Rating: 4}
	require.NoError(t, svc.SubmitReview(first))

	second := &domain.Review{UserID: 1, RoomID: 2, BookingID: booking.ID, Rating: 5}
	assert.Error(t, svc.SubmitReview(second))
}

func TestGetRoomReviewsStats(t *testing.T) {
	svc, repo, _ := newReviewFixture(t)

	ratings := []int{5, 5, 4, 2}
	for i, rating := range ratings {
		require.NoError(t, repo.Create(&domain.Review{
			RoomID:     2,
			BookingID:  100 + i,
			Rating:     rating,
			IsApproved: true,
		}))
	}
	// Unapproved reviews stay out of the aggregates.
	require.NoError(t, repo.Create(&domain.Review{RoomID: 2, BookingID: 200, Rating: 1}))

	reviews, stats, err := svc.GetRoomReviews(2)
	require.NoError(t, err)
	assert.Len(t, reviews, 4)
	assert.Equal(t, 4, stats.TotalReviews)
	assert.Equal(t, 4.0, stats.AverageRating)
	assert.Equal(t, 75.0, stats.RecommendationRate)
	assert.Equal(t, 2, stats.RatingBreakdown[5])
	assert.Equal(t, 1, stats.RatingBreakdown[4])
	assert.Equal(t, 1, stats.RatingBreakdown[2])
}

func TestModerateAndReply(t *testing.T) {
	svc, repo, booking := newReviewFixture(t)

	review := &domain.Review{UserID: 1, RoomID: 2, BookingID: booking.ID, Rating: 3}
	require.NoError(t, svc.SubmitReview(review))

	pending, err := svc.GetPendingReviews()
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	require.NoError(t, svc.ModerateReview(review.ID, true))
	stored, err := repo.GetByID(review.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsApproved)

	at := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	require.NoError(t, svc.ReplyToReview(review.ID, "Thank you for staying with us", at))
	stored, err = repo.GetByID(review.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thank you for staying with us", stored.Reply)
	require.NotNil(t, stored.ReplyDate)
	assert.Equal(t, at, *stored.ReplyDate)

	assert.Error(t, svc.ReplyToReview(review.ID, "", at))
}

func TestMarkHelpful(t *testing.T) {
	svc, repo, booking := newReviewFixture(t)

	review := &domain.Review{UserID: 1, RoomID: 2, BookingID: booking.ID, Rating: 4}
	require.NoError(t, svc.SubmitReview(review))

	require.NoError(t, svc.MarkHelpful(review.ID))
	require.NoError(t, svc.MarkHelpful(review.ID))

	stored, err := repo.GetByID(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.HelpfulCount)
}
