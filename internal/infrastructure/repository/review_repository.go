package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of reviewRepository
func NewReviewRepository(db *sql.DB) domain.ReviewRepository {
	return &reviewRepository{
		db: db,
	}
}

const reviewColumns = `
	id, user_id, room_id, booking_id, rating, title, comment,
	cleanliness_rating, comfort_rating, location_rating,
	amenities_rating, service_rating,
	is_approved, is_verified, helpful_count, reply, reply_date,
	created_at, updated_at`

func scanReview(row interface{ Scan(...interface{}) error }) (*domain.Review, error) {
	var rv domain.Review
	var title, comment, reply sql.NullString
	var replyDate sql.NullTime

	err := row.Scan(
		&rv.ID,
		&rv.UserID,
		&rv.RoomID,
		&rv.BookingID,
		&rv.Rating,
		&title,
		&comment,
		&rv.CleanlinessRating,
		&rv.ComfortRating,
		&rv.LocationRating,
		&rv.AmenitiesRating,
		&rv.ServiceRating,
		&rv.IsApproved,
		&rv.IsVerified,
		&rv.HelpfulCount,
		&reply,
		&replyDate,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rv.Title = title.String
	rv.Comment = comment.String
	rv.Reply = reply.String
	if replyDate.Valid {
		rv.ReplyDate = &replyDate.Time
	}
	return &rv, nil
}

// GetByID implements domain.ReviewRepository
func (r *reviewRepository) GetByID(id int) (*domain.Review, error) {
	query := `SELECT` + reviewColumns + ` FROM review WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("review %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying review: %w", err)
	}
	return review, nil
}

// Create implements domain.ReviewRepository
func (r *reviewRepository) Create(review *domain.Review) error {
	query := `
		INSERT INTO review (
			user_id, room_id, booking_id, rating, title, comment,
			cleanliness_rating, comfort_rating, location_rating,
			amenities_rating, service_rating,
			is_approved, is_verified, helpful_count,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, NOW(), NOW()
		)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		review.UserID,
		review.RoomID,
		review.BookingID,
		review.Rating,
		nullString(review.Title),
		nullString(review.Comment),
		review.CleanlinessRating,
		review.ComfortRating,
		review.LocationRating,
		review.AmenitiesRating,
		review.ServiceRating,
		review.IsApproved,
		review.IsVerified,
		review.HelpfulCount,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error inserting review: %w", err)
	}
	return nil
}

// GetApprovedByRoom implements domain.ReviewRepository
func (r *reviewRepository) GetApprovedByRoom(roomID int) ([]domain.Review, error) {
	query := `SELECT` + reviewColumns + `
		FROM review
		WHERE room_id = $1 AND is_approved = true
		ORDER BY created_at DESC`

	return r.listReviews(query, roomID)
}

// GetPending implements domain.ReviewRepository
func (r *reviewRepository) GetPending() ([]domain.Review, error) {
	query := `SELECT` + reviewColumns + `
		FROM review
		WHERE is_approved = false
		ORDER BY created_at`

	return r.listReviews(query)
}

func (r *reviewRepository) listReviews(query string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning review: %w", err)
		}
		reviews = append(reviews, *review)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// SetApproved implements domain.ReviewRepository
func (r *reviewRepository) SetApproved(id int, approved bool) error {
	result, err := r.db.Exec(`
		UPDATE review
		SET is_approved = $1, updated_at = NOW()
		WHERE id = $2`, approved, id)
	if err != nil {
		return fmt.Errorf("error moderating review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking moderation result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("review %d not found", id)
	}
	return nil
}

// SetReply implements domain.ReviewRepository
func (r *reviewRepository) SetReply(id int, reply string, at time.Time) error {
	result, err := r.db.Exec(`
		UPDATE review
		SET reply = $1, reply_date = $2, updated_at = NOW()
		WHERE id = $3`, reply, at, id)
	if err != nil {
		return fmt.Errorf("error saving review reply: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking reply result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("review %d not found", id)
	}
	return nil
}

// IncrementHelpful implements domain.ReviewRepository
func (r *reviewRepository) IncrementHelpful(id int) error {
	result, err := r.db.Exec(`
		UPDATE review
		SET helpful_count = helpful_count + 1, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error recording helpful vote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking helpful vote: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("review %d not found", id)
	}
	return nil
}

// ExistsForBooking implements domain.ReviewRepository
func (r *reviewRepository) ExistsForBooking(bookingID int) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM review WHERE booking_id = $1`, bookingID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("error checking existing review: %w", err)
	}
	return count > 0, nil
}
