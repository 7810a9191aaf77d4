package domain

import "time"

// Review represents a guest review of a room tied to a completed booking
type Review struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	RoomID    int    `json:"roomId"`
	BookingID int    `json:"bookingId"`
	Rating    int    `json:"rating"`
	Title     string `json:"title,omitempty"`
	Comment   string `json:"comment,omitempty"`

	CleanlinessRating int `json:"cleanlinessRating"`
	ComfortRating     int `json:"comfortRating"`
	LocationRating    int `json:"locationRating"`
	AmenitiesRating   int `json:"amenitiesRating"`
	ServiceRating     int `json:"serviceRating"`

	IsApproved   bool       `json:"isApproved"`
	IsVerified   bool       `json:"isVerified"`
	HelpfulCount int        `json:"helpfulCount"`
	Reply        string     `json:"reply,omitempty"`
	ReplyDate    *time.Time `json:"replyDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewStats aggregates approved reviews for a room
type ReviewStats struct {
	AverageRating      float64     `json:"averageRating"`
	TotalReviews       int         `json:"totalReviews"`
	RatingBreakdown    map[int]int `json:"ratingBreakdown"`
	RecommendationRate float64     `json:"recommendationRate"`
}

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	// GetByID returns a review by id
	GetByID(id int) (*Review, error)
	// Create inserts a new review and fills in its id
	Create(review *Review) error
	// GetApprovedByRoom returns approved reviews for a room, newest first
	GetApprovedByRoom(roomID int) ([]Review, error)
	// GetPending returns reviews awaiting moderation
	GetPending() ([]Review, error)
	// SetApproved approves or rejects a review
	SetApproved(id int, approved bool) error
	// SetReply stores a management response
	SetReply(id int, reply string, at time.Time) error
	// IncrementHelpful adds one helpful vote
	IncrementHelpful(id int) error
	// ExistsForBooking reports whether the booking was already reviewed
	ExistsForBooking(bookingID int) (bool, error)
}
