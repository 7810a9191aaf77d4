package domain

import "time"

type PaymentMethod string
type PaymentStatus string

const (
	PaymentMethodGateway PaymentMethod = "razorpay"
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodCard    PaymentMethod = "card"
)

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment represents a payment recorded against a booking
type Payment struct {
	ID               int           `json:"id"`
	BookingID        int           `json:"bookingId"`
	Amount           float64       `json:"amount"`
	Method           PaymentMethod `json:"paymentMethod"`
	Status           PaymentStatus `json:"paymentStatus"`
	GatewayOrderID   string        `json:"-"`
	GatewayPaymentID string        `json:"-"`
	GatewaySignature string        `json:"-"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create inserts a new payment and fills in its id
	Create(payment *Payment) error
	// GetByBookingID returns the payments of a booking
	GetByBookingID(bookingID int) ([]Payment, error)
	// UpdateStatus updates a payment's status
	UpdateStatus(paymentID int, status PaymentStatus) error
	// RevenueSince sums completed payments created after t
	RevenueSince(t time.Time) (float64, error)
}
