package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of paymentRepository
func NewPaymentRepository(db *sql.DB) domain.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create implements domain.PaymentRepository
func (r *paymentRepository) Create(payment *domain.Payment) error {
	query := `
		INSERT INTO payment (
			booking_id, amount, payment_method, payment_status,
			gateway_order_id, gateway_payment_id, gateway_signature,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at`

	err := r.db.QueryRow(query,
		payment.BookingID,
		payment.Amount,
		payment.Method,
		payment.Status,
		nullString(payment.GatewayOrderID),
		nullString(payment.GatewayPaymentID),
		nullString(payment.GatewaySignature),
	).Scan(&payment.ID, &payment.CreatedAt)

	if err != nil {
		return fmt.Errorf("error inserting payment: %w", err)
	}
	return nil
}

// GetByBookingID implements domain.PaymentRepository
func (r *paymentRepository) GetByBookingID(bookingID int) ([]domain.Payment, error) {
	query := `
		SELECT id, booking_id, amount, payment_method, payment_status,
			gateway_order_id, gateway_payment_id, gateway_signature, created_at
		FROM payment
		WHERE booking_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("error querying payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var orderID, paymentID, signature sql.NullString
		err := rows.Scan(
			&p.ID,
			&p.BookingID,
			&p.Amount,
			&p.Method,
			&p.Status,
			&orderID,
			&paymentID,
			&signature,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning payment: %w", err)
		}
		p.GatewayOrderID = orderID.String
		p.GatewayPaymentID = paymentID.String
		p.GatewaySignature = signature.String
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdateStatus implements domain.PaymentRepository
func (r *paymentRepository) UpdateStatus(paymentID int, status domain.PaymentStatus) error {
	result, err := r.db.Exec(`
		UPDATE payment
		SET payment_status = $1
		WHERE id = $2`, status, paymentID)
	if err != nil {
		return fmt.Errorf("error updating payment status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking payment update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("payment %d not found", paymentID)
	}
	return nil
}

// RevenueSince implements domain.PaymentRepository
func (r *paymentRepository) RevenueSince(t time.Time) (float64, error) {
	var revenue sql.NullFloat64
	err := r.db.QueryRow(`
		SELECT SUM(amount)
		FROM payment
		WHERE payment_status = $1 AND created_at >= $2`,
		domain.PaymentStatusCompleted, t,
	).Scan(&revenue)
	if err != nil {
		return 0, fmt.Errorf("error computing revenue: %w", err)
	}
	return revenue.Float64, nil
}
