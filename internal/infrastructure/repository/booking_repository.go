package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new instance of bookingRepository
func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		db: db,
	}
}

const bookingColumns = `
	id, user_id, room_id, check_in, check_out, adults, children,
	total_nights, base_amount, tax_amount, discount_amount,
	total_amount, final_amount, status, payment_status,
	coupon_code, special_requests, gateway_order_id,
	applied_offer_ids, created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (*domain.Booking, error) {
	var b domain.Booking
	var couponCode, specialRequests, gatewayOrderID, appliedOfferIDs sql.NullString

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.RoomID,
		&b.CheckIn,
		&b.CheckOut,
		&b.Adults,
		&b.Children,
		&b.TotalNights,
		&b.BaseAmount,
		&b.TaxAmount,
		&b.DiscountAmount,
		&b.TotalAmount,
		&b.FinalAmount,
		&b.Status,
		&b.PaymentStatus,
		&couponCode,
		&specialRequests,
		&gatewayOrderID,
		&appliedOfferIDs,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CouponCode = couponCode.String
	b.SpecialRequests = specialRequests.String
	b.GatewayOrderID = gatewayOrderID.String
	if appliedOfferIDs.Valid && appliedOfferIDs.String != "" {
		if err := json.Unmarshal([]byte(appliedOfferIDs.String), &b.AppliedOfferIDs); err != nil {
			return nil, fmt.Errorf("error decoding applied offer ids: %w", err)
		}
	}
	return &b, nil
}

// GetByID implements domain.BookingRepository
func (r *bookingRepository) GetByID(id int) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM booking WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return booking, nil
}

// Create implements domain.BookingRepository
func (r *bookingRepository) Create(booking *domain.Booking) error {
	query := `
		INSERT INTO booking (
			user_id, room_id, check_in, check_out, adults, children,
			total_nights, base_amount, tax_amount, discount_amount,
			total_amount, final_amount, status, payment_status,
			coupon_code, special_requests, gateway_order_id,
			applied_offer_ids, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW()
		)
		RETURNING id, created_at, updated_at`

	var appliedOfferIDs sql.NullString
	if len(booking.AppliedOfferIDs) > 0 {
		encoded, err := json.Marshal(booking.AppliedOfferIDs)
		if err != nil {
			return fmt.Errorf("error encoding applied offer ids: %w", err)
		}
		appliedOfferIDs = sql.NullString{String: string(encoded), Valid: true}
	}

	err := r.db.QueryRow(query,
		booking.UserID,
		booking.RoomID,
		booking.CheckIn,
		booking.CheckOut,
		booking.Adults,
		booking.Children,
		booking.TotalNights,
		booking.BaseAmount,
		booking.TaxAmount,
		booking.DiscountAmount,
		booking.TotalAmount,
		booking.FinalAmount,
		booking.Status,
		booking.PaymentStatus,
		nullString(booking.CouponCode),
		nullString(booking.SpecialRequests),
		nullString(booking.GatewayOrderID),
		appliedOfferIDs,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}
	return nil
}

// UpdateStatus implements domain.BookingRepository
func (r *bookingRepository) UpdateStatus(id int, status domain.BookingStatus) error {
	result, err := r.db.Exec(`
		UPDATE booking
		SET status = $1, updated_at = NOW()
		WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking status update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("booking %d not found", id)
	}
	return nil
}

// UpdatePayment implements domain.BookingRepository
func (r *bookingRepository) UpdatePayment(id int, state domain.PaymentState, gatewayOrderID string) error {
	result, err := r.db.Exec(`
		UPDATE booking
		SET payment_status = $1, gateway_order_id = $2, updated_at = NOW()
		WHERE id = $3`, state, nullString(gatewayOrderID), id)
	if err != nil {
		return fmt.Errorf("error updating booking payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking payment update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("booking %d not found", id)
	}
	return nil
}

// GetByUser implements domain.BookingRepository
func (r *bookingRepository) GetByUser(userID int) ([]domain.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM booking
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying user bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountCompletedByUser implements domain.BookingRepository
func (r *bookingRepository) CountCompletedByUser(userID int) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*)
		FROM booking
		WHERE user_id = $1 AND status = $2`,
		userID, domain.BookingCompleted,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting completed stays: %w", err)
	}
	return count, nil
}

// CompleteExpired implements domain.BookingRepository
func (r *bookingRepository) CompleteExpired() error {
	_, err := r.db.Exec(`
		UPDATE booking
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND check_out < NOW()`,
		domain.BookingCompleted, domain.BookingConfirmed)
	if err != nil {
		return fmt.Errorf("error completing expired bookings: %w", err)
	}
	return nil
}

// CountByStatus implements domain.BookingRepository
func (r *bookingRepository) CountByStatus(status domain.BookingStatus) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM booking WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting bookings: %w", err)
	}
	return count, nil
}

// CountOccupiedRooms implements domain.BookingRepository
func (r *bookingRepository) CountOccupiedRooms(date time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(DISTINCT room_id)
		FROM booking
		WHERE status IN ($1, $2)
		  AND check_in <= $3 AND check_out > $3`,
		domain.BookingConfirmed, domain.BookingCheckedIn, date,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting occupied rooms: %w", err)
	}
	return count, nil
}

// CountRedemptionsSince implements domain.BookingRepository
func (r *bookingRepository) CountRedemptionsSince(code string, t time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*)
		FROM booking
		WHERE coupon_code = $1 AND created_at >= $2`, code, t).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting recent redemptions: %w", err)
	}
	return count, nil
}

// RedemptionTotals implements domain.BookingRepository
func (r *bookingRepository) RedemptionTotals(code string) (domain.RedemptionTotals, error) {
	var totals domain.RedemptionTotals
	err := r.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(discount_amount), 0),
		       COALESCE(SUM(final_amount), 0)
		FROM booking
		WHERE coupon_code = $1`, code,
	).Scan(&totals.Bookings, &totals.TotalDiscount, &totals.TotalRevenue)
	if err != nil {
		return domain.RedemptionTotals{}, fmt.Errorf("error summing redemptions: %w", err)
	}
	return totals, nil
}
