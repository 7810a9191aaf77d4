package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type offerRepository struct {
	db *sql.DB
}

// NewOfferRepository creates a new instance of offerRepository
func NewOfferRepository(db *sql.DB) domain.OfferRepository {
	return &offerRepository{
		db: db,
	}
}

const offerColumns = `
	id, code, name, description, terms_conditions,
	discount_type, discount_value, min_amount, max_discount,
	valid_from, valid_until, is_active, usage_limit, used_count,
	is_public, auto_apply, priority,
	target_user_type, min_stay_nights, max_stay_nights,
	advance_booking_days, max_advance_booking_days,
	season_type, day_of_week, target_rooms,
	banner_image, created_at, updated_at`

func scanOffer(row interface{ Scan(...interface{}) error }) (*domain.Offer, error) {
	var o domain.Offer
	var termsConditions, targetRooms, bannerImage sql.NullString
	var maxDiscount sql.NullFloat64
	var usageLimit, maxStayNights, maxAdvanceBookingDays sql.NullInt64

	err := row.Scan(
		&o.ID,
		&o.Code,
		&o.Name,
		&o.Description,
		&termsConditions,
		&o.DiscountType,
		&o.DiscountValue,
		&o.MinAmount,
		&maxDiscount,
		&o.ValidFrom,
		&o.ValidUntil,
		&o.IsActive,
		&usageLimit,
		&o.UsedCount,
		&o.IsPublic,
		&o.AutoApply,
		&o.Priority,
		&o.TargetUserType,
		&o.MinStayNights,
		&maxStayNights,
		&o.AdvanceBookingDays,
		&maxAdvanceBookingDays,
		&o.SeasonType,
		&o.DayOfWeek,
		&targetRooms,
		&bannerImage,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.TermsConditions = termsConditions.String
	o.TargetRooms = targetRooms.String
	o.BannerImage = bannerImage.String
	if maxDiscount.Valid {
		o.MaxDiscount = &maxDiscount.Float64
	}
	if usageLimit.Valid {
		v := int(usageLimit.Int64)
		o.UsageLimit = &v
	}
	if maxStayNights.Valid {
		v := int(maxStayNights.Int64)
		o.MaxStayNights = &v
	}
	if maxAdvanceBookingDays.Valid {
		v := int(maxAdvanceBookingDays.Int64)
		o.MaxAdvanceBookingDays = &v
	}

	return &o, nil
}

// GetByCode implements domain.OfferRepository
func (r *offerRepository) GetByCode(code string) (*domain.Offer, error) {
	query := `SELECT` + offerColumns + ` FROM offer WHERE code = $1`

	offer, err := scanOffer(r.db.QueryRow(query, code))
	if err == sql.ErrNoRows {
		return nil, domain.ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying offer by code: %w", err)
	}
	return offer, nil
}

// GetByID implements domain.OfferRepository
func (r *offerRepository) GetByID(id int) (*domain.Offer, error) {
	query := `SELECT` + offerColumns + ` FROM offer WHERE id = $1`

	offer, err := scanOffer(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying offer by id: %w", err)
	}
	return offer, nil
}

// ListPublicActive implements domain.OfferRepository
func (r *offerRepository) ListPublicActive() ([]domain.Offer, error) {
	query := `SELECT` + offerColumns + `
		FROM offer
		WHERE is_active = true AND is_public = true
		ORDER BY priority DESC, created_at DESC`

	return r.listOffers(query)
}

// ListAll implements domain.OfferRepository
func (r *offerRepository) ListAll() ([]domain.Offer, error) {
	query := `SELECT` + offerColumns + `
		FROM offer
		ORDER BY created_at DESC`

	return r.listOffers(query)
}

func (r *offerRepository) listOffers(query string, args ...interface{}) ([]domain.Offer, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying offers: %w", err)
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning offer: %w", err)
		}
		offers = append(offers, *offer)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return offers, nil
}

// Create implements domain.OfferRepository
func (r *offerRepository) Create(offer *domain.Offer) error {
	query := `
		INSERT INTO offer (
			code, name, description, terms_conditions,
			discount_type, discount_value, min_amount, max_discount,
			valid_from, valid_until, is_active, usage_limit, used_count,
			is_public, auto_apply, priority,
			target_user_type, min_stay_nights, max_stay_nights,
			advance_booking_days, max_advance_booking_days,
			season_type, day_of_week, target_rooms,
			banner_image, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25,
			NOW(), NOW()
		)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		offer.Code,
		offer.Name,
		offer.Description,
		nullString(offer.TermsConditions),
		offer.DiscountType,
		offer.DiscountValue,
		offer.MinAmount,
		nullFloat(offer.MaxDiscount),
		offer.ValidFrom,
		offer.ValidUntil,
		offer.IsActive,
		nullInt(offer.UsageLimit),
		offer.UsedCount,
		offer.IsPublic,
		offer.AutoApply,
		offer.Priority,
		offer.TargetUserType,
		offer.MinStayNights,
		nullInt(offer.MaxStayNights),
		offer.AdvanceBookingDays,
		nullInt(offer.MaxAdvanceBookingDays),
		offer.SeasonType,
		offer.DayOfWeek,
		nullString(offer.TargetRooms),
		nullString(offer.BannerImage),
	).Scan(&offer.ID, &offer.CreatedAt, &offer.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("error inserting offer: %w", err)
	}
	return nil
}

// Update implements domain.OfferRepository
func (r *offerRepository) Update(offer *domain.Offer) error {
	query := `
		UPDATE offer SET
			code = $1, name = $2, description = $3, terms_conditions = $4,
			discount_type = $5, discount_value = $6, min_amount = $7, max_discount = $8,
			valid_from = $9, valid_until = $10, is_active = $11, usage_limit = $12,
			is_public = $13, auto_apply = $14, priority = $15,
			target_user_type = $16, min_stay_nights = $17, max_stay_nights = $18,
			advance_booking_days = $19, max_advance_booking_days = $20,
			season_type = $21, day_of_week = $22, target_rooms = $23,
			banner_image = $24, updated_at = NOW()
		WHERE id = $25`

	result, err := r.db.Exec(query,
		offer.Code,
		offer.Name,
		offer.Description,
		nullString(offer.TermsConditions),
		offer.DiscountType,
		offer.DiscountValue,
		offer.MinAmount,
		nullFloat(offer.MaxDiscount),
		offer.ValidFrom,
		offer.ValidUntil,
		offer.IsActive,
		nullInt(offer.UsageLimit),
		offer.IsPublic,
		offer.AutoApply,
		offer.Priority,
		offer.TargetUserType,
		offer.MinStayNights,
		nullInt(offer.MaxStayNights),
		offer.AdvanceBookingDays,
		nullInt(offer.MaxAdvanceBookingDays),
		offer.SeasonType,
		offer.DayOfWeek,
		nullString(offer.TargetRooms),
		nullString(offer.BannerImage),
		offer.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("error updating offer: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

// Delete implements domain.OfferRepository
func (r *offerRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM offer WHERE id = $1 AND used_count = 0`, id)
	if err != nil {
		return fmt.Errorf("error deleting offer: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking delete result: %w", err)
	}
	if affected == 0 {
		// Either missing or already redeemed; disambiguate for the caller
		var usedCount int
		err := r.db.QueryRow(`SELECT used_count FROM offer WHERE id = $1`, id).Scan(&usedCount)
		if err == sql.ErrNoRows {
			return domain.ErrOfferNotFound
		}
		if err != nil {
			return fmt.Errorf("error checking offer usage: %w", err)
		}
		return domain.ErrOfferInUse
	}
	return nil
}

// IncrementUsage implements domain.OfferRepository
func (r *offerRepository) IncrementUsage(id int) error {
	result, err := r.db.Exec(`
		UPDATE offer
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error incrementing offer usage: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking usage update: %w", err)
	}
	if affected == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

// SetActive implements domain.OfferRepository
func (r *offerRepository) SetActive(id int, active bool) error {
	result, err := r.db.Exec(`
		UPDATE offer
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("error toggling offer: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking toggle result: %w", err)
	}
	if affected == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
