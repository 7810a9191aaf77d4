package application

import (
	"fmt"
	"time"
)

// Validator holds request data validation helpers
type Validator struct{}

// ValidateRating checks a 1 to 5 star rating
func (v *Validator) ValidateRating(rating int, fieldName string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%s must be between 1 and 5", fieldName)
	}
	return nil
}

// ValidateStayDates checks a check-in/check-out pair against now
func (v *Validator) ValidateStayDates(checkIn, checkOut, now time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return fmt.Errorf("check-in and check-out dates are required")
	}
	if !checkOut.After(checkIn) {
		return fmt.Errorf("check-out must be after check-in")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if checkIn.Before(today) {
		return fmt.Errorf("check-in cannot be in the past")
	}
	return nil
}
