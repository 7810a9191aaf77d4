package scheduler

import (
	"log"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

// BookingScheduler sweeps confirmed bookings past their checkout date into
// the completed state. Completed-stay counts drive guest segmentation, so
// the sweep keeps offer targeting current.
type BookingScheduler struct {
	bookingRepo domain.BookingRepository
	ticker      *time.Ticker
}

// NewBookingScheduler creates a new instance of the booking scheduler
func NewBookingScheduler(bookingRepo domain.BookingRepository) *BookingScheduler {
	return &BookingScheduler{
		bookingRepo: bookingRepo,
	}
}

// Start runs one sweep immediately, then schedules a daily run shortly
// after midnight.
func (s *BookingScheduler) Start() {
	log.Println("Booking scheduler started, runs every 24 hours")

	s.CompleteExpiredBookings()

	now := time.Now()
	nextRun := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 1, 0, 0, now.Location())
	durationUntilNextRun := time.Until(nextRun)

	log.Printf("Next scheduled run: %s", nextRun.Format("2006-01-02 15:04:05"))

	time.AfterFunc(durationUntilNextRun, func() {
		s.CompleteExpiredBookings()

		s.ticker = time.NewTicker(24 * time.Hour)
		go func() {
			for range s.ticker.C {
				s.CompleteExpiredBookings()
			}
		}()
	})
}

// Stop halts the scheduler
func (s *BookingScheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		log.Println("Booking scheduler stopped")
	}
}

// CompleteExpiredBookings runs one sweep
func (s *BookingScheduler) CompleteExpiredBookings() {
	log.Println("Completing bookings past their checkout date...")

	if err := s.bookingRepo.CompleteExpired(); err != nil {
		log.Printf("Error completing expired bookings: %v", err)
	} else {
		log.Println("Expired bookings completed")
	}
}
