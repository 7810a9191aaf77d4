package application

import (
	"fmt"
	"math"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

// DashboardStats is the admin landing page summary
type DashboardStats struct {
	TotalRooms        int     `json:"totalRooms"`
	OccupiedRooms     int     `json:"occupiedRooms"`
	OccupancyRate     float64 `json:"occupancyRate"`
	PendingBookings   int     `json:"pendingBookings"`
	ConfirmedBookings int     `json:"confirmedBookings"`
	RevenueLast30Days float64 `json:"revenueLast30Days"`
}

type DashboardService struct {
	roomRepo    domain.RoomRepository
	bookingRepo domain.BookingRepository
	paymentRepo domain.PaymentRepository
}

// NewDashboardService creates a new instance of the dashboard service
func NewDashboardService(roomRepo domain.RoomRepository, bookingRepo domain.BookingRepository, paymentRepo domain.PaymentRepository) *DashboardService {
	return &DashboardService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
	}
}

// GetStats computes today's occupancy, booking pipeline counts, and rolling
// 30-day revenue.
func (s *DashboardService) GetStats(now time.Time) (*DashboardStats, error) {
	rooms, err := s.roomRepo.GetAllRooms()
	if err != nil {
		return nil, fmt.Errorf("error listing rooms: %w", err)
	}

	occupied, err := s.bookingRepo.CountOccupiedRooms(now)
	if err != nil {
		return nil, fmt.Errorf("error counting occupied rooms: %w", err)
	}

	pending, err := s.bookingRepo.CountByStatus(domain.BookingPending)
	if err != nil {
		return nil, fmt.Errorf("error counting pending bookings: %w", err)
	}
	confirmed, err := s.bookingRepo.CountByStatus(domain.BookingConfirmed)
	if err != nil {
		return nil, fmt.Errorf("error counting confirmed bookings: %w", err)
	}

	revenue, err := s.paymentRepo.RevenueSince(now.AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("error computing revenue: %w", err)
	}

	stats := &DashboardStats{
		TotalRooms:        len(rooms),
		OccupiedRooms:     occupied,
		PendingBookings:   pending,
		ConfirmedBookings: confirmed,
		RevenueLast30Days: revenue,
	}
	if stats.TotalRooms > 0 {
		stats.OccupancyRate = math.Round(float64(occupied)/float64(stats.TotalRooms)*1000) / 10
	}
	return stats, nil
}
