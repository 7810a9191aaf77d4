package application

import (
	"fmt"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type RoomService struct {
	roomRepo domain.RoomRepository
}

// NewRoomService creates a new instance of the room service
func NewRoomService(roomRepo domain.RoomRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo}
}

// GetAllRooms returns the full room catalog
func (s *RoomService) GetAllRooms() ([]domain.Room, error) {
	rooms, err := s.roomRepo.GetAllRooms()
	if err != nil {
		return nil, fmt.Errorf("error listing rooms: %w", err)
	}
	return rooms, nil
}

// GetRoom returns a single room by id
func (s *RoomService) GetRoom(id int) (*domain.Room, error) {
	return s.roomRepo.GetRoomByID(id)
}

// SearchAvailableRooms returns rooms free for the given date range,
// optionally filtered by type and guest count
func (s *RoomService) SearchAvailableRooms(checkIn, checkOut time.Time, roomType string, guests int) ([]domain.Room, error) {
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("check-out must be after check-in")
	}
	rooms, err := s.roomRepo.GetAvailableRooms(checkIn, checkOut, roomType, guests)
	if err != nil {
		return nil, fmt.Errorf("error searching rooms: %w", err)
	}
	return rooms, nil
}

// GetRoomTypes returns the distinct room types in the catalog
func (s *RoomService) GetRoomTypes() ([]string, error) {
	types, err := s.roomRepo.GetRoomTypes()
	if err != nil {
		return nil, fmt.Errorf("error listing room types: %w", err)
	}
	return types, nil
}

// CreateRoom registers a new room after validating its configuration
func (s *RoomService) CreateRoom(room *domain.Room) error {
	if err := validateRoom(room); err != nil {
		return err
	}
	if room.Status == "" {
		room.Status = domain.RoomAvailable
	}
	if err := s.roomRepo.CreateRoom(room); err != nil {
		return fmt.Errorf("error creating room: %w", err)
	}
	return nil
}

// UpdateRoom rewrites a room's fields
func (s *RoomService) UpdateRoom(room *domain.Room) error {
	if err := validateRoom(room); err != nil {
		return err
	}
	if err := s.roomRepo.UpdateRoom(room); err != nil {
		return fmt.Errorf("error updating room: %w", err)
	}
	return nil
}

// DeleteRoom removes a room from the catalog
func (s *RoomService) DeleteRoom(id int) error {
	if err := s.roomRepo.DeleteRoom(id); err != nil {
		return fmt.Errorf("error deleting room: %w", err)
	}
	return nil
}

func validateRoom(room *domain.Room) error {
	if room.Name == "" {
		return fmt.Errorf("room name is required")
	}
	if room.RoomType == "" {
		return fmt.Errorf("room type is required")
	}
	if room.Price <= 0 {
		return fmt.Errorf("room price must be greater than 0")
	}
	if room.MaxAdults < 1 {
		return fmt.Errorf("room must allow at least one adult")
	}
	return nil
}
