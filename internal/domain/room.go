package domain

import "time"

// RoomStatus is the operational state of a room
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomMaintenance RoomStatus = "maintenance"
	RoomUnavailable RoomStatus = "unavailable"
)

// Room represents a bookable room in the hotel
type Room struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	RoomType    string     `json:"roomType"`
	Price       float64    `json:"price"`
	Capacity    int        `json:"capacity"`
	Size        string     `json:"size,omitempty"`
	Amenities   string     `json:"amenities,omitempty"`
	Description string     `json:"description,omitempty"`
	Images      string     `json:"images,omitempty"`
	Status      RoomStatus `json:"status"`
	MaxAdults   int        `json:"maxAdults"`
	MaxChildren int        `json:"maxChildren"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// RoomRepository defines the interface for room data operations
type RoomRepository interface {
	// GetAllRooms returns all rooms in the system
	GetAllRooms() ([]Room, error)
	// GetRoomByID returns a single room
	GetRoomByID(id int) (*Room, error)
	// GetAvailableRooms returns available rooms for the given date range,
	// optionally filtered by room type and minimum capacity
	GetAvailableRooms(checkIn, checkOut time.Time, roomType string, guests int) ([]Room, error)
	// IsRoomAvailable reports whether a room has no overlapping active booking
	IsRoomAvailable(roomID int, checkIn, checkOut time.Time) (bool, error)
	// GetRoomTypes returns the distinct room types in the catalog
	GetRoomTypes() ([]string, error)
	// CreateRoom inserts a new room and fills in its id
	CreateRoom(room *Room) error
	// UpdateRoom rewrites a room's fields
	UpdateRoom(room *Room) error
	// DeleteRoom removes a room
	DeleteRoom(id int) error
}
