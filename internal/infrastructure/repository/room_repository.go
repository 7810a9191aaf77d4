package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type roomRepository struct {
	db *sql.DB
}

// NewRoomRepository creates a new instance of roomRepository
func NewRoomRepository(db *sql.DB) domain.RoomRepository {
	return &roomRepository{
		db: db,
	}
}

const roomColumns = `
	id, name, room_type, price, capacity, size, amenities,
	description, images, status, max_adults, max_children,
	created_at, updated_at`

func scanRoom(row interface{ Scan(...interface{}) error }) (*domain.Room, error) {
	var room domain.Room
	var size, amenities, description, images sql.NullString

	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.RoomType,
		&room.Price,
		&room.Capacity,
		&size,
		&amenities,
		&description,
		&images,
		&room.Status,
		&room.MaxAdults,
		&room.MaxChildren,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	room.Size = size.String
	room.Amenities = amenities.String
	room.Description = description.String
	room.Images = images.String
	return &room, nil
}

// GetAllRooms implements domain.RoomRepository
func (r *roomRepository) GetAllRooms() ([]domain.Room, error) {
	query := `SELECT` + roomColumns + ` FROM room ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning room: %w", err)
		}
		rooms = append(rooms, *room)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetRoomByID implements domain.RoomRepository
func (r *roomRepository) GetRoomByID(id int) (*domain.Room, error) {
	query := `SELECT` + roomColumns + ` FROM room WHERE id = $1`

	room, err := scanRoom(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("room %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying room: %w", err)
	}
	return room, nil
}

// GetAvailableRooms implements domain.RoomRepository. A room is available
// when no pending, confirmed, or checked-in booking overlaps the range.
func (r *roomRepository) GetAvailableRooms(checkIn, checkOut time.Time, roomType string, guests int) ([]domain.Room, error) {
	query := `SELECT` + roomColumns + `
		FROM room r
		WHERE r.status = $1
		  AND ($2 = '' OR r.room_type = $2)
		  AND ($3 <= 0 OR r.capacity >= $3)
		  AND NOT EXISTS (
			SELECT 1
			FROM booking b
			WHERE b.room_id = r.id
			  AND b.status IN ($4, $5, $6)
			  AND b.check_in < $8
			  AND b.check_out > $7
		  )
		ORDER BY r.price`

	rows, err := r.db.Query(query,
		domain.RoomAvailable,
		roomType,
		guests,
		domain.BookingPending,
		domain.BookingConfirmed,
		domain.BookingCheckedIn,
		checkIn,
		checkOut,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying available rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning room: %w", err)
		}
		rooms = append(rooms, *room)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// IsRoomAvailable implements domain.RoomRepository
func (r *roomRepository) IsRoomAvailable(roomID int, checkIn, checkOut time.Time) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*)
		FROM booking
		WHERE room_id = $1
		  AND status IN ($2, $3, $4)
		  AND check_in < $6
		  AND check_out > $5`,
		roomID,
		domain.BookingPending,
		domain.BookingConfirmed,
		domain.BookingCheckedIn,
		checkIn,
		checkOut,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("error checking room availability: %w", err)
	}
	return count == 0, nil
}

// GetRoomTypes implements domain.RoomRepository
func (r *roomRepository) GetRoomTypes() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT room_type FROM room ORDER BY room_type`)
	if err != nil {
		return nil, fmt.Errorf("error querying room types: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("error scanning room type: %w", err)
		}
		types = append(types, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return types, nil
}

// CreateRoom implements domain.RoomRepository
func (r *roomRepository) CreateRoom(room *domain.Room) error {
	query := `
		INSERT INTO room (
			name, room_type, price, capacity, size, amenities,
			description, images, status, max_adults, max_children,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		room.Name,
		room.RoomType,
		room.Price,
		room.Capacity,
		nullString(room.Size),
		nullString(room.Amenities),
		nullString(room.Description),
		nullString(room.Images),
		room.Status,
		room.MaxAdults,
		room.MaxChildren,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error inserting room: %w", err)
	}
	return nil
}

// UpdateRoom implements domain.RoomRepository
func (r *roomRepository) UpdateRoom(room *domain.Room) error {
	result, err := r.db.Exec(`
		UPDATE room SET
			name = $1, room_type = $2, price = $3, capacity = $4,
			size = $5, amenities = $6, description = $7, images = $8,
			status = $9, max_adults = $10, max_children = $11,
			updated_at = NOW()
		WHERE id = $12`,
		room.Name,
		room.RoomType,
		room.Price,
		room.Capacity,
		nullString(room.Size),
		nullString(room.Amenities),
		nullString(room.Description),
		nullString(room.Images),
		room.Status,
		room.MaxAdults,
		room.MaxChildren,
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating room: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking room update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("room %d not found", room.ID)
	}
	return nil
}

// DeleteRoom implements domain.RoomRepository
func (r *roomRepository) DeleteRoom(id int) error {
	result, err := r.db.Exec(`DELETE FROM room WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting room: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking room delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("room %d not found", id)
	}
	return nil
}
