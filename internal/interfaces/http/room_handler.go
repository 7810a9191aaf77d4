package http

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/application"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type RoomHandler struct {
	service *application.RoomService
}

func NewRoomHandler(service *application.RoomService) *RoomHandler {
	return &RoomHandler{
		service: service,
	}
}

func (h *RoomHandler) GetAllRooms(c *fiber.Ctx) error {
	rooms, err := h.service.GetAllRooms()
	if err != nil {
		log.Printf("Error getting rooms: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Error fetching rooms: %v", err),
		})
	}

	return c.JSON(rooms)
}

func (h *RoomHandler) GetRoom(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room id",
		})
	}

	room, err := h.service.GetRoom(id)
	if err != nil {
		log.Printf("Error getting room %d: %v", id, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Room not found",
		})
	}

	return c.JSON(room)
}

func (h *RoomHandler) GetRoomTypes(c *fiber.Ctx) error {
	roomTypes, err := h.service.GetRoomTypes()
	if err != nil {
		log.Printf("Error getting room types: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Error fetching room types: %v", err),
		})
	}

	return c.JSON(roomTypes)
}

func (h *RoomHandler) GetAvailableRooms(c *fiber.Ctx) error {
	checkInStr := c.Query("check_in")
	checkOutStr := c.Query("check_out")
	if checkInStr == "" || checkOutStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "check_in and check_out are required (YYYY-MM-DD)",
		})
	}

	checkIn, err := parseDate(checkInStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid check_in date, expected YYYY-MM-DD",
		})
	}
	checkOut, err := parseDate(checkOutStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid check_out date, expected YYYY-MM-DD",
		})
	}
	if !checkOut.After(checkIn) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "check_out must be after check_in",
		})
	}

	guests, _ := strconv.Atoi(c.Query("guests", "0"))
	roomType := c.Query("room_type")

	rooms, err := h.service.SearchAvailableRooms(checkIn, checkOut, roomType, guests)
	if err != nil {
		log.Printf("Error searching rooms: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Error searching rooms: %v", err),
		})
	}

	return c.JSON(rooms)
}

type roomRequest struct {
	Name        string  `json:"name"`
	RoomType    string  `json:"roomType"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	Size        string  `json:"size"`
	Amenities   string  `json:"amenities"`
	Description string  `json:"description"`
	Images      string  `json:"images"`
	Status      string  `json:"status"`
	MaxAdults   int     `json:"maxAdults"`
	MaxChildren int     `json:"maxChildren"`
}

func (req *roomRequest) toDomain() *domain.Room {
	return &domain.Room{
		Name:        req.Name,
		RoomType:    req.RoomType,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Size:        req.Size,
		Amenities:   req.Amenities,
		Description: req.Description,
		Images:      req.Images,
		Status:      domain.RoomStatus(req.Status),
		MaxAdults:   req.MaxAdults,
		MaxChildren: req.MaxChildren,
	}
}

func (h *RoomHandler) CreateRoom(c *fiber.Ctx) error {
	var req roomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	room := req.toDomain()
	if err := h.service.CreateRoom(room); err != nil {
		log.Printf("Error creating room: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(room)
}

func (h *RoomHandler) UpdateRoom(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room id",
		})
	}

	var req roomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	room := req.toDomain()
	room.ID = id
	if err := h.service.UpdateRoom(room); err != nil {
		log.Printf("Error updating room %d: %v", id, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(room)
}

func (h *RoomHandler) DeleteRoom(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room id",
		})
	}

	if err := h.service.DeleteRoom(id); err != nil {
		log.Printf("Error deleting room %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Room deleted",
	})
}
