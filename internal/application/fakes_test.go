package application

import (
	"fmt"
	"time"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

// In-memory repository fakes used across the service tests.

type fakeOfferRepo struct {
	offers map[int]*domain.Offer
	nextID int
}

func newFakeOfferRepo(offers ...*domain.Offer) *fakeOfferRepo {
	repo := &fakeOfferRepo{offers: map[int]*domain.Offer{}, nextID: 1}
	for _, o := range offers {
		repo.add(o)
	}
	return repo
}

func (r *fakeOfferRepo) add(o *domain.Offer) {
	if o.ID == 0 {
		o.ID = r.nextID
	}
	if o.ID >= r.nextID {
		r.nextID = o.ID + 1
	}
	copied := *o
	r.offers[o.ID] = &copied
}

func (r *fakeOfferRepo) GetByCode(code string) (*domain.Offer, error) {
	for _, o := range r.offers {
		if o.Code == code {
			copied := *o
			return &copied, nil
		}
	}
	return nil, domain.ErrOfferNotFound
}

func (r *fakeOfferRepo) GetByID(id int) (*domain.Offer, error) {
	o, ok := r.offers[id]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOfferRepo) ListPublicActive() ([]domain.Offer, error) {
	var result []domain.Offer
	for _, o := range r.offers {
		if o.IsActive && o.IsPublic {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (r *fakeOfferRepo) ListAll() ([]domain.Offer, error) {
	var result []domain.Offer
	for _, o := range r.offers {
		result = append(result, *o)
	}
	return result, nil
}

func (r *fakeOfferRepo) Create(offer *domain.Offer) error {
	for _, o := range r.offers {
		if o.Code == offer.Code {
			return domain.ErrDuplicateCode
		}
	}
	offer.ID = r.nextID
	r.add(offer)
	return nil
}

func (r *fakeOfferRepo) Update(offer *domain.Offer) error {
	if _, ok := r.offers[offer.ID]; !ok {
		return domain.ErrOfferNotFound
	}
	copied := *offer
	r.offers[offer.ID] = &copied
	return nil
}

func (r *fakeOfferRepo) Delete(id int) error {
	if _, ok := r.offers[id]; !ok {
		return domain.ErrOfferNotFound
	}
	delete(r.offers, id)
	return nil
}

func (r *fakeOfferRepo) IncrementUsage(id int) error {
	o, ok := r.offers[id]
	if !ok {
		return domain.ErrOfferNotFound
	}
	o.UsedCount++
	return nil
}

func (r *fakeOfferRepo) SetActive(id int, active bool) error {
	o, ok := r.offers[id]
	if !ok {
		return domain.ErrOfferNotFound
	}
	o.IsActive = active
	return nil
}

type fakeBookingRepo struct {
	bookings        map[int]*domain.Booking
	completedByUser map[int]int
	nextID          int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:        map[int]*domain.Booking{},
		completedByUser: map[int]int{},
		nextID:          1,
	}
}

func (r *fakeBookingRepo) GetByID(id int) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %d not found", id)
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) Create(booking *domain.Booking) error {
	booking.ID = r.nextID
	r.nextID++
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(id int, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %d not found", id)
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) UpdatePayment(id int, state domain.PaymentState, gatewayOrderID string) error {
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %d not found", id)
	}
	b.PaymentStatus = state
	b.GatewayOrderID = gatewayOrderID
	return nil
}

func (r *fakeBookingRepo) GetByUser(userID int) ([]domain.Booking, error) {
	var result []domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) CountCompletedByUser(userID int) (int, error) {
	return r.completedByUser[userID], nil
}

func (r *fakeBookingRepo) CompleteExpired() error {
	now := time.Now()
	for _, b := range r.bookings {
		if b.Status == domain.BookingConfirmed && b.CheckOut.Before(now) {
			b.Status = domain.BookingCompleted
		}
	}
	return nil
}

func (r *fakeBookingRepo) CountByStatus(status domain.BookingStatus) (int, error) {
	count := 0
	for _, b := range r.bookings {
		if b.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) CountOccupiedRooms(date time.Time) (int, error) {
	occupied := map[int]bool{}
	for _, b := range r.bookings {
		if (b.Status == domain.BookingConfirmed || b.Status == domain.BookingCheckedIn) &&
			!b.CheckIn.After(date) && b.CheckOut.After(date) {
			occupied[b.RoomID] = true
		}
	}
	return len(occupied), nil
}

func (r *fakeBookingRepo) CountRedemptionsSince(code string, t time.Time) (int, error) {
	count := 0
	for _, b := range r.bookings {
		if b.CouponCode == code && !b.CreatedAt.Before(t) {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) RedemptionTotals(code string) (domain.RedemptionTotals, error) {
	var totals domain.RedemptionTotals
	for _, b := range r.bookings {
		if b.CouponCode == code {
			totals.Bookings++
			totals.TotalDiscount += b.DiscountAmount
			totals.TotalRevenue += b.FinalAmount
		}
	}
	return totals, nil
}

type fakeRoomRepo struct {
	rooms       map[int]*domain.Room
	unavailable map[int]bool
}

func newFakeRoomRepo(rooms ...*domain.Room) *fakeRoomRepo {
	repo := &fakeRoomRepo{rooms: map[int]*domain.Room{}, unavailable: map[int]bool{}}
	for _, room := range rooms {
		copied := *room
		repo.rooms[room.ID] = &copied
	}
	return repo
}

func (r *fakeRoomRepo) GetAllRooms() ([]domain.Room, error) {
	var result []domain.Room
	for _, room := range r.rooms {
		result = append(result, *room)
	}
	return result, nil
}

func (r *fakeRoomRepo) GetRoomByID(id int) (*domain.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %d not found", id)
	}
	copied := *room
	return &copied, nil
}

func (r *fakeRoomRepo) GetAvailableRooms(checkIn, checkOut time.Time, roomType string, guests int) ([]domain.Room, error) {
	var result []domain.Room
	for _, room := range r.rooms {
		if r.unavailable[room.ID] {
			continue
		}
		if roomType != "" && room.RoomType != roomType {
			continue
		}
		if guests > 0 && room.Capacity < guests {
			continue
		}
		result = append(result, *room)
	}
	return result, nil
}

func (r *fakeRoomRepo) IsRoomAvailable(roomID int, checkIn, checkOut time.Time) (bool, error) {
	return !r.unavailable[roomID], nil
}

func (r *fakeRoomRepo) GetRoomTypes() ([]string, error) {
	seen := map[string]bool{}
	var types []string
	for _, room := range r.rooms {
		if !seen[room.RoomType] {
			seen[room.RoomType] = true
			types = append(types, room.RoomType)
		}
	}
	return types, nil
}

func (r *fakeRoomRepo) CreateRoom(room *domain.Room) error {
	room.ID = len(r.rooms) + 1
	copied := *room
	r.rooms[room.ID] = &copied
	return nil
}

func (r *fakeRoomRepo) UpdateRoom(room *domain.Room) error {
	if _, ok := r.rooms[room.ID]; !ok {
		return fmt.Errorf("room %d not found", room.ID)
	}
	copied := *room
	r.rooms[room.ID] = &copied
	return nil
}

func (r *fakeRoomRepo) DeleteRoom(id int) error {
	if _, ok := r.rooms[id]; !ok {
		return fmt.Errorf("room %d not found", id)
	}
	delete(r.rooms, id)
	return nil
}

type fakeUserRepo struct {
	users map[int]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[int]*domain.User{}}
	for _, u := range users {
		copied := *u
		repo.users[u.ID] = &copied
	}
	return repo
}

func (r *fakeUserRepo) GetByID(id int) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d not found", id)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", email)
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	user.ID = len(r.users) + 1
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type fakePaymentRepo struct {
	payments []domain.Payment
}

func (r *fakePaymentRepo) Create(payment *domain.Payment) error {
	payment.ID = len(r.payments) + 1
	payment.CreatedAt = time.Now()
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) GetByBookingID(bookingID int) ([]domain.Payment, error) {
	var result []domain.Payment
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePaymentRepo) UpdateStatus(paymentID int, status domain.PaymentStatus) error {
	for i := range r.payments {
		if r.payments[i].ID == paymentID {
			r.payments[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("payment %d not found", paymentID)
}

func (r *fakePaymentRepo) RevenueSince(t time.Time) (float64, error) {
	total := 0.0
	for _, p := range r.payments {
		if p.Status == domain.PaymentStatusCompleted && !p.CreatedAt.Before(t) {
			total += p.Amount
		}
	}
	return total, nil
}
