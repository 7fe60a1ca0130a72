package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/chainhotel/pms/internal/kafka"
	"github.com/chainhotel/pms/internal/metrics"
	"github.com/chainhotel/pms/internal/repository"
	"github.com/google/uuid"
)

// BookingUseCase is the availability and booking engine. Every mutation
// either fully succeeds or fully fails with one of the domain errors;
// the store is never left with a partial row.
type BookingUseCase interface {
	FindFreeRooms(ctx context.Context, start, end time.Time) ([]domain.Room, error)
	Occupancy(ctx context.Context, date time.Time) (*domain.Occupancy, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ListRoomBookings(ctx context.Context, roomCode string) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, key domain.BookingKey, input UpdateBookingInput) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, key domain.BookingKey) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	rooms              repository.RoomRepository
	agencies           repository.AgencyRepository
	producer           Producer
	bookingsTopic      string
	notificationsTopic string
}

type CreateBookingInput struct {
	RoomCode   string    `json:"room_code"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Cost       float64   `json:"cost"`
	AgencyCode string    `json:"agency_code"`
}

type UpdateBookingInput struct {
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Cost       float64   `json:"cost"`
	AgencyCode string    `json:"agency_code"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	rooms repository.RoomRepository,
	agencies repository.AgencyRepository,
	producer Producer,
	bookingsTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:      bookings,
		rooms:         rooms,
		agencies:      agencies,
		producer:      producer,
		bookingsTopic: bookingsTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// FindFreeRooms lists every room with no booking overlapping
// [start, end). The result is advisory: a room shown as free can be
// taken before the caller commits, in which case CreateBooking fails
// with ErrRoomConflict.
func (s *BookingService) FindFreeRooms(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	if !start.Before(end) {
		return nil, domain.ErrInvalidRange
	}
	return s.rooms.FreeBetween(ctx, start, end)
}

func (s *BookingService) Occupancy(ctx context.Context, date time.Time) (*domain.Occupancy, error) {
	occupied, err := s.rooms.OccupiedOn(ctx, date)
	if err != nil {
		return nil, err
	}

	all, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	occupiedCodes := make(map[string]struct{}, len(occupied))
	for _, room := range occupied {
		occupiedCodes[room.Code] = struct{}{}
	}

	free := make([]domain.Room, 0, len(all))
	for _, room := range all {
		if _, ok := occupiedCodes[room.Code]; !ok {
			free = append(free, room)
		}
	}

	return &domain.Occupancy{Date: date, Occupied: occupied, Free: free}, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) ListRoomBookings(ctx context.Context, roomCode string) ([]domain.Booking, error) {
	return s.bookings.ListByRoom(ctx, roomCode)
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if !input.StartDate.Before(input.EndDate) {
		return nil, domain.ErrInvalidRange
	}
	if input.Cost < 0 {
		return nil, domain.ErrInvalidCost
	}

	if _, err := s.rooms.GetByCode(ctx, input.RoomCode); err != nil {
		return nil, err
	}
	if _, err := s.agencies.GetByCode(ctx, input.AgencyCode); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		RoomCode:   input.RoomCode,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Cost:       input.Cost,
		AgencyCode: input.AgencyCode,
	}

	// The repository re-checks the overlap invariant inside the same
	// transaction as the insert, closing the race left open by a prior
	// FindFreeRooms call.
	if err := s.bookings.Create(ctx, booking); err != nil {
		s.countMutation("create", err)
		return nil, err
	}
	s.countMutation("create", nil)

	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) UpdateBooking(ctx context.Context, key domain.BookingKey, input UpdateBookingInput) (*domain.Booking, error) {
	if !input.StartDate.Before(input.EndDate) {
		return nil, domain.ErrInvalidRange
	}
	if input.Cost < 0 {
		return nil, domain.ErrInvalidCost
	}

	if _, err := s.agencies.GetByCode(ctx, input.AgencyCode); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		RoomCode:   key.RoomCode,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Cost:       input.Cost,
		AgencyCode: input.AgencyCode,
	}

	if err := s.bookings.Update(ctx, key, booking); err != nil {
		s.countMutation("update", err)
		return nil, err
	}
	s.countMutation("update", nil)

	s.publish(ctx, "booking_updated", booking)
	return booking, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, key domain.BookingKey) error {
	current, err := s.bookings.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, key); err != nil {
		s.countMutation("delete", err)
		return err
	}
	s.countMutation("delete", nil)

	s.publish(ctx, "booking_cancelled", current)
	return nil
}

func (s *BookingService) countMutation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		if errors.Is(err, domain.ErrRoomConflict) {
			result = "conflict"
			metrics.BookingConflictsTotal.Inc()
		}
	}
	metrics.BookingsTotal.WithLabelValues(operation, result).Inc()
}

// publish is best-effort: the mutation is already committed, so a
// failed publish is logged and never unwinds the booking.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		RoomCode:   booking.RoomCode,
		StartDate:  booking.StartDate.Format(time.DateOnly),
		EndDate:    booking.EndDate.Format(time.DateOnly),
		Cost:       booking.Cost,
		AgencyCode: booking.AgencyCode,
		OccurredAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingsTopic, event.EventID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for room %s: %v", eventType, booking.RoomCode, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, event.EventID, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for room %s: %v", eventType, booking.RoomCode, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
