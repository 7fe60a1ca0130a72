package booking

import (
	"context"
	"testing"
	"time"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByRoom(ctx context.Context, roomCode string) ([]domain.Booking, error) {
	args := m.Called(ctx, roomCode)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Get(ctx context.Context, key domain.BookingKey) (*domain.Booking, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, key domain.BookingKey, booking *domain.Booking) error {
	args := m.Called(ctx, key, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, key domain.BookingKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) FreeBetween(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) OccupiedOn(ctx context.Context, date time.Time) ([]domain.Room, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.Room), args.Error(1)
}

type MockAgencyRepository struct {
	mock.Mock
}

func (m *MockAgencyRepository) List(ctx context.Context) ([]domain.Agency, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Agency), args.Error(1)
}

func (m *MockAgencyRepository) GetByCode(ctx context.Context, code string) (*domain.Agency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func date(value string) time.Time {
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService() (*BookingService, *MockBookingRepository, *MockRoomRepository, *MockAgencyRepository, *MockProducer) {
	bookings := &MockBookingRepository{}
	rooms := &MockRoomRepository{}
	agencies := &MockAgencyRepository{}
	producer := &MockProducer{}
	service := NewBookingService(bookings, rooms, agencies, producer, "bookings")
	return service, bookings, rooms, agencies, producer
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	service, bookings, rooms, agencies, producer := newTestService()
	ctx := context.Background()

	input := CreateBookingInput{
		RoomCode:   "R101",
		StartDate:  date("2024-06-01"),
		EndDate:    date("2024-06-05"),
		Cost:       1200,
		AgencyCode: "AG1",
	}

	rooms.On("GetByCode", ctx, "R101").Return(&domain.Room{Code: "R101"}, nil).Once()
	agencies.On("GetByCode", ctx, "AG1").Return(&domain.Agency{Code: "AG1"}, nil).Once()
	bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	producer.On("Publish", ctx, "bookings", mock.Anything, mock.Anything).Return(nil).Once()

	created, err := service.CreateBooking(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "R101", created.RoomCode)
	assert.Equal(t, 4, created.Nights())
	bookings.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_InvalidRange(t *testing.T) {
	service, bookings, _, _, _ := newTestService()
	ctx := context.Background()

	// start == end is an empty stay, not a valid one
	_, err := service.CreateBooking(ctx, CreateBookingInput{
		RoomCode:   "R101",
		StartDate:  date("2024-06-10"),
		EndDate:    date("2024-06-10"),
		Cost:       100,
		AgencyCode: "AG1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
	bookings.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateBooking_NegativeCost(t *testing.T) {
	service, bookings, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.CreateBooking(ctx, CreateBookingInput{
		RoomCode:   "R101",
		StartDate:  date("2024-06-01"),
		EndDate:    date("2024-06-05"),
		Cost:       -50,
		AgencyCode: "AG1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCost)
	bookings.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateBooking_UnknownRoom(t *testing.T) {
	service, bookings, rooms, _, _ := newTestService()
	ctx := context.Background()

	rooms.On("GetByCode", ctx, "NOPE").Return(nil, domain.ErrNotFound).Once()

	_, err := service.CreateBooking(ctx, CreateBookingInput{
		RoomCode:   "NOPE",
		StartDate:  date("2024-06-01"),
		EndDate:    date("2024-06-05"),
		Cost:       100,
		AgencyCode: "AG1",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	bookings.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateBooking_Conflict(t *testing.T) {
	service, bookings, rooms, agencies, producer := newTestService()
	ctx := context.Background()

	rooms.On("GetByCode", ctx, "R101").Return(&domain.Room{Code: "R101"}, nil).Once()
	agencies.On("GetByCode", ctx, "AG1").Return(&domain.Agency{Code: "AG1"}, nil).Once()
	bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(domain.ErrRoomConflict).Once()

	// Room booked [2024-06-01, 2024-06-05); [2024-06-03, 2024-06-07) overlaps.
	_, err := service.CreateBooking(ctx, CreateBookingInput{
		RoomCode:   "R101",
		StartDate:  date("2024-06-03"),
		EndDate:    date("2024-06-07"),
		Cost:       100,
		AgencyCode: "AG1",
	})

	assert.ErrorIs(t, err, domain.ErrRoomConflict)
	producer.AssertNotCalled(t, "Publish")
}

func TestBookingService_CreateBooking_PublishFailureIsBestEffort(t *testing.T) {
	service, bookings, rooms, agencies, producer := newTestService()
	ctx := context.Background()

	rooms.On("GetByCode", ctx, "R101").Return(&domain.Room{Code: "R101"}, nil).Once()
	agencies.On("GetByCode", ctx, "AG1").Return(&domain.Agency{Code: "AG1"}, nil).Once()
	bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	producer.On("Publish", ctx, "bookings", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	created, err := service.CreateBooking(ctx, CreateBookingInput{
		RoomCode:   "R101",
		StartDate:  date("2024-06-01"),
		EndDate:    date("2024-06-05"),
		Cost:       100,
		AgencyCode: "AG1",
	})

	// The booking is already committed; a lost event never unwinds it.
	assert.NoError(t, err)
	assert.NotNil(t, created)
}

func TestBookingService_UpdateBooking_Success(t *testing.T) {
	service, bookings, _, agencies, producer := newTestService()
	ctx := context.Background()

	key := domain.BookingKey{RoomCode: "R101", StartDate: date("2024-06-01")}
	agencies.On("GetByCode", ctx, "AG2").Return(&domain.Agency{Code: "AG2"}, nil).Once()
	bookings.On("Update", ctx, key, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	producer.On("Publish", ctx, "bookings", mock.Anything, mock.Anything).Return(nil).Once()

	updated, err := service.UpdateBooking(ctx, key, UpdateBookingInput{
		StartDate:  date("2024-06-02"),
		EndDate:    date("2024-06-06"),
		Cost:       900,
		AgencyCode: "AG2",
	})

	assert.NoError(t, err)
	assert.Equal(t, "R101", updated.RoomCode)
	assert.Equal(t, date("2024-06-02"), updated.StartDate)
	bookings.AssertExpectations(t)
}

func TestBookingService_UpdateBooking_InvalidRange(t *testing.T) {
	service, bookings, _, _, _ := newTestService()
	ctx := context.Background()

	key := domain.BookingKey{RoomCode: "R101", StartDate: date("2024-06-01")}
	_, err := service.UpdateBooking(ctx, key, UpdateBookingInput{
		StartDate:  date("2024-06-06"),
		EndDate:    date("2024-06-02"),
		Cost:       900,
		AgencyCode: "AG1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
	bookings.AssertNotCalled(t, "Update")
}

func TestBookingService_UpdateBooking_ConflictWithOtherBooking(t *testing.T) {
	service, bookings, _, agencies, producer := newTestService()
	ctx := context.Background()

	key := domain.BookingKey{RoomCode: "R101", StartDate: date("2024-06-01")}
	agencies.On("GetByCode", ctx, "AG1").Return(&domain.Agency{Code: "AG1"}, nil).Once()
	bookings.On("Update", ctx, key, mock.AnythingOfType("*domain.Booking")).Return(domain.ErrRoomConflict).Once()

	_, err := service.UpdateBooking(ctx, key, UpdateBookingInput{
		StartDate:  date("2024-06-01"),
		EndDate:    date("2024-06-12"),
		Cost:       900,
		AgencyCode: "AG1",
	})

	assert.ErrorIs(t, err, domain.ErrRoomConflict)
	producer.AssertNotCalled(t, "Publish")
}

func TestBookingService_DeleteBooking_Success(t *testing.T) {
	service, bookings, _, _, producer := newTestService()
	ctx := context.Background()

	key := domain.BookingKey{RoomCode: "R101", StartDate: date("2024-06-01")}
	existing := &domain.Booking{RoomCode: "R101", StartDate: key.StartDate, EndDate: date("2024-06-05"), AgencyCode: "AG1"}

	bookings.On("Get", ctx, key).Return(existing, nil).Once()
	bookings.On("Delete", ctx, key).Return(nil).Once()
	producer.On("Publish", ctx, "bookings", mock.Anything, mock.Anything).Return(nil).Once()

	err := service.DeleteBooking(ctx, key)

	assert.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestBookingService_DeleteBooking_SecondDeleteFails(t *testing.T) {
	service, bookings, _, _, producer := newTestService()
	ctx := context.Background()

	key := domain.BookingKey{RoomCode: "R101", StartDate: date("2024-06-01")}
	existing := &domain.Booking{RoomCode: "R101", StartDate: key.StartDate, EndDate: date("2024-06-05")}

	bookings.On("Get", ctx, key).Return(existing, nil).Once()
	bookings.On("Delete", ctx, key).Return(nil).Once()
	producer.On("Publish", ctx, "bookings", mock.Anything, mock.Anything).Return(nil).Once()

	assert.NoError(t, service.DeleteBooking(ctx, key))

	bookings.On("Get", ctx, key).Return(nil, domain.ErrNotFound).Once()
	err := service.DeleteBooking(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_FindFreeRooms_InvalidRange(t *testing.T) {
	service, _, rooms, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.FindFreeRooms(ctx, date("2024-06-05"), date("2024-06-05"))

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
	rooms.AssertNotCalled(t, "FreeBetween")
}

func TestBookingService_FindFreeRooms_Success(t *testing.T) {
	service, _, rooms, _, _ := newTestService()
	ctx := context.Background()

	free := []domain.Room{{Code: "R101"}, {Code: "R203"}}
	rooms.On("FreeBetween", ctx, date("2024-06-01"), date("2024-06-05")).Return(free, nil).Once()

	got, err := service.FindFreeRooms(ctx, date("2024-06-01"), date("2024-06-05"))

	assert.NoError(t, err)
	assert.Equal(t, free, got)
}

func TestBookingService_Occupancy(t *testing.T) {
	service, _, rooms, _, _ := newTestService()
	ctx := context.Background()

	day := date("2024-06-03")
	all := []domain.Room{{Code: "R101"}, {Code: "R102"}, {Code: "R203"}}
	occupied := []domain.Room{{Code: "R102"}}

	rooms.On("OccupiedOn", ctx, day).Return(occupied, nil).Once()
	rooms.On("List", ctx).Return(all, nil).Once()

	occ, err := service.Occupancy(ctx, day)

	assert.NoError(t, err)
	assert.Len(t, occ.Occupied, 1)
	assert.Len(t, occ.Free, 2)
	assert.Equal(t, "R101", occ.Free[0].Code)
	assert.Equal(t, "R203", occ.Free[1].Code)
}
