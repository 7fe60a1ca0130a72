package api

import (
	"net/http"
	"time"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/chainhotel/pms/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	RoomCode   string  `json:"room_code" binding:"required"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    string  `json:"end_date" binding:"required"`
	Cost       float64 `json:"cost"`
	AgencyCode string  `json:"agency_code" binding:"required"`
}

type updateBookingRequest struct {
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    string  `json:"end_date" binding:"required"`
	Cost       float64 `json:"cost"`
	AgencyCode string  `json:"agency_code" binding:"required"`
}

type bookingResponse struct {
	RoomCode   string  `json:"room_code"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Nights     int     `json:"nights"`
	Cost       float64 `json:"cost"`
	AgencyCode string  `json:"agency_code"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.PUT("/:room/:start", h.update)
	router.DELETE("/:room/:start", h.delete)
}

func (h *BookingHandler) list(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		bookings []domain.Booking
		err      error
	)
	if room := c.Query("room"); room != "" {
		bookings, err = h.service.ListRoomBookings(ctx, room)
	} else {
		bookings, err = h.service.ListBookings(ctx)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(&b))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		RoomCode:   req.RoomCode,
		StartDate:  start,
		EndDate:    end,
		Cost:       req.Cost,
		AgencyCode: req.AgencyCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) update(c *gin.Context) {
	key, ok := keyFromParams(c)
	if !ok {
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
		return
	}

	updated, err := h.service.UpdateBooking(c.Request.Context(), key, booking.UpdateBookingInput{
		StartDate:  start,
		EndDate:    end,
		Cost:       req.Cost,
		AgencyCode: req.AgencyCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) delete(c *gin.Context) {
	key, ok := keyFromParams(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), key); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func keyFromParams(c *gin.Context) (domain.BookingKey, bool) {
	start, err := parseDate(c.Param("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date in path, expected YYYY-MM-DD"})
		return domain.BookingKey{}, false
	}
	return domain.BookingKey{RoomCode: c.Param("room"), StartDate: start}, true
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		RoomCode:   b.RoomCode,
		StartDate:  b.StartDate.Format(time.DateOnly),
		EndDate:    b.EndDate.Format(time.DateOnly),
		Nights:     b.Nights(),
		Cost:       b.Cost,
		AgencyCode: b.AgencyCode,
	}
}
