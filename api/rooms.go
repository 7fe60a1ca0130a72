package api

import (
	"net/http"
	"time"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/chainhotel/pms/internal/service/booking"
	"github.com/chainhotel/pms/internal/service/inventory"
	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	inventory inventory.InventoryUseCase
	bookings  booking.BookingUseCase
}

type roomResponse struct {
	Code        string  `json:"code"`
	Floor       int     `json:"floor"`
	SurfaceArea float64 `json:"surface_area"`
	Type        string  `json:"type"`
}

type occupancyResponse struct {
	Date     string         `json:"date"`
	Occupied []roomResponse `json:"occupied"`
	Free     []roomResponse `json:"free"`
}

func NewRoomHandler(inventory inventory.InventoryUseCase, bookings booking.BookingUseCase) *RoomHandler {
	return &RoomHandler{inventory: inventory, bookings: bookings}
}

func (h *RoomHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/free", h.free)
	router.GET("/occupancy", h.occupancy)
	router.GET("/:code", h.get)
}

func (h *RoomHandler) list(c *gin.Context) {
	rooms, err := h.inventory.ListRooms(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponses(rooms))
}

func (h *RoomHandler) get(c *gin.Context) {
	room, err := h.inventory.GetRoom(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(*room))
}

func (h *RoomHandler) free(c *gin.Context) {
	start, err := parseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
		return
	}

	rooms, err := h.bookings.FindFreeRooms(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponses(rooms))
}

func (h *RoomHandler) occupancy(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	occ, err := h.bookings.Occupancy(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, occupancyResponse{
		Date:     occ.Date.Format(time.DateOnly),
		Occupied: toRoomResponses(occ.Occupied),
		Free:     toRoomResponses(occ.Free),
	})
}

func toRoomResponse(room domain.Room) roomResponse {
	return roomResponse{
		Code:        room.Code,
		Floor:       room.Floor,
		SurfaceArea: room.SurfaceArea,
		Type:        string(room.Type),
	}
}

func toRoomResponses(rooms []domain.Room) []roomResponse {
	out := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomResponse(room))
	}
	return out
}
