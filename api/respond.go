package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps the engine's error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRange), errors.Is(err, domain.ErrInvalidCost):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRoomConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseDate reads a calendar date in YYYY-MM-DD form.
func parseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}
