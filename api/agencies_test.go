package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAgencyHandler_list(t *testing.T) {
	mockInv := &MockInventoryUseCase{}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAgencyHandler(mockInv).Register(router.Group("/agencies"))

	agencies := []domain.Agency{
		{
			Code:    "AG1",
			Phone:   "+212 522 000 000",
			Website: "https://ag1.example",
			City:    domain.City{Name: "Casablanca", Region: "Casablanca-Settat"},
		},
	}
	mockInv.On("ListAgencies", mock.Anything).Return(agencies, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agencies/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []agencyResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "Casablanca", resp[0].City)
}
