package api

import (
	"net/http"

	"github.com/chainhotel/pms/internal/domain"
	"github.com/chainhotel/pms/internal/service/inventory"
	"github.com/gin-gonic/gin"
)

type AgencyHandler struct {
	service inventory.InventoryUseCase
}

type agencyResponse struct {
	Code         string `json:"code"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	StreetNumber string `json:"street_number"`
	Street       string `json:"street"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	City         string `json:"city"`
	Region       string `json:"region"`
}

func NewAgencyHandler(service inventory.InventoryUseCase) *AgencyHandler {
	return &AgencyHandler{service: service}
}

func (h *AgencyHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
}

func (h *AgencyHandler) list(c *gin.Context) {
	agencies, err := h.service.ListAgencies(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]agencyResponse, 0, len(agencies))
	for _, a := range agencies {
		out = append(out, toAgencyResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

func toAgencyResponse(a domain.Agency) agencyResponse {
	return agencyResponse{
		Code:         a.Code,
		Phone:        a.Phone,
		Website:      a.Website,
		StreetNumber: a.StreetNumber,
		Street:       a.Street,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		City:         a.City.Name,
		Region:       a.City.Region,
	}
}
