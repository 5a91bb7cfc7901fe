package salesapiserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	reportingports "github.com/vendora/sales-api/internal/domains/reporting/ports"
)

// ReportsAPI implements the reporting endpoints.
type ReportsAPI struct {
	service reportingports.Service
}

// NewReportsAPI wires dependencies.
func NewReportsAPI(service reportingports.Service) ReportsAPI {
	return ReportsAPI{service: service}
}

func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// Get /v1/reports/top-clients?limit=...
// Rank clients by completed-order revenue
func (api *ReportsAPI) TopClients(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := api.service.TopClients(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]ClientRevenue, 0, len(rows))
	for _, row := range rows {
		result = append(result, ClientRevenue{
			ClientId: row.ClientID,
			Name:     row.Name,
			Surname:  row.Surname,
			Email:    row.Email,
			Total:    row.Total,
		})
	}
	c.JSON(http.StatusOK, result)
}

// Get /v1/reports/top-vendors?limit=...
// Rank vendors by completed-order revenue
func (api *ReportsAPI) TopVendors(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := api.service.TopVendors(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]VendorRevenue, 0, len(rows))
	for _, row := range rows {
		result = append(result, VendorRevenue{
			VendorId: row.VendorID,
			Name:     row.Name,
			Surname:  row.Surname,
			Email:    row.Email,
			Total:    row.Total,
		})
	}
	c.JSON(http.StatusOK, result)
}
