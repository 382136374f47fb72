package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/garasiku/garasiku-server/api/v1"
	"github.com/garasiku/garasiku-server/internal/models"
	"github.com/garasiku/garasiku-server/internal/services"
	srvErrors "github.com/garasiku/garasiku-server/pkg/errors"
)

// GetSales returns the filtered sales list
// (GET /sales)
func (h *Handler) GetSales(c *gin.Context) {
	params, err := parseSaleListParams(c)
	if err != nil {
		respondError(c, zap.S().Named("sale_handler"), "list sales", err)
		return
	}

	sales, err := h.saleSrv.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, zap.S().Named("sale_handler"), "list sales", err)
		return
	}

	apiSales := make([]v1.Sale, 0, len(sales))
	for _, sale := range sales {
		apiSales = append(apiSales, v1.NewSaleFromModel(sale))
	}
	c.JSON(http.StatusOK, apiSales)
}

// GetSale returns one sale
// (GET /sales/{id})
func (h *Handler) GetSale(c *gin.Context) {
	sale, err := h.saleSrv.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, zap.S().Named("sale_handler"), "get sale", err)
		return
	}
	c.JSON(http.StatusOK, v1.NewSaleFromModel(*sale))
}

// CreateSale records a sale and marks the car sold
// (POST /sales)
func (h *Handler) CreateSale(c *gin.Context) {
	log := zap.S().Named("sale_handler")

	var req v1.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input, err := saleInputFromRequest(req)
	if err != nil {
		respondError(c, log, "create sale", err)
		return
	}
	if session := sessionFromContext(c); session != nil {
		input.CreatedByID = session.UserID
	}

	sale, err := h.saleSrv.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, log, "create sale", err)
		return
	}
	c.JSON(http.StatusCreated, v1.NewSaleFromModel(*sale))
}

// UpdateSale edits a sale's fields
// (PATCH /sales/{id})
func (h *Handler) UpdateSale(c *gin.Context) {
	log := zap.S().Named("sale_handler")

	var req v1.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input, err := saleInputFromRequest(req)
	if err != nil {
		respondError(c, log, "update sale", err)
		return
	}

	sale, err := h.saleSrv.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, log, "update sale", err)
		return
	}
	c.JSON(http.StatusOK, v1.NewSaleFromModel(*sale))
}

// CancelSale cancels a sale and returns the car to the available pool
// (POST /sales/{id}/cancel)
func (h *Handler) CancelSale(c *gin.Context) {
	sale, err := h.saleSrv.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, zap.S().Named("sale_handler"), "cancel sale", err)
		return
	}
	c.JSON(http.StatusOK, v1.NewSaleFromModel(*sale))
}

// DeleteSale removes a sale record
// (DELETE /sales/{id})
func (h *Handler) DeleteSale(c *gin.Context) {
	if err := h.saleSrv.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, zap.S().Named("sale_handler"), "delete sale", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSalesSummary returns the dashboard counters
// (GET /sales/summary)
func (h *Handler) GetSalesSummary(c *gin.Context) {
	summary, err := h.saleSrv.Summary(c.Request.Context())
	if err != nil {
		respondError(c, zap.S().Named("sale_handler"), "sales summary", err)
		return
	}
	c.JSON(http.StatusOK, v1.SalesSummary{
		TotalSales:     summary.TotalSales,
		CompletedSales: summary.CompletedSales,
		PendingSales:   summary.PendingSales,
		TotalRevenue:   summary.TotalRevenue,
	})
}

// GetAvailableCars lists unsold cars for the sale-creation selector
// (GET /sales/available-cars)
func (h *Handler) GetAvailableCars(c *gin.Context) {
	cars, err := h.saleSrv.AvailableCars(c.Request.Context())
	if err != nil {
		respondError(c, zap.S().Named("sale_handler"), "list available cars", err)
		return
	}
	apiCars := make([]v1.Car, 0, len(cars))
	for _, car := range cars {
		apiCars = append(apiCars, v1.NewCarFromModel(car))
	}
	c.JSON(http.StatusOK, apiCars)
}

// ExportSales streams the filtered sales as an xlsx workbook
// (GET /sales/export)
func (h *Handler) ExportSales(c *gin.Context) {
	log := zap.S().Named("sale_handler")

	params, err := parseSaleListParams(c)
	if err != nil {
		respondError(c, log, "export sales", err)
		return
	}

	f, err := h.saleSrv.Export(c.Request.Context(), params)
	if err != nil {
		respondError(c, log, "export sales", err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="sales.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Errorw("failed to stream sales export", "error", err)
	}
}

func parseSaleListParams(c *gin.Context) (services.SaleListParams, error) {
	params := services.SaleListParams{
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		PaymentMethod: c.Query("paymentMethod"),
	}

	if v := c.Query("dateFrom"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, srvErrors.NewOutOfRangeError("dateFrom", "expected YYYY-MM-DD")
		}
		params.DateFrom = &t
	}
	if v := c.Query("dateTo"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, srvErrors.NewOutOfRangeError("dateTo", "expected YYYY-MM-DD")
		}
		// Inclusive upper bound: the whole day counts.
		end := t.Add(24*time.Hour - time.Nanosecond)
		params.DateTo = &end
	}

	if sorts := v1.ParseSortParams(c.Query("sort")); len(sorts) > 0 {
		params.SortField = sorts[0].Field
		params.SortDesc = sorts[0].Desc
	}
	return params, nil
}

func saleInputFromRequest(req v1.SaleRequest) (services.SaleInput, error) {
	input := services.SaleInput{
		CustomerName:  req.CustomerName,
		CarID:         req.CarId,
		Price:         req.Price,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.Status != "" {
		status, err := models.ParseSaleStatus(req.Status)
		if err != nil {
			return input, srvErrors.NewOutOfRangeError("status", err.Error())
		}
		input.Status = status
	}
	return input, nil
}
