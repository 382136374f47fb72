package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/garasiku/garasiku-server/api/v1"
)

// GetBrands lists all brands for the filter and form dropdowns
// (GET /brands)
func (h *Handler) GetBrands(c *gin.Context) {
	brands, err := h.carSrv.Brands(c.Request.Context())
	if err != nil {
		respondError(c, zap.S().Named("reference_handler"), "list brands", err)
		return
	}
	apiBrands := make([]v1.Brand, 0, len(brands))
	for _, b := range brands {
		apiBrands = append(apiBrands, v1.Brand{Id: b.ID, Name: b.Name})
	}
	c.JSON(http.StatusOK, apiBrands)
}

// GetBodyTypes lists all body types
// (GET /body-types)
func (h *Handler) GetBodyTypes(c *gin.Context) {
	bodyTypes, err := h.carSrv.BodyTypes(c.Request.Context())
	if err != nil {
		respondError(c, zap.S().Named("reference_handler"), "list body types", err)
		return
	}
	apiBodyTypes := make([]v1.BodyType, 0, len(bodyTypes))
	for _, bt := range bodyTypes {
		apiBodyTypes = append(apiBodyTypes, v1.BodyType{Id: bt.ID, Name: bt.Name})
	}
	c.JSON(http.StatusOK, apiBodyTypes)
}

// GetModels lists models, filtered by brand for the dependent dropdown
// (GET /models?brand={id})
func (h *Handler) GetModels(c *gin.Context) {
	modelList, err := h.carSrv.Models(c.Request.Context(), c.Query("brand"))
	if err != nil {
		respondError(c, zap.S().Named("reference_handler"), "list models", err)
		return
	}
	apiModels := make([]v1.Model, 0, len(modelList))
	for _, m := range modelList {
		apiModels = append(apiModels, v1.NewModelFromDomain(m))
	}
	c.JSON(http.StatusOK, apiModels)
}
