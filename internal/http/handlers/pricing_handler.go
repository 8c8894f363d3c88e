// README: Pricing handlers for listing and updating the price table.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hibachi/internal/modules/pricing"
)

type PricingHandler struct {
	pricing *pricing.Service
}

func NewPricingHandler(svc *pricing.Service) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

// List handles GET /api/pricing.
func (h *PricingHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"prices": h.pricing.List(c.Request.Context())})
}

type setPriceReq struct {
	Cents *int64 `json:"cents"`
}

// Set handles PUT /api/pricing/:key.
func (h *PricingHandler) Set(c *gin.Context) {
	key := c.Param("key")
	var req setPriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Cents == nil {
		writeError(c, http.StatusBadRequest, "missing cents")
		return
	}
	if err := h.pricing.SetPrice(c.Request.Context(), key, *req.Cents); err != nil {
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, pricing.Entry{Key: key, Cents: *req.Cents, Source: pricing.SourceConfig})
}
