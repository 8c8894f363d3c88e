// README: Quote handlers for create/get/draft.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hibachi/internal/ai"
	"hibachi/internal/modules/quote"
)

const draftTimeout = 15 * time.Second

type QuoteHandler struct {
	quote   *quote.Service
	drafter ai.Drafter
}

func NewQuoteHandler(svc *quote.Service, drafter ai.Drafter) *QuoteHandler {
	if drafter == nil {
		drafter = ai.NewTemplateDrafter()
	}
	return &QuoteHandler{quote: svc, drafter: drafter}
}

type createQuoteReq struct {
	CustomerName string         `json:"customer_name"`
	VenueAddress string         `json:"venue_address"`
	Adults       int            `json:"adults"`
	Children     int            `json:"children"`
	Toddlers     int            `json:"toddlers"`
	Upgrades     map[string]int `json:"upgrades"`
	TravelMiles  *float64       `json:"travel_miles"`
}

// Create handles POST /api/quotes.
func (h *QuoteHandler) Create(c *gin.Context) {
	var req createQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	q, err := h.quote.Quote(c.Request.Context(), quote.QuoteCommand{
		CustomerName: req.CustomerName,
		VenueAddress: req.VenueAddress,
		Adults:       req.Adults,
		Children:     req.Children,
		Toddlers:     req.Toddlers,
		Upgrades:     req.Upgrades,
		TravelMiles:  req.TravelMiles,
	})
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, q)
}

// Get handles GET /api/quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid quote id")
		return
	}
	q, err := h.quote.Get(c.Request.Context(), id)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}

type draftReq struct {
	Tone string `json:"tone"`
}

// Draft handles POST /api/quotes/:id/draft. The body is optional.
func (h *QuoteHandler) Draft(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid quote id")
		return
	}
	var req draftReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}

	q, err := h.quote.Get(c.Request.Context(), id)
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), draftTimeout)
	defer cancel()
	msg, err := h.drafter.DraftQuoteMessage(ctx, ai.FromQuote(q, strings.TrimSpace(req.Tone)))
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"quote_id": q.ID, "message": msg})
}
