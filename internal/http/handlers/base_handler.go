// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hibachi/internal/modules/pricing"
	"hibachi/internal/modules/quote"
	"hibachi/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

// parseID accepts any UUID form and returns it in canonical form.
func parseID(v string) (types.ID, bool) {
	u, err := uuid.Parse(v)
	if err != nil {
		return "", false
	}
	return types.ID(u.String()), true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quote.ErrInvalidInput), errors.Is(err, quote.ErrUnknownUpgrade):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, quote.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, quote.ErrDistanceUnavailable):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writePricingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidKey), errors.Is(err, pricing.ErrInvalidPrice):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pricing.ErrNoConfigStore):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
