// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hibachi/internal/ai"
	"hibachi/internal/http/handlers"
	"hibachi/internal/http/middleware"
	"hibachi/internal/modules/pricing"
	"hibachi/internal/modules/quote"
)

type RouterDeps struct {
	Quote   *quote.Service
	Pricing *pricing.Service
	Drafter ai.Drafter
	Logger  *zap.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logging(log))

	quoteHandler := handlers.NewQuoteHandler(deps.Quote, deps.Drafter)
	r.POST("/api/quotes", quoteHandler.Create)
	r.GET("/api/quotes/:id", quoteHandler.Get)
	r.POST("/api/quotes/:id/draft", quoteHandler.Draft)

	pricingHandler := handlers.NewPricingHandler(deps.Pricing)
	r.GET("/api/pricing", pricingHandler.List)
	r.PUT("/api/pricing/:key", pricingHandler.Set)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
