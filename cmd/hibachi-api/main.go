// README: Entry point; loads config, wires stores and services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hibachi/internal/ai"
	"hibachi/internal/config"
	httptransport "hibachi/internal/http"
	"hibachi/internal/infra"
	"hibachi/internal/maps"
	"hibachi/internal/modules/pricing"
	"hibachi/internal/modules/quote"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := infra.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	var base pricing.PriceTable
	if cfg.Pricing.File != "" {
		if base, err = pricing.LoadFile(cfg.Pricing.File); err != nil {
			log.Fatal("price file", zap.String("path", cfg.Pricing.File), zap.Error(err))
		}
	}
	pricingSvc := pricing.NewService(
		pricing.NewStore(dbPool),
		pricing.NewCache(redisClient),
		log.Named("pricing"),
		pricing.Options{Base: base, CacheTTL: cfg.Pricing.CacheTTL},
	)

	var distance quote.DistanceResolver
	if cfg.Maps.APIKey != "" && cfg.Maps.BaseAddress != "" {
		ds, err := maps.NewDistanceService(cfg.Maps.APIKey, cfg.Maps.BaseAddress)
		if err != nil {
			log.Fatal("maps init", zap.Error(err))
		}
		distance = ds
	} else {
		log.Info("venue distance lookup disabled; quotes need travel_miles")
	}

	quoteSvc := quote.NewService(pricingSvc, distance, quote.NewStore(dbPool), log.Named("quote"))

	var drafter ai.Drafter = ai.NewTemplateDrafter()
	if cfg.AI.GeminiKey != "" {
		gd, err := ai.NewGeminiDrafter(ctx, cfg.AI.GeminiKey, log.Named("ai"))
		if err != nil {
			log.Fatal("gemini init", zap.Error(err))
		}
		defer gd.Close()
		drafter = gd
	}

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Quote:   quoteSvc,
		Pricing: pricingSvc,
		Drafter: drafter,
		Logger:  log.Named("http"),
	})
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}()

	log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("http server", zap.Error(err))
	}
}
