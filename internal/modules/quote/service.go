// README: Quote service resolves prices and distance, calculates and persists quotes.
package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hibachi/internal/modules/pricing"
	"hibachi/internal/types"
)

var (
	ErrInvalidInput        = errors.New("invalid quote input")
	ErrUnknownUpgrade      = errors.New("unknown upgrade")
	ErrNotFound            = errors.New("quote not found")
	ErrDistanceUnavailable = errors.New("travel distance unavailable")
)

type Pricing interface {
	Table(ctx context.Context) pricing.PriceTable
}

// DistanceResolver turns a venue address into one-way driving miles from the base kitchen.
type DistanceResolver interface {
	DrivingMiles(ctx context.Context, destination string) (float64, error)
}

type Repository interface {
	Save(ctx context.Context, q *Quote) error
	Get(ctx context.Context, id types.ID) (*Quote, error)
}

type Service struct {
	pricing  Pricing
	distance DistanceResolver
	repo     Repository
	log      *zap.Logger
	now      func() time.Time
}

// NewService builds a quote service. distance and repo may be nil: quotes then
// require explicit miles and are not persisted.
func NewService(prices Pricing, distance DistanceResolver, repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{pricing: prices, distance: distance, repo: repo, log: log, now: time.Now}
}

type QuoteCommand struct {
	CustomerName string
	VenueAddress string
	Adults       int
	Children     int
	Toddlers     int
	Upgrades     map[string]int
	// TravelMiles takes precedence over VenueAddress when set.
	TravelMiles *float64
}

func (s *Service) Quote(ctx context.Context, cmd QuoteCommand) (*Quote, error) {
	miles, err := s.resolveMiles(ctx, cmd)
	if err != nil {
		return nil, err
	}
	req := PartyRequest{
		Adults:      cmd.Adults,
		Children:    cmd.Children,
		Toddlers:    cmd.Toddlers,
		Upgrades:    cmd.Upgrades,
		TravelMiles: miles,
	}

	res, err := Calculate(s.pricing.Table(ctx), req)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		ID:           types.ID(uuid.NewString()),
		CustomerName: strings.TrimSpace(cmd.CustomerName),
		VenueAddress: strings.TrimSpace(cmd.VenueAddress),
		Request:      req,
		Result:       res,
		CreatedAt:    s.now().UTC(),
	}
	if s.repo != nil {
		if err := s.repo.Save(ctx, q); err != nil {
			return nil, fmt.Errorf("save quote: %w", err)
		}
	}
	s.log.Info("quote calculated",
		zap.String("quote_id", string(q.ID)),
		zap.Int("guests", req.Guests()),
		zap.Float64("travel_miles", miles),
		zap.Int64("grand_total", res.GrandTotal),
		zap.Bool("applied_minimum", res.AppliedMinimum),
	)
	return q, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Quote, error) {
	if s.repo == nil {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) resolveMiles(ctx context.Context, cmd QuoteCommand) (float64, error) {
	if cmd.TravelMiles != nil {
		return *cmd.TravelMiles, nil
	}
	addr := strings.TrimSpace(cmd.VenueAddress)
	if addr == "" {
		return 0, nil
	}
	if s.distance == nil {
		return 0, fmt.Errorf("%w: no distance resolver configured", ErrDistanceUnavailable)
	}
	miles, err := s.distance.DrivingMiles(ctx, addr)
	if err != nil {
		s.log.Warn("venue distance lookup failed", zap.String("venue", addr), zap.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrDistanceUnavailable, err)
	}
	return miles, nil
}
