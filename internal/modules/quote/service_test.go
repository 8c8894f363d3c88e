package quote

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hibachi/internal/modules/pricing"
	"hibachi/internal/types"
)

type fixedPricing struct {
	table pricing.PriceTable
}

func (p fixedPricing) Table(_ context.Context) pricing.PriceTable {
	return p.table
}

type stubDistance struct {
	miles float64
	err   error
	calls int
}

func (d *stubDistance) DrivingMiles(_ context.Context, _ string) (float64, error) {
	d.calls++
	return d.miles, d.err
}

// memRepo is an in-memory Repository.
type memRepo struct {
	mu      sync.Mutex
	quotes  map[types.ID]*Quote
	saveErr error
}

func newMemRepo() *memRepo {
	return &memRepo{quotes: map[types.ID]*Quote{}}
}

func (r *memRepo) Save(_ context.Context, q *Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *q
	r.quotes[q.ID] = &cp
	return nil
}

func (r *memRepo) Get(_ context.Context, id types.ID) (*Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return q, nil
}

func miles(v float64) *float64 { return &v }

func TestServiceQuote_ExplicitMiles(t *testing.T) {
	dist := &stubDistance{miles: 99}
	repo := newMemRepo()
	svc := NewService(fixedPricing{pricing.DefaultTable()}, dist, repo, nil)
	ctx := context.Background()

	q, err := svc.Quote(ctx, QuoteCommand{
		CustomerName: "  Malia ",
		VenueAddress: "123 Beach Rd",
		Adults:       14,
		Children:     2,
		Upgrades:     map[string]int{pricing.UpgradeFiletMignon: 10},
		TravelMiles:  miles(45),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "Malia", q.CustomerName)
	assert.Equal(t, int64(91000), q.Result.GrandTotal)
	assert.Equal(t, 0, dist.calls, "explicit miles skip the resolver")

	stored, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Result, stored.Result)
}

func TestServiceQuote_ResolvesVenue(t *testing.T) {
	dist := &stubDistance{miles: 60}
	svc := NewService(fixedPricing{pricing.DefaultTable()}, dist, nil, nil)

	q, err := svc.Quote(context.Background(), QuoteCommand{VenueAddress: "1 Main St", Adults: 9})
	require.NoError(t, err)
	assert.Equal(t, 1, dist.calls)
	assert.Equal(t, 60.0, q.Request.TravelMiles)
	assert.Equal(t, int64(6000), q.Result.TravelFee)
	assert.Equal(t, int64(61000), q.Result.GrandTotal)
}

func TestServiceQuote_NoVenueNoMiles(t *testing.T) {
	svc := NewService(fixedPricing{pricing.DefaultTable()}, nil, nil, nil)
	q, err := svc.Quote(context.Background(), QuoteCommand{Adults: 12})
	require.NoError(t, err)
	assert.Zero(t, q.Result.TravelFee)
}

func TestServiceQuote_DistanceErrors(t *testing.T) {
	ctx := context.Background()

	noResolver := NewService(fixedPricing{pricing.DefaultTable()}, nil, nil, nil)
	_, err := noResolver.Quote(ctx, QuoteCommand{VenueAddress: "somewhere", Adults: 10})
	assert.ErrorIs(t, err, ErrDistanceUnavailable)

	failing := NewService(fixedPricing{pricing.DefaultTable()}, &stubDistance{err: errors.New("ZERO_RESULTS")}, nil, nil)
	_, err = failing.Quote(ctx, QuoteCommand{VenueAddress: "somewhere", Adults: 10})
	assert.ErrorIs(t, err, ErrDistanceUnavailable)
}

func TestServiceQuote_InvalidInputNotSaved(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(fixedPricing{pricing.DefaultTable()}, nil, repo, nil)

	_, err := svc.Quote(context.Background(), QuoteCommand{Adults: -3})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.quotes)
}

func TestServiceQuote_SaveError(t *testing.T) {
	repo := newMemRepo()
	repo.saveErr = errors.New("disk full")
	svc := NewService(fixedPricing{pricing.DefaultTable()}, nil, repo, nil)

	_, err := svc.Quote(context.Background(), QuoteCommand{Adults: 10})
	assert.Error(t, err)
}

func TestServiceGet_NotFound(t *testing.T) {
	ctx := context.Background()

	svc := NewService(fixedPricing{pricing.DefaultTable()}, nil, newMemRepo(), nil)
	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	noRepo := NewService(fixedPricing{pricing.DefaultTable()}, nil, nil, nil)
	_, err = noRepo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceQuote_UsesLivePrices(t *testing.T) {
	table := pricing.DefaultTable().Merge(pricing.PriceTable{pricing.KeyAdult: 6000})
	svc := NewService(fixedPricing{table}, nil, nil, nil)

	q, err := svc.Quote(context.Background(), QuoteCommand{Adults: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(120000), q.Result.Subtotal)
}
