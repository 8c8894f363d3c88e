// README: Pricing service resolves current unit prices with cache, config store and built-in fallbacks.
package pricing

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidKey    = errors.New("invalid pricing key")
	ErrInvalidPrice  = errors.New("price must be non-negative")
	ErrNoConfigStore = errors.New("pricing config store not configured")
)

const defaultCacheTTL = 5 * time.Minute

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// ConfigStore is the persistent key/value source of prices.
type ConfigStore interface {
	LoadAll(ctx context.Context) (PriceTable, error)
	Upsert(ctx context.Context, key string, cents int64) error
}

// TableCache holds the merged table between requests.
type TableCache interface {
	Get(ctx context.Context) (PriceTable, bool, error)
	Set(ctx context.Context, table PriceTable, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type Options struct {
	// Base replaces the built-in defaults as the fallback layer.
	Base     PriceTable
	CacheTTL time.Duration
}

type Service struct {
	store ConfigStore
	cache TableCache
	log   *zap.Logger
	base  PriceTable
	ttl   time.Duration
}

// NewService wires the lookup chain. store and cache may be nil; the service then
// answers from the fallback table alone.
func NewService(store ConfigStore, cache TableCache, log *zap.Logger, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	base := DefaultTable()
	if opts.Base != nil {
		base = base.Merge(opts.Base)
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{store: store, cache: cache, log: log, base: base, ttl: ttl}
}

// Table returns the current price table. It never fails: source errors are
// logged and the fallback layer answers instead.
func (s *Service) Table(ctx context.Context) PriceTable {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.log.Warn("pricing cache read failed", zap.Error(err))
		case ok:
			return s.base.Merge(cached)
		}
	}

	if s.store == nil {
		return s.base.Merge(nil)
	}
	cfg, err := s.store.LoadAll(ctx)
	if err != nil {
		s.log.Warn("pricing config unavailable, using defaults", zap.Error(err))
		return s.base.Merge(nil)
	}
	table := s.base.Merge(cfg)

	if s.cache != nil {
		if err := s.cache.Set(ctx, table, s.ttl); err != nil {
			s.log.Warn("pricing cache write failed", zap.Error(err))
		}
	}
	return table
}

// Price returns the unit price of a single category.
func (s *Service) Price(ctx context.Context, key string) int64 {
	return s.Table(ctx).Get(key)
}

// List returns every known key with the layer that supplied it, sorted by key.
func (s *Service) List(ctx context.Context) []Entry {
	var cfg PriceTable
	if s.store != nil {
		var err error
		if cfg, err = s.store.LoadAll(ctx); err != nil {
			s.log.Warn("pricing config unavailable, listing defaults", zap.Error(err))
			cfg = nil
		}
	}

	entries := make([]Entry, 0, len(s.base)+len(cfg))
	for k, v := range s.base.Merge(cfg) {
		src := SourceDefault
		if _, ok := cfg[k]; ok {
			src = SourceConfig
		}
		entries = append(entries, Entry{Key: k, Cents: v, Source: src})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// SetPrice writes one key to the config store and drops the cached table.
func (s *Service) SetPrice(ctx context.Context, key string, cents int64) error {
	if !keyPattern.MatchString(key) {
		return ErrInvalidKey
	}
	if cents < 0 {
		return ErrInvalidPrice
	}
	if s.store == nil {
		return ErrNoConfigStore
	}
	if err := s.store.Upsert(ctx, key, cents); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("pricing cache invalidate failed", zap.String("key", key), zap.Error(err))
		}
	}
	s.log.Info("price updated", zap.String("key", key), zap.Int64("cents", cents))
	return nil
}

// Import writes every entry of table, stopping at the first failure.
func (s *Service) Import(ctx context.Context, table PriceTable) (int, error) {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if err := s.SetPrice(ctx, k, table[k]); err != nil {
			return i, err
		}
	}
	return len(keys), nil
}
