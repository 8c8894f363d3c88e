package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory ConfigStore.
type memStore struct {
	mu      sync.Mutex
	table   PriceTable
	loadErr error
	loads   int
}

func (m *memStore) LoadAll(_ context.Context) (PriceTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return PriceTable{}.Merge(m.table), nil
}

func (m *memStore) Upsert(_ context.Context, key string, cents int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		m.table = PriceTable{}
	}
	m.table[key] = cents
	return nil
}

// memCache is an in-memory TableCache.
type memCache struct {
	table  PriceTable
	getErr error
	sets   int
}

func (c *memCache) Get(_ context.Context) (PriceTable, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	if c.table == nil {
		return nil, false, nil
	}
	return c.table, true, nil
}

func (c *memCache) Set(_ context.Context, table PriceTable, _ time.Duration) error {
	c.sets++
	c.table = table
	return nil
}

func (c *memCache) Invalidate(_ context.Context) error {
	c.table = nil
	return nil
}

func TestTable_NoSourcesUsesDefaults(t *testing.T) {
	svc := NewService(nil, nil, nil, Options{})
	got := svc.Table(context.Background())
	assert.Equal(t, DefaultTable(), got)
}

func TestTable_ConfigOverridesDefaults(t *testing.T) {
	store := &memStore{table: PriceTable{KeyAdult: 6000, "wagyu": 2500}}
	svc := NewService(store, nil, nil, Options{})

	got := svc.Table(context.Background())
	assert.Equal(t, int64(6000), got[KeyAdult])
	assert.Equal(t, int64(2500), got["wagyu"])
	assert.Equal(t, int64(3000), got[KeyChild], "missing key falls back to default")
}

func TestTable_StoreErrorFallsBackSilently(t *testing.T) {
	store := &memStore{loadErr: errors.New("connection refused")}
	svc := NewService(store, nil, nil, Options{})

	got := svc.Table(context.Background())
	assert.Equal(t, DefaultTable(), got)
}

func TestTable_CacheHitSkipsStore(t *testing.T) {
	store := &memStore{table: PriceTable{KeyAdult: 6000}}
	cache := &memCache{}
	svc := NewService(store, cache, nil, Options{})
	ctx := context.Background()

	first := svc.Table(ctx)
	second := svc.Table(ctx)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.loads)
	assert.Equal(t, 1, cache.sets)
}

func TestTable_CacheErrorReadsStore(t *testing.T) {
	store := &memStore{table: PriceTable{KeyChild: 3500}}
	cache := &memCache{getErr: errors.New("redis down")}
	svc := NewService(store, cache, nil, Options{})

	got := svc.Table(context.Background())
	assert.Equal(t, int64(3500), got[KeyChild])
	assert.Equal(t, 1, store.loads)
}

func TestTable_BaseOverridesBuiltins(t *testing.T) {
	svc := NewService(nil, nil, nil, Options{Base: PriceTable{KeyDeposit: 20000}})
	got := svc.Table(context.Background())
	assert.Equal(t, int64(20000), got[KeyDeposit])
	assert.Equal(t, int64(5500), got[KeyAdult])
}

func TestPrice_UnknownKeyIsZero(t *testing.T) {
	svc := NewService(nil, nil, nil, Options{})
	ctx := context.Background()
	assert.Equal(t, int64(5500), svc.Price(ctx, KeyAdult))
	assert.Equal(t, int64(0), svc.Price(ctx, "caviar"))
}

func TestSetPrice(t *testing.T) {
	store := &memStore{}
	cache := &memCache{}
	svc := NewService(store, cache, nil, Options{})
	ctx := context.Background()

	_ = svc.Table(ctx) // warm cache with defaults
	require.NotNil(t, cache.table)

	require.NoError(t, svc.SetPrice(ctx, KeyAdult, 6500))
	assert.Nil(t, cache.table, "cache must be invalidated on write")
	assert.Equal(t, int64(6500), svc.Price(ctx, KeyAdult))
}

func TestSetPrice_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memStore{}, nil, nil, Options{})

	assert.ErrorIs(t, svc.SetPrice(ctx, "", 100), ErrInvalidKey)
	assert.ErrorIs(t, svc.SetPrice(ctx, "Adult Price", 100), ErrInvalidKey)
	assert.ErrorIs(t, svc.SetPrice(ctx, KeyAdult, -1), ErrInvalidPrice)

	noStore := NewService(nil, nil, nil, Options{})
	assert.ErrorIs(t, noStore.SetPrice(ctx, KeyAdult, 100), ErrNoConfigStore)
}

func TestList_ReportsSources(t *testing.T) {
	store := &memStore{table: PriceTable{KeyAdult: 6000}}
	svc := NewService(store, nil, nil, Options{})

	entries := svc.List(context.Background())
	require.Len(t, entries, len(DefaultTable()))
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Key, entries[i].Key)
	}
	for _, e := range entries {
		if e.Key == KeyAdult {
			assert.Equal(t, SourceConfig, e.Source)
			assert.Equal(t, int64(6000), e.Cents)
		} else {
			assert.Equal(t, SourceDefault, e.Source, e.Key)
		}
	}
}

func TestImport(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, nil, nil, Options{})

	n, err := svc.Import(context.Background(), PriceTable{KeyAdult: 6000, KeyChild: 3200})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(3200), store.table[KeyChild])

	n, err = svc.Import(context.Background(), PriceTable{"a_ok": 1, "b_bad": -5})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Equal(t, 1, n)
}

func TestIsUpgrade(t *testing.T) {
	assert.True(t, IsUpgrade(UpgradeLobsterTail))
	assert.False(t, IsUpgrade(KeyAdult))
	assert.False(t, IsUpgrade(KeyFreeMiles))
	assert.False(t, IsUpgrade(""))

	ups := DefaultTable().Upgrades()
	assert.Len(t, ups, 6)
	assert.NotContains(t, ups, KeyDeposit)
}

func TestPriceTableLookup(t *testing.T) {
	bare := PriceTable{KeyAdult: 6000}

	v, ok := bare.Lookup(KeyAdult)
	assert.True(t, ok)
	assert.Equal(t, int64(6000), v)

	v, ok = bare.Lookup(UpgradeFiletMignon)
	assert.True(t, ok)
	assert.Equal(t, int64(500), v)

	_, ok = bare.Lookup("caviar")
	assert.False(t, ok)
}
