package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/sessions/ports"
	wishlistdomain "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
	"github.com/Apurer/go-gin-storefront/internal/platform/blobstore/memory"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// flakyBackend fails reads while down is set.
type flakyBackend struct {
	*memory.Store
	mu   sync.Mutex
	down bool
}

func (f *flakyBackend) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *flakyBackend) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	down := f.down
	f.mu.Unlock()
	if down {
		return nil, errors.New("connection refused")
	}
	return f.Store.Get(ctx, key)
}

func coat(qty int) cartdomain.LineItem {
	return cartdomain.LineItem{ProductID: "1", Name: "Coat", Price: decimal.NewFromInt(299), Size: "M", Color: "Camel", Quantity: qty}
}

func TestGet_SameShopperSharesSession(t *testing.T) {
	r := NewRegistry(memory.NewStore())
	ctx := context.Background()

	a, err := r.Get(ctx, "shopper-a")
	require.NoError(t, err)
	b, err := r.Get(ctx, "shopper-a")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, r.Len())
}

func TestGet_ConcurrentFirstAccessLoadsOnce(t *testing.T) {
	r := NewRegistry(memory.NewStore())
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]*ports.Session, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := r.Get(ctx, "shopper-a")
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	wg.Wait()
	for _, s := range results {
		assert.Same(t, results[0], s)
	}
}

func TestGet_ShoppersAreIsolatedAndRestored(t *testing.T) {
	backend := memory.NewStore()
	ctx := context.Background()

	r := NewRegistry(backend)
	alice, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	_, err = alice.Cart.AddItem(ctx, coat(2))
	require.NoError(t, err)
	_, err = alice.Wishlist.AddItem(ctx, wishlistdomain.Item{ProductID: "5", Name: "Skirt", Price: decimal.NewFromInt(149)})
	require.NoError(t, err)

	bob, err := r.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bob.Cart.Items(ctx))

	closeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, r.Close(closeCtx))
	_, err = r.Get(ctx, "alice")
	assert.ErrorIs(t, err, ports.ErrClosed)

	restarted := NewRegistry(backend)
	again, err := restarted.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Cart.TotalItems(ctx))
	assert.True(t, again.Wishlist.IsInWishlist(ctx, "5"))
	require.NoError(t, restarted.Close(closeCtx))
}

func TestGet_RejectsInvalidShopperIDs(t *testing.T) {
	r := NewRegistry(memory.NewStore())
	for _, id := range []string{"", "  ", "a:b", "a/b", string(make([]byte, MaxShopperIDLength+1))} {
		_, err := r.Get(context.Background(), id)
		assert.ErrorIs(t, err, ports.ErrInvalidShopper, "id %q", id)
	}
}

func TestPurgeIdle_EvictsOnlyStaleSessionsAfterFlushing(t *testing.T) {
	backend := memory.NewStore()
	c := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(backend, WithClock(c.Now))
	ctx := context.Background()

	stale, err := r.Get(ctx, "stale")
	require.NoError(t, err)
	_, err = stale.Cart.AddItem(ctx, coat(1))
	require.NoError(t, err)

	c.Advance(45 * time.Minute)
	_, err = r.Get(ctx, "fresh")
	require.NoError(t, err)

	purged, err := r.PurgeIdle(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
	assert.Equal(t, 1, r.Len())

	payload, err := backend.Get(ctx, "stale:luxe-cart")
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"id":"1"`)

	restored, err := r.Get(ctx, "stale")
	require.NoError(t, err)
	assert.NotSame(t, stale, restored)
	assert.Equal(t, 1, restored.Cart.TotalItems(ctx))
}

func TestGet_ReadFailureIsNotCachedAndKeepsStoredSnapshot(t *testing.T) {
	backend := &flakyBackend{Store: memory.NewStore()}
	ctx := context.Background()
	closeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	first := NewRegistry(backend)
	alice, err := first.Get(ctx, "alice")
	require.NoError(t, err)
	_, err = alice.Cart.AddItem(ctx, coat(2))
	require.NoError(t, err)
	require.NoError(t, first.Close(closeCtx))
	stored, err := backend.Store.Get(ctx, "alice:luxe-cart")
	require.NoError(t, err)

	backend.setDown(true)
	r := NewRegistry(backend)
	_, err = r.Get(ctx, "alice")
	require.ErrorIs(t, err, ports.ErrUnavailable)
	assert.Equal(t, 0, r.Len())

	payload, err := backend.Store.Get(ctx, "alice:luxe-cart")
	require.NoError(t, err)
	assert.Equal(t, stored, payload)

	backend.setDown(false)
	again, err := r.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Cart.TotalItems(ctx))
	require.NoError(t, r.Close(closeCtx))
}

func TestAcquire_HeldSessionSurvivesPurgeUntilReleased(t *testing.T) {
	c := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(memory.NewStore(), WithClock(c.Now))
	ctx := context.Background()

	held, release, err := r.Acquire(ctx, "streaming")
	require.NoError(t, err)

	c.Advance(2 * time.Hour)
	purged, err := r.PurgeIdle(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 0, purged)
	same, err := r.Get(ctx, "streaming")
	require.NoError(t, err)
	assert.Same(t, held, same)

	release()
	release()
	purged, err = r.PurgeIdle(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 0, purged, "release refreshes the idle clock")

	c.Advance(time.Hour)
	purged, err = r.PurgeIdle(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
	assert.Equal(t, 0, r.Len())
}
