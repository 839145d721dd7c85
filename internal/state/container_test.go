// internal/state/container_test.go
package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/auth"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/logging"
)

func newTestContainer(t *testing.T) (*Container, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	return reopenContainer(t, path), path
}

// reopenContainer simulates an app restart over the same state file.
func reopenContainer(t *testing.T, path string) *Container {
	t.Helper()
	store, err := storage.NewFileStore(path)
	require.NoError(t, err)
	return NewContainer(store, logging.NewQuiet())
}

var testProduct = catalog.Product{ID: 1, Slug: "desk-lamp", Name: "Desk Lamp", Price: "89.00", InStock: true}

var testCreds = auth.Credentials{
	User:    auth.User{ID: 1, Email: "demo@example.com", Username: "demo"},
	Access:  "access-token",
	Refresh: "refresh-token",
}

func TestCartPersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("cart survives a restart", func(t *testing.T) {
		c, path := newTestContainer(t)
		require.NoError(t, c.AddToCart(ctx, testProduct, 2))

		c2 := reopenContainer(t, path)
		c2.Restore(ctx)
		assert.Equal(t, 2, c2.Cart().Quantity(testProduct.ID))
		assert.Equal(t, "Desk Lamp", c2.Cart().Items()[0].Product.Name, "snapshot keeps the product details")
	})

	t.Run("mutations persist incrementally", func(t *testing.T) {
		c, path := newTestContainer(t)
		require.NoError(t, c.AddToCart(ctx, testProduct, 1))
		require.NoError(t, c.AddToCart(ctx, catalog.Product{ID: 2, Name: "Mug", Price: "14.50"}, 1))
		require.NoError(t, c.UpdateQuantity(ctx, testProduct.ID, 5))
		require.NoError(t, c.RemoveFromCart(ctx, 2))

		c2 := reopenContainer(t, path)
		c2.Restore(ctx)
		assert.Equal(t, 1, c2.Cart().Len())
		assert.Equal(t, 5, c2.Cart().Quantity(testProduct.ID))
	})

	t.Run("cleared cart does not resurrect on restart", func(t *testing.T) {
		c, path := newTestContainer(t)
		require.NoError(t, c.AddToCart(ctx, testProduct, 3))
		require.NoError(t, c.ClearCart(ctx))

		c2 := reopenContainer(t, path)
		c2.Restore(ctx)
		assert.Zero(t, c2.Cart().Len())
	})

	t.Run("corrupt snapshot restores as an empty cart", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"cart": "not an item list"}`), 0o644))

		c := reopenContainer(t, path)
		c.Restore(ctx)
		assert.Zero(t, c.Cart().Len())
	})
}

func TestAuthPersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("session survives a restart", func(t *testing.T) {
		c, path := newTestContainer(t)
		require.NoError(t, c.SetCredentials(ctx, testCreds))

		c2 := reopenContainer(t, path)
		c2.Restore(ctx)
		assert.True(t, c2.Auth().Authenticated())
		assert.Equal(t, "access-token", c2.Auth().AccessToken())
		assert.Equal(t, "demo@example.com", c2.Auth().User().Email)
	})

	t.Run("a partial triple stays logged out", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		store, err := storage.NewFileStore(path)
		require.NoError(t, err)
		// Access token without refresh token or user.
		require.NoError(t, store.Set(ctx, storage.KeyAccessToken, []byte(`"orphan"`)))

		c := reopenContainer(t, path)
		c.Restore(ctx)
		assert.False(t, c.Auth().Authenticated())
	})

	t.Run("logout removes all three keys", func(t *testing.T) {
		c, path := newTestContainer(t)
		require.NoError(t, c.SetCredentials(ctx, testCreds))
		require.NoError(t, c.Logout(ctx))

		store, err := storage.NewFileStore(path)
		require.NoError(t, err)
		for _, key := range []string{storage.KeyAccessToken, storage.KeyRefreshToken, storage.KeyUser} {
			_, err := store.Get(ctx, key)
			assert.ErrorIs(t, err, storage.ErrNotFound, key)
		}

		c2 := reopenContainer(t, path)
		c2.Restore(ctx)
		assert.False(t, c2.Auth().Authenticated())
	})

	t.Run("logout leaves the cart alone", func(t *testing.T) {
		c, path := newTestContainer(t)
		require.NoError(t, c.AddToCart(ctx, testProduct, 1))
		require.NoError(t, c.SetCredentials(ctx, testCreds))
		require.NoError(t, c.Logout(ctx))

		c2 := reopenContainer(t, path)
		c2.Restore(ctx)
		assert.Equal(t, 1, c2.Cart().Len())
	})
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer(t)

	var events []Event
	c.Subscribe(func(ev Event) { events = append(events, ev) })

	require.NoError(t, c.AddToCart(ctx, testProduct, 1))
	require.NoError(t, c.SetCredentials(ctx, testCreds))
	require.NoError(t, c.Logout(ctx))

	assert.Equal(t, []Event{EventCartChanged, EventAuthChanged, EventAuthChanged}, events)
}
