// internal/state/container.go
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/auth"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

// Event identifies which slice of application state changed.
type Event int

const (
	// EventCartChanged fires after any cart mutation.
	EventCartChanged Event = iota
	// EventAuthChanged fires after login, logout or session restore.
	EventAuthChanged
)

// Container is the application-state container: it owns the cart ledger
// and the auth session, persists a snapshot through the store bridge
// after every transition, and notifies subscribers of changes. The
// ledger and session themselves stay free of I/O; this is the only place
// that touches the store. There are no package-level singletons; the
// container is built in main and passed to whoever needs it.
type Container struct {
	log   *logrus.Logger
	store storage.Store
	cart  *cart.Ledger
	auth  *auth.Session
	subs  []func(Event)
}

// NewContainer creates a container over the given store bridge.
func NewContainer(store storage.Store, log *logrus.Logger) *Container {
	return &Container{
		log:   log,
		store: store,
		cart:  cart.NewLedger(),
		auth:  auth.NewSession(),
	}
}

// Cart exposes the ledger for reads. Mutations go through the container
// so they persist and notify.
func (c *Container) Cart() *cart.Ledger { return c.cart }

// Auth exposes the session for reads.
func (c *Container) Auth() *auth.Session { return c.auth }

// Subscribe registers a change listener. Listeners run synchronously on
// the mutating call, after persistence.
func (c *Container) Subscribe(fn func(Event)) {
	c.subs = append(c.subs, fn)
}

func (c *Container) publish(ev Event) {
	for _, fn := range c.subs {
		fn(ev)
	}
}

// Restore loads persisted cart and auth state. Missing or corrupt
// snapshots leave the corresponding state empty; restore never fails the
// caller over bad persisted data.
func (c *Container) Restore(ctx context.Context) {
	c.restoreCart(ctx)
	c.restoreAuth(ctx)
}

func (c *Container) restoreCart(ctx context.Context) {
	data, err := c.store.Get(ctx, storage.KeyCart)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.log.WithError(err).Warn("Failed to read persisted cart")
		}
		return
	}

	var items []cart.Item
	if err := json.Unmarshal(data, &items); err != nil {
		// Corrupt snapshot: start with an empty cart, don't surface.
		c.log.WithError(err).Debug("Discarding corrupt cart snapshot")
		return
	}
	c.cart.Restore(items)
	c.publish(EventCartChanged)
}

func (c *Container) restoreAuth(ctx context.Context) {
	access, errA := c.getString(ctx, storage.KeyAccessToken)
	refresh, errR := c.getString(ctx, storage.KeyRefreshToken)
	userData, errU := c.store.Get(ctx, storage.KeyUser)
	if errA != nil || errR != nil || errU != nil || access == "" || refresh == "" {
		// A partial triple must never produce a half-authenticated
		// session; stay logged out.
		return
	}

	var u auth.User
	if err := json.Unmarshal(userData, &u); err != nil {
		c.log.WithError(err).Debug("Discarding corrupt user snapshot")
		return
	}

	c.auth.SetCredentials(auth.Credentials{User: u, Access: access, Refresh: refresh})
	c.publish(EventAuthChanged)
}

func (c *Container) getString(ctx context.Context, key string) (string, error) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}

func (c *Container) setString(ctx context.Context, key, value string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key, data)
}

// AddToCart merges the product into the cart and persists the snapshot.
func (c *Container) AddToCart(ctx context.Context, p catalog.Product, quantity int) error {
	c.cart.Add(p, quantity)
	return c.persistCart(ctx)
}

// RemoveFromCart removes the product and persists the snapshot.
// Removing an absent product persists unchanged state harmlessly.
func (c *Container) RemoveFromCart(ctx context.Context, productID int64) error {
	c.cart.Remove(productID)
	return c.persistCart(ctx)
}

// UpdateQuantity clamps and applies the new quantity, then persists.
func (c *Container) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	c.cart.SetQuantity(productID, quantity)
	return c.persistCart(ctx)
}

// ClearCart empties the ledger and deletes the persisted snapshot
// entirely, so a later restore finds nothing to resurrect. Used after an
// order is placed.
func (c *Container) ClearCart(ctx context.Context) error {
	c.cart.Clear()
	defer c.publish(EventCartChanged)
	if err := c.store.Delete(ctx, storage.KeyCart); err != nil {
		return fmt.Errorf("failed to clear persisted cart: %w", err)
	}
	return nil
}

func (c *Container) persistCart(ctx context.Context) error {
	defer c.publish(EventCartChanged)
	data, err := json.Marshal(c.cart.Items())
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	if err := c.store.Set(ctx, storage.KeyCart, data); err != nil {
		return fmt.Errorf("failed to persist cart snapshot: %w", err)
	}
	return nil
}

// SetCredentials installs the full auth triple and persists all three
// fields together.
func (c *Container) SetCredentials(ctx context.Context, creds auth.Credentials) error {
	c.auth.SetCredentials(creds)
	defer c.publish(EventAuthChanged)

	userData, err := json.Marshal(creds.User)
	if err != nil {
		return fmt.Errorf("failed to encode user snapshot: %w", err)
	}
	if err := c.setString(ctx, storage.KeyAccessToken, creds.Access); err != nil {
		return fmt.Errorf("failed to persist access token: %w", err)
	}
	if err := c.setString(ctx, storage.KeyRefreshToken, creds.Refresh); err != nil {
		return fmt.Errorf("failed to persist refresh token: %w", err)
	}
	if err := c.store.Set(ctx, storage.KeyUser, userData); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

// Logout clears the session and deletes all three persisted auth keys.
func (c *Container) Logout(ctx context.Context) error {
	c.auth.Logout()
	defer c.publish(EventAuthChanged)
	if err := c.store.Delete(ctx, storage.KeyAccessToken, storage.KeyRefreshToken, storage.KeyUser); err != nil {
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}
	return nil
}
