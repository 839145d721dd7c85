// internal/interfaces/api/client_test.go
package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/api"
	"github.com/your-org/storefront/internal/mockapi"
	"github.com/your-org/storefront/internal/pkg/logging"
)

// newTestClient runs the mock commerce API on an httptest server and
// points a client at it.
func newTestClient(t *testing.T) *api.Client {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Name: "storefront", Environment: "development"},
		Mock: config.MockConfig{
			JWTSecret:          "integration-test-secret",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
			BcryptCost:         4, // bcrypt.MinCost, tests don't need slow hashes
		},
	}

	server := mockapi.NewServer(cfg, logging.NewQuiet())
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)

	cfg.API = config.APIConfig{BaseURL: ts.URL + "/api/v1", Timeout: 5 * time.Second}
	return api.NewClient(cfg, logging.NewQuiet())
}

func login(t *testing.T, client *api.Client) string {
	t.Helper()
	creds, err := client.Login(context.Background(), mockapi.DemoEmail, mockapi.DemoPassword)
	require.NoError(t, err)
	require.NotEmpty(t, creds.Access)
	return creds.Access
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	t.Run("paginates with a stable total", func(t *testing.T) {
		page1, err := client.ListProducts(ctx, catalog.FilterSpec{}, 1, 12)
		require.NoError(t, err)
		assert.Len(t, page1.Products, 12)
		assert.Equal(t, 26, page1.Total)

		page3, err := client.ListProducts(ctx, catalog.FilterSpec{}, 3, 12)
		require.NoError(t, err)
		assert.Len(t, page3.Products, 2)
		assert.Equal(t, page1.Total, page3.Total)
	})

	t.Run("filters by category", func(t *testing.T) {
		res, err := client.ListProducts(ctx, catalog.FilterSpec{Category: "books"}, 1, 12)
		require.NoError(t, err)
		assert.Equal(t, 7, res.Total)
		for _, p := range res.Products {
			assert.Equal(t, "books", p.CategorySlug)
		}
	})

	t.Run("filters in-stock only", func(t *testing.T) {
		res, err := client.ListProducts(ctx, catalog.FilterSpec{InStockOnly: true}, 1, 50)
		require.NoError(t, err)
		require.NotEmpty(t, res.Products)
		for _, p := range res.Products {
			assert.True(t, p.InStock, p.Slug)
		}
	})

	t.Run("orders by price ascending", func(t *testing.T) {
		res, err := client.ListProducts(ctx, catalog.FilterSpec{Ordering: "price"}, 1, 12)
		require.NoError(t, err)
		require.NotEmpty(t, res.Products)
		assert.Equal(t, "thinking-in-systems", res.Products[0].Slug, "cheapest seeded product first")
	})

	t.Run("searches names and descriptions", func(t *testing.T) {
		res, err := client.ListProducts(ctx, catalog.FilterSpec{Search: "keyboard"}, 1, 12)
		require.NoError(t, err)
		require.NotEmpty(t, res.Products)
		assert.Equal(t, "mechanical-keyboard", res.Products[0].Slug)
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	t.Run("returns the normalized detail", func(t *testing.T) {
		p, err := client.GetProduct(ctx, "the-go-programming-language")
		require.NoError(t, err)
		assert.Equal(t, "39.99", p.Price)
		assert.Equal(t, "49.99", p.CompareAtPrice)
		assert.True(t, p.HasDiscount())
		assert.Equal(t, "Books", p.CategoryName)
		assert.True(t, p.InStock)
	})

	t.Run("reports out-of-stock products", func(t *testing.T) {
		p, err := client.GetProduct(ctx, "database-internals")
		require.NoError(t, err)
		assert.False(t, p.InStock)
		assert.Zero(t, p.StockQuantity)
	})

	t.Run("maps a missing slug to a typed error", func(t *testing.T) {
		_, err := client.GetProduct(ctx, "no-such-product")
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}

func TestListCategories(t *testing.T) {
	client := newTestClient(t)
	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 4)
	assert.Equal(t, "books", categories[0].Slug)
}

func TestAuth(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	t.Run("login returns a complete triple", func(t *testing.T) {
		creds, err := client.Login(ctx, mockapi.DemoEmail, mockapi.DemoPassword)
		require.NoError(t, err)
		assert.NotEmpty(t, creds.Access)
		assert.NotEmpty(t, creds.Refresh)
		assert.Equal(t, mockapi.DemoEmail, creds.User.Email)
	})

	t.Run("bad password is a 401 with the server's message", func(t *testing.T) {
		_, err := client.Login(ctx, mockapi.DemoEmail, "wrong")
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.NotEmpty(t, apiErr.Message)
	})

	t.Run("register creates a signed-in account", func(t *testing.T) {
		creds, err := client.Register(ctx, api.RegisterRequest{
			Email:           "new@example.com",
			Username:        "newbie",
			Password:        "long-enough-password",
			PasswordConfirm: "long-enough-password",
			FirstName:       "New",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, creds.Access)
		assert.Equal(t, "newbie", creds.User.Username)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := client.Register(ctx, api.RegisterRequest{
			Email:           mockapi.DemoEmail,
			Username:        "other",
			Password:        "long-enough-password",
			PasswordConfirm: "long-enough-password",
		})
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
	})
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	const slug = "cast-iron-skillet"

	t.Run("posting requires authentication", func(t *testing.T) {
		_, err := client.CreateReview(ctx, slug, 5, "great pan", "")
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("posted review shows up in the list and the average", func(t *testing.T) {
		token := login(t, client)

		review, err := client.CreateReview(ctx, slug, 4, "seasoned nicely", token)
		require.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
		assert.Equal(t, "demo", review.User)

		reviews, err := client.ListReviews(ctx, slug)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, "seasoned nicely", reviews[0].Comment)

		p, err := client.GetProduct(ctx, slug)
		require.NoError(t, err)
		assert.Equal(t, 1, p.ReviewCount)
		assert.Equal(t, 4.0, p.Rating)
	})

	t.Run("out-of-range rating is rejected", func(t *testing.T) {
		token := login(t, client)
		_, err := client.CreateReview(ctx, slug, 6, "", token)
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})
}

func TestOrders(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	token := login(t, client)

	items := []api.OrderItemRequest{
		{Product: 1, Quantity: 2},  // The Go Programming Language, 39.99
		{Product: 15, Quantity: 1}, // Ergonomic Mouse, 49.99
	}

	t.Run("placing requires authentication", func(t *testing.T) {
		_, err := client.PlaceOrder(ctx, items, "")
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("full order lifecycle", func(t *testing.T) {
		placed, err := client.PlaceOrder(ctx, items, token)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(placed.OrderNumber, "ORD-"), placed.OrderNumber)
		assert.Equal(t, order.StatusPending, placed.Status)
		assert.Equal(t, "129.97", placed.TotalAmount)
		require.Len(t, placed.Items, 2)
		assert.Equal(t, "79.98", placed.Items[0].Subtotal)
		assert.True(t, placed.CanBeCancelled())

		orders, err := client.ListOrders(ctx, token)
		require.NoError(t, err)
		require.NotEmpty(t, orders)
		assert.Equal(t, placed.ID, orders[0].ID, "newest order first")

		cancelled, err := client.CancelOrder(ctx, placed.ID, token)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, cancelled.Status)
		assert.False(t, cancelled.CanBeCancelled())

		// A second cancel is rejected.
		_, err = client.CancelOrder(ctx, placed.ID, token)
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})

	t.Run("empty order is rejected", func(t *testing.T) {
		_, err := client.PlaceOrder(ctx, nil, token)
		var apiErr *api.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})
}
