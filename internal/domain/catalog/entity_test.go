// internal/domain/catalog/entity_test.go
package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUnmarshal(t *testing.T) {
	t.Run("normalizes the detail shape", func(t *testing.T) {
		payload := `{
			"id": 7,
			"name": "Walnut Desk Lamp",
			"slug": "walnut-desk-lamp",
			"price": "89.00",
			"compare_at_price": "119.00",
			"stock_quantity": 4,
			"is_in_stock": true,
			"category": {"id": 2, "name": "Lighting", "slug": "lighting"},
			"images": [{"image": "https://cdn.example.com/lamp.jpg", "alt_text": "lamp"}],
			"average_rating": 4.5,
			"review_count": 12,
			"created_at": "2026-03-01T10:00:00Z"
		}`

		var p Product
		require.NoError(t, json.Unmarshal([]byte(payload), &p))

		assert.Equal(t, int64(7), p.ID)
		assert.Equal(t, "89.00", p.Price)
		assert.Equal(t, "119.00", p.CompareAtPrice)
		assert.True(t, p.InStock)
		assert.Equal(t, "lighting", p.CategorySlug)
		assert.Equal(t, "Lighting", p.CategoryName)
		assert.Equal(t, "https://cdn.example.com/lamp.jpg", p.ImageURL)
		assert.Equal(t, 4.5, p.Rating)
		assert.Equal(t, 12, p.ReviewCount)
		assert.Equal(t, 2026, p.CreatedAt.Year())
		assert.True(t, p.HasDiscount())
	})

	t.Run("normalizes the list shape", func(t *testing.T) {
		payload := `{
			"id": 8,
			"name": "Ceramic Mug",
			"slug": "ceramic-mug",
			"price": "14.00",
			"in_stock": false,
			"category_slug": "kitchen",
			"category_name": "Kitchen",
			"image_url": "https://cdn.example.com/mug.jpg",
			"avg_rating": 3.8,
			"review_count": 5
		}`

		var p Product
		require.NoError(t, json.Unmarshal([]byte(payload), &p))

		assert.False(t, p.InStock)
		assert.Equal(t, "kitchen", p.CategorySlug)
		assert.Equal(t, "https://cdn.example.com/mug.jpg", p.ImageURL)
		assert.Equal(t, 3.8, p.Rating)
		assert.False(t, p.HasDiscount())
	})

	t.Run("derives stock from quantity when no flag is present", func(t *testing.T) {
		var p Product
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"stock_quantity":3}`), &p))
		assert.True(t, p.InStock)

		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"stock_quantity":0}`), &p))
		assert.False(t, p.InStock)
	})

	t.Run("drops an unparseable timestamp without failing", func(t *testing.T) {
		var p Product
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"created_at":"yesterday"}`), &p))
		assert.True(t, p.CreatedAt.IsZero())
	})

	t.Run("accepts timestamps without a zone", func(t *testing.T) {
		var p Product
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"created_at":"2026-03-01T10:00:00"}`), &p))
		assert.Equal(t, 2026, p.CreatedAt.Year())
	})

	t.Run("round-trips its own canonical encoding", func(t *testing.T) {
		orig := Product{
			ID:           3,
			Name:         "Field Notebook",
			Slug:         "field-notebook",
			Price:        "9.50",
			InStock:      true,
			CategorySlug: "stationery",
			CategoryName: "Stationery",
			Rating:       4.2,
			ReviewCount:  9,
		}
		data, err := json.Marshal(orig)
		require.NoError(t, err)

		var got Product
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, orig, got)
	})
}

func TestFilterSpecValues(t *testing.T) {
	t.Run("empty filter emits nothing", func(t *testing.T) {
		assert.Empty(t, FilterSpec{}.Values())
	})

	t.Run("emits only set constraints", func(t *testing.T) {
		v := FilterSpec{
			Category:    "lighting",
			MinPrice:    "10.00",
			InStockOnly: true,
			Search:      "lamp",
			Ordering:    "-price",
		}.Values()

		assert.Equal(t, "lighting", v.Get("category"))
		assert.Equal(t, "10.00", v.Get("min_price"))
		assert.Equal(t, "lamp", v.Get("search"))
		assert.Equal(t, "-price", v.Get("ordering"))
		assert.False(t, v.Has("max_price"))
	})
}
