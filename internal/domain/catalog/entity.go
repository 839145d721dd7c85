// internal/domain/catalog/entity.go
package catalog

import (
	"encoding/json"
	"net/url"
	"time"
)

// Product is the canonical product snapshot used everywhere inside the
// client. The remote API is shape-tolerant (the same concept can arrive
// under several key names); UnmarshalJSON collapses those variants once,
// at ingestion, so nothing downstream ever branches on alternate fields.
type Product struct {
	ID             int64     `json:"id"`
	SKU            string    `json:"sku,omitempty"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	Price          string    `json:"price"` // Decimal string, e.g. "24.99"
	CompareAtPrice string    `json:"compare_at_price,omitempty"`
	StockQuantity  int       `json:"stock_quantity"`
	InStock        bool      `json:"in_stock"`
	CategorySlug   string    `json:"category_slug,omitempty"`
	CategoryName   string    `json:"category_name,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	Rating         float64   `json:"rating"`
	ReviewCount    int       `json:"review_count"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// productPayload mirrors every upstream spelling of the product shape,
// including our own canonical one so persisted snapshots round-trip.
type productPayload struct {
	ID             int64           `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description"`
	Price          string          `json:"price"`
	CompareAtPrice *string         `json:"compare_at_price"`
	StockQuantity  *int            `json:"stock_quantity"`
	Category       *Category       `json:"category"`
	CategorySlug   string          `json:"category_slug"`
	CategoryName   string          `json:"category_name"`
	Images         []productImage  `json:"images"`
	ImageURL       *string         `json:"image_url"`
	AverageRating  *float64        `json:"average_rating"`
	AvgRating      *float64        `json:"avg_rating"`
	Rating         *float64        `json:"rating"`
	ReviewCount    int             `json:"review_count"`
	IsInStock      *bool           `json:"is_in_stock"`
	InStock        *bool           `json:"in_stock"`
	CreatedAt      json.RawMessage `json:"created_at"`
}

type productImage struct {
	Image   string `json:"image"`
	URL     string `json:"url"`
	AltText string `json:"alt_text"`
}

// UnmarshalJSON normalizes a remote (or persisted) product payload into
// the canonical shape.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w productPayload
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = Product{
		ID:          w.ID,
		SKU:         w.SKU,
		Name:        w.Name,
		Slug:        w.Slug,
		Description: w.Description,
		Price:       w.Price,
		ReviewCount: w.ReviewCount,
	}

	if w.CompareAtPrice != nil {
		p.CompareAtPrice = *w.CompareAtPrice
	}
	if w.StockQuantity != nil {
		p.StockQuantity = *w.StockQuantity
	}

	switch {
	case w.Category != nil:
		p.CategorySlug = w.Category.Slug
		p.CategoryName = w.Category.Name
	default:
		p.CategorySlug = w.CategorySlug
		p.CategoryName = w.CategoryName
	}

	switch {
	case w.ImageURL != nil && *w.ImageURL != "":
		p.ImageURL = *w.ImageURL
	case len(w.Images) > 0 && w.Images[0].Image != "":
		p.ImageURL = w.Images[0].Image
	case len(w.Images) > 0:
		p.ImageURL = w.Images[0].URL
	}

	switch {
	case w.AverageRating != nil:
		p.Rating = *w.AverageRating
	case w.AvgRating != nil:
		p.Rating = *w.AvgRating
	case w.Rating != nil:
		p.Rating = *w.Rating
	}

	switch {
	case w.IsInStock != nil:
		p.InStock = *w.IsInStock
	case w.InStock != nil:
		p.InStock = *w.InStock
	default:
		p.InStock = p.StockQuantity > 0
	}

	// Timestamps arrive in a few RFC3339 flavors; a value we cannot parse
	// is dropped rather than failing the whole product.
	if len(w.CreatedAt) > 0 {
		var raw string
		if err := json.Unmarshal(w.CreatedAt, &raw); err == nil {
			if t, err := parseTimestamp(raw); err == nil {
				p.CreatedAt = t
			}
		}
	}

	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// HasDiscount reports whether the compare-at price marks the product down.
func (p Product) HasDiscount() bool {
	return p.CompareAtPrice != "" && p.CompareAtPrice != p.Price
}

// Category represents a product category.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Parent      *int64 `json:"parent,omitempty"`
}

// Review represents a customer review on a product.
type Review struct {
	ID        int64     `json:"id"`
	User      string    `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// PageResult is one page of products plus the total count across all
// pages for the active filter.
type PageResult struct {
	Products []Product `json:"results"`
	Total    int       `json:"count"`
}

// FilterSpec captures the catalog constraints driving a query. The zero
// value of every field means "no constraint": absent fields are never
// forwarded to the remote API.
type FilterSpec struct {
	Category    string
	MinPrice    string
	MaxPrice    string
	InStockOnly bool
	Search      string
	Ordering    string
	Page        int
}

// Values renders the non-empty constraints as query parameters. Page and
// page size are owned by the query engine and added by the API client.
func (f FilterSpec) Values() url.Values {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.MinPrice != "" {
		v.Set("min_price", f.MinPrice)
	}
	if f.MaxPrice != "" {
		v.Set("max_price", f.MaxPrice)
	}
	if f.InStockOnly {
		v.Set("in_stock", "true")
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Ordering != "" {
		v.Set("ordering", f.Ordering)
	}
	return v
}
