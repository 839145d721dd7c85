// internal/mockapi/seed.go
package mockapi

import (
	"time"

	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/money"
)

// DemoEmail and DemoPassword identify the account seeded for local
// development, so the client can be tried without registering.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "demo-password"
)

type seedProduct struct {
	name      string
	slug      string
	desc      string
	price     string
	compareAt string
	stock     int
	category  string
}

// seed loads the demo catalog and user. Prices are decimal strings here
// for readability and parsed into cents once.
func (s *memoryStore) seed(passwords *auth.PasswordManager) {
	categories := []*mockCategory{
		{ID: 1, Name: "Books", Slug: "books", Description: "Paper and ink"},
		{ID: 2, Name: "Electronics", Slug: "electronics", Description: "Gadgets and gear"},
		{ID: 3, Name: "Clothing", Slug: "clothing", Description: "Things to wear"},
		{ID: 4, Name: "Home & Kitchen", Slug: "home-kitchen", Description: "For the house"},
	}

	products := []seedProduct{
		{"The Go Programming Language", "the-go-programming-language", "The definitive guide to writing Go.", "39.99", "49.99", 14, "books"},
		{"Distributed Systems Field Guide", "distributed-systems-field-guide", "Consensus, clocks and failure, in practice.", "44.50", "", 9, "books"},
		{"A Pattern Language", "a-pattern-language", "Towns, buildings, construction.", "58.00", "", 3, "books"},
		{"The Mythical Man-Month", "the-mythical-man-month", "Essays on software engineering.", "29.95", "34.95", 22, "books"},
		{"Database Internals", "database-internals", "A deep dive into how distributed data systems work.", "52.99", "", 0, "books"},
		{"Thinking in Systems", "thinking-in-systems", "A primer on systems thinking.", "19.95", "", 31, "books"},
		{"Structure and Interpretation", "structure-and-interpretation", "Classic computer science text.", "42.00", "55.00", 7, "books"},
		{"Mechanical Keyboard", "mechanical-keyboard", "Tenkeyless board with hot-swappable switches.", "129.00", "159.00", 12, "electronics"},
		{"USB-C Dock", "usb-c-dock", "Dual display dock with 100W passthrough.", "89.99", "", 25, "electronics"},
		{"Noise-Cancelling Headphones", "noise-cancelling-headphones", "Over-ear, 30 hour battery.", "249.00", "299.00", 6, "electronics"},
		{"4K Webcam", "4k-webcam", "Sharp calls, decent low light.", "119.50", "", 0, "electronics"},
		{"Portable SSD 2TB", "portable-ssd-2tb", "Pocketable storage, 1050 MB/s.", "179.99", "219.99", 18, "electronics"},
		{"Smart Desk Lamp", "smart-desk-lamp", "Color temperature follows the sun.", "64.00", "", 11, "electronics"},
		{"E-Reader", "e-reader", "Weeks of battery, warm backlight.", "139.99", "", 8, "electronics"},
		{"Ergonomic Mouse", "ergonomic-mouse", "Vertical grip, silent clicks.", "49.99", "59.99", 27, "electronics"},
		{"Wool Overshirt", "wool-overshirt", "Heavy twill, works as a light jacket.", "98.00", "", 5, "clothing"},
		{"Selvedge Denim", "selvedge-denim", "14.5oz, raw, made to fade.", "148.00", "185.00", 9, "clothing"},
		{"Merino Beanie", "merino-beanie", "One size, three colors.", "28.00", "", 40, "clothing"},
		{"Canvas Work Apron", "canvas-work-apron", "Waxed canvas, leather straps.", "72.50", "", 0, "clothing"},
		{"Trail Socks 3-Pack", "trail-socks-3-pack", "Cushioned heel, no blisters.", "24.00", "30.00", 55, "clothing"},
		{"Linen Shirt", "linen-shirt", "Garment dyed, relaxed fit.", "85.00", "", 13, "clothing"},
		{"Cast Iron Skillet", "cast-iron-skillet", "Pre-seasoned, 10 inch.", "34.95", "44.95", 20, "home-kitchen"},
		{"Pour-Over Kettle", "pour-over-kettle", "Gooseneck, thermometer in the lid.", "56.00", "", 16, "home-kitchen"},
		{"Chef's Knife", "chefs-knife", "210mm gyuto, carbon steel.", "168.00", "199.00", 4, "home-kitchen"},
		{"Ceramic Mug Set", "ceramic-mug-set", "Four stoneware mugs, matte glaze.", "48.00", "", 33, "home-kitchen"},
		{"French Press", "french-press", "Double-wall steel, 1 liter.", "42.50", "52.50", 0, "home-kitchen"},
	}

	bySlug := make(map[string]*mockCategory, len(categories))
	for _, c := range categories {
		bySlug[c.Slug] = c
	}
	s.categories = categories

	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i, sp := range products {
		p := &mockProduct{
			ID:            int64(i + 1),
			Name:          sp.name,
			Slug:          sp.slug,
			Description:   sp.desc,
			PriceCents:    money.MustParse(sp.price),
			StockQuantity: sp.stock,
			Category:      bySlug[sp.category],
			ImageURL:      "https://cdn.example.com/products/" + sp.slug + ".jpg",
			CreatedAt:     base.Add(time.Duration(i) * 24 * time.Hour),
		}
		if sp.compareAt != "" {
			p.CompareAtCents = money.MustParse(sp.compareAt)
		}
		s.products = append(s.products, p)
	}

	hash, err := passwords.HashPassword(DemoPassword)
	if err != nil {
		// Seeding is infallible by construction; a bad demo password is
		// a programming error.
		panic(err)
	}
	s.addUser(&mockUser{
		Email:        DemoEmail,
		Username:     "demo",
		PasswordHash: hash,
		FirstName:    "Demo",
		LastName:     "Shopper",
	})
}
