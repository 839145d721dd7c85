// internal/mockapi/store.go
package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/your-org/storefront/internal/pkg/money"
)

// memoryStore holds the mock API's entire world: users, catalog, orders
// and reviews. Everything lives in memory and resets on restart; the
// mock exists so tests and local development need no real backend.
type memoryStore struct {
	mu sync.Mutex

	users      []*mockUser
	categories []*mockCategory
	products   []*mockProduct
	orders     []*mockOrder
	reviews    map[string][]*mockReview // keyed by product slug

	nextUserID   int64
	nextOrderID  int64
	nextReviewID int64
}

type mockUser struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	IsSeller     bool
}

type mockCategory struct {
	ID          int64
	Name        string
	Slug        string
	Description string
}

type mockProduct struct {
	ID             int64
	Name           string
	Slug           string
	Description    string
	PriceCents     money.Cents
	CompareAtCents money.Cents // 0 means no compare-at price
	StockQuantity  int
	Category       *mockCategory
	RatingSum      int
	ReviewCount    int
	ImageURL       string
	CreatedAt      time.Time
}

type mockOrder struct {
	ID          int64
	OrderNumber string
	UserID      int64
	Status      string
	TotalCents  money.Cents
	Items       []mockOrderItem
	CreatedAt   time.Time
}

type mockOrderItem struct {
	ID            int64
	ProductName   string
	PriceCents    money.Cents
	Quantity      int
	SubtotalCents money.Cents
}

type mockReview struct {
	ID        int64
	User      string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		reviews:      make(map[string][]*mockReview),
		nextUserID:   1,
		nextOrderID:  1,
		nextReviewID: 1,
	}
}

func (m *mockProduct) averageRating() float64 {
	if m.ReviewCount == 0 {
		return 0
	}
	return float64(m.RatingSum) / float64(m.ReviewCount)
}

// productQuery mirrors the list endpoint's query parameters.
type productQuery struct {
	Category string
	MinPrice string
	MaxPrice string
	InStock  bool
	Search   string
	Ordering string
	Page     int
	PageSize int
}

// queryProducts applies filter, ordering and pagination, returning the
// page and the pre-pagination total.
func (s *memoryStore) queryProducts(q productQuery) ([]*mockProduct, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*mockProduct, 0, len(s.products))
	for _, p := range s.products {
		if q.Category != "" && (p.Category == nil || p.Category.Slug != q.Category) {
			continue
		}
		if q.MinPrice != "" {
			if min, err := money.Parse(q.MinPrice); err == nil && p.PriceCents < min {
				continue
			}
		}
		if q.MaxPrice != "" {
			if max, err := money.Parse(q.MaxPrice); err == nil && p.PriceCents > max {
				continue
			}
		}
		if q.InStock && p.StockQuantity <= 0 {
			continue
		}
		if q.Search != "" {
			needle := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		matched = append(matched, p)
	}

	sortProducts(matched, q.Ordering)
	total := len(matched)

	start := (q.Page - 1) * q.PageSize
	if start >= total {
		return nil, total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total
}

func sortProducts(products []*mockProduct, ordering string) {
	desc := strings.HasPrefix(ordering, "-")
	key := strings.TrimPrefix(ordering, "-")

	var less func(a, b *mockProduct) bool
	switch key {
	case "price":
		less = func(a, b *mockProduct) bool { return a.PriceCents < b.PriceCents }
	case "name":
		less = func(a, b *mockProduct) bool { return a.Name < b.Name }
	case "rating":
		less = func(a, b *mockProduct) bool { return a.averageRating() < b.averageRating() }
	case "created_at":
		less = func(a, b *mockProduct) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return // keep seed order
	}

	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func (s *memoryStore) productBySlug(slug string) *mockProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Slug == slug {
			return p
		}
	}
	return nil
}

func (s *memoryStore) productByID(id int64) *mockProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *memoryStore) userByEmail(email string) *mockUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func (s *memoryStore) usernameByID(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.Username
		}
	}
	return "anonymous"
}

func (s *memoryStore) allCategories() []*mockCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*mockCategory, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *memoryStore) addUser(u *mockUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextUserID
	s.nextUserID++
	s.users = append(s.users, u)
}

func (s *memoryStore) addOrder(o *mockOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextOrderID
	s.nextOrderID++
	for i := range o.Items {
		o.Items[i].ID = int64(i + 1)
	}
	s.orders = append(s.orders, o)
}

func (s *memoryStore) ordersForUser(userID int64) []*mockOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*mockOrder
	// Newest first, like the real API.
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			out = append(out, s.orders[i])
		}
	}
	return out
}

func (s *memoryStore) orderByID(id, userID int64) *mockOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id && o.UserID == userID {
			return o
		}
	}
	return nil
}

func (s *memoryStore) addReview(slug string, r *mockReview, p *mockProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextReviewID
	s.nextReviewID++
	s.reviews[slug] = append(s.reviews[slug], r)
	p.RatingSum += r.Rating
	p.ReviewCount++
}

func (s *memoryStore) reviewsForSlug(slug string) []*mockReview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviews[slug]
}
