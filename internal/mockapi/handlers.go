// internal/mockapi/handlers.go
package mockapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront/internal/pkg/money"
)

// Wire shapes. The product payload deliberately uses the upstream API's
// field spellings (is_in_stock, average_rating, nested category) so the
// client's normalization path sees realistic data.

func (s *Server) productJSON(p *mockProduct) gin.H {
	payload := gin.H{
		"id":             p.ID,
		"name":           p.Name,
		"slug":           p.Slug,
		"description":    p.Description,
		"price":          p.PriceCents.String(),
		"stock_quantity": p.StockQuantity,
		"is_in_stock":    p.StockQuantity > 0,
		"average_rating": p.averageRating(),
		"review_count":   p.ReviewCount,
		"image_url":      p.ImageURL,
		"created_at":     p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.CompareAtCents > 0 {
		payload["compare_at_price"] = p.CompareAtCents.String()
	} else {
		payload["compare_at_price"] = nil
	}
	if p.Category != nil {
		payload["category"] = gin.H{
			"id":          p.Category.ID,
			"name":        p.Category.Name,
			"slug":        p.Category.Slug,
			"description": p.Category.Description,
		}
	}
	return payload
}

func orderJSON(o *mockOrder) gin.H {
	items := make([]gin.H, len(o.Items))
	for i, item := range o.Items {
		items[i] = gin.H{
			"id":            item.ID,
			"product_name":  item.ProductName,
			"product_price": item.PriceCents.String(),
			"quantity":      item.Quantity,
			"subtotal":      item.SubtotalCents.String(),
		}
	}
	return gin.H{
		"id":           o.ID,
		"order_number": o.OrderNumber,
		"status":       o.Status,
		"total_amount": o.TotalCents.String(),
		"items":        items,
		"created_at":   o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func reviewJSON(r *mockReview) gin.H {
	return gin.H{
		"id":         r.ID,
		"user":       r.User,
		"rating":     r.Rating,
		"comment":    r.Comment,
		"created_at": r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func userJSON(u *mockUser) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"is_seller":  u.IsSeller,
	}
}

// listProducts handles GET /products/
func (s *Server) listProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "12"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 12
	}

	q := productQuery{
		Category: c.Query("category"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
		InStock:  c.Query("in_stock") == "true",
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     page,
		PageSize: pageSize,
	}

	products, total := s.store.queryProducts(q)
	results := make([]gin.H, len(products))
	for i, p := range products {
		results[i] = s.productJSON(p)
	}

	c.JSON(http.StatusOK, gin.H{"count": total, "results": results})
}

// getProduct handles GET /products/:slug/
func (s *Server) getProduct(c *gin.Context) {
	p := s.store.productBySlug(c.Param("slug"))
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found."})
		return
	}
	c.JSON(http.StatusOK, s.productJSON(p))
}

// listCategories handles GET /categories/
func (s *Server) listCategories(c *gin.Context) {
	categories := s.store.allCategories()
	out := make([]gin.H, len(categories))
	for i, cat := range categories {
		out[i] = gin.H{
			"id":          cat.ID,
			"name":        cat.Name,
			"slug":        cat.Slug,
			"description": cat.Description,
			"parent":      nil,
		}
	}
	c.JSON(http.StatusOK, out)
}

// listReviews handles GET /products/:slug/reviews/
func (s *Server) listReviews(c *gin.Context) {
	if s.store.productBySlug(c.Param("slug")) == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found."})
		return
	}

	reviews := s.store.reviewsForSlug(c.Param("slug"))
	out := make([]gin.H, len(reviews))
	for i, r := range reviews {
		out[i] = reviewJSON(r)
	}
	c.JSON(http.StatusOK, out)
}

// createReview handles POST /products/:slug/reviews/
func (s *Server) createReview(c *gin.Context) {
	p := s.store.productBySlug(c.Param("slug"))
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found."})
		return
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Rating must be between 1 and 5."})
		return
	}

	username := s.store.usernameByID(currentUserID(c))

	review := &mockReview{
		User:      username,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	s.store.addReview(p.Slug, review, p)

	c.JSON(http.StatusCreated, reviewJSON(review))
}

// register handles POST /auth/register/
func (s *Server) register(c *gin.Context) {
	var req struct {
		Email           string `json:"email"`
		Username        string `json:"username"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"password_confirm"`
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}

	if req.Email == "" || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email and username are required."})
		return
	}
	if req.Password != req.PasswordConfirm {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Passwords do not match."})
		return
	}
	if s.store.userByEmail(req.Email) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "A user with that email already exists."})
		return
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user := &mockUser{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	s.store.addUser(user)

	s.issueTokens(c, user, http.StatusCreated)
}

// login handles POST /auth/login/
func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
		return
	}

	user := s.store.userByEmail(req.Email)
	if user == nil || s.passwords.VerifyPassword(req.Password, user.PasswordHash) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid email or password."})
		return
	}

	s.issueTokens(c, user, http.StatusOK)
}

func (s *Server) issueTokens(c *gin.Context, user *mockUser, status int) {
	access, err := s.jwt.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to issue tokens."})
		return
	}
	refresh, err := s.jwt.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to issue tokens."})
		return
	}

	c.JSON(status, gin.H{
		"access":  access,
		"refresh": refresh,
		"user":    userJSON(user),
	})
}

// placeOrder handles POST /orders/place/
func (s *Server) placeOrder(c *gin.Context) {
	var req struct {
		Items []struct {
			Product  int64 `json:"product"`
			Quantity int   `json:"quantity"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Order must contain at least one item."})
		return
	}

	o := &mockOrder{
		OrderNumber: "ORD-" + strings.ToUpper(uuid.NewString()[:8]),
		UserID:      currentUserID(c),
		Status:      "pending",
		CreatedAt:   time.Now().UTC(),
	}
	for _, item := range req.Items {
		p := s.store.productByID(item.Product)
		if p == nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Unknown product in order."})
			return
		}
		if item.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Quantity must be at least 1."})
			return
		}
		subtotal := p.PriceCents * money.Cents(item.Quantity)
		o.Items = append(o.Items, mockOrderItem{
			ProductName:   p.Name,
			PriceCents:    p.PriceCents,
			Quantity:      item.Quantity,
			SubtotalCents: subtotal,
		})
		o.TotalCents += subtotal
	}
	s.store.addOrder(o)

	c.JSON(http.StatusCreated, orderJSON(o))
}

// listOrders handles GET /orders/
func (s *Server) listOrders(c *gin.Context) {
	orders := s.store.ordersForUser(currentUserID(c))
	results := make([]gin.H, len(orders))
	for i, o := range orders {
		results[i] = orderJSON(o)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "results": results})
}

// cancelOrder handles POST /orders/:id/cancel/
func (s *Server) cancelOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid order id."})
		return
	}

	o := s.store.orderByID(id, currentUserID(c))
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found."})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	switch o.Status {
	case "pending", "confirmed", "processing":
		o.Status = "cancelled"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "This order can no longer be cancelled."})
		return
	}

	c.JSON(http.StatusOK, orderJSON(o))
}
