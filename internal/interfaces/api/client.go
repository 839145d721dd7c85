// internal/interfaces/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/auth"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
)

// Error is a non-2xx response from the commerce API, carrying the
// human-readable message the server put in its `detail` or `message`
// field. Callers surface the message and move on; nothing here is
// retried automatically.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Client is a typed HTTP client for the remote commerce API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient creates an API client from configuration.
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.API.Timeout},
		log:        log,
	}
}

// do performs one API round-trip: JSON body out, JSON body in, bearer
// token when given, `detail`/`message` extraction on failure, and a 204
// treated as an empty success.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, token string, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("request failed (%d)", resp.StatusCode),
	}

	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		switch {
		case payload.Detail != "":
			apiErr.Message = payload.Detail
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Err != "":
			apiErr.Message = payload.Err
		}
	}

	c.log.WithFields(logrus.Fields{
		"status": resp.StatusCode,
		"url":    resp.Request.URL.String(),
	}).Debug("API request failed")

	return apiErr
}

// ListProducts fetches one catalog page for the filter. Only non-empty
// filter fields are forwarded; page and page size always are.
func (c *Client) ListProducts(ctx context.Context, filter catalog.FilterSpec, page, pageSize int) (catalog.PageResult, error) {
	params := filter.Values()
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	var result catalog.PageResult
	if err := c.do(ctx, http.MethodGet, "/products/?"+params.Encode(), nil, "", &result); err != nil {
		return catalog.PageResult{}, err
	}
	return result, nil
}

// GetProduct fetches one product by slug.
func (c *Client) GetProduct(ctx context.Context, slug string) (catalog.Product, error) {
	var p catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+slug+"/", nil, "", &p); err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

// ListCategories fetches all categories. Some deployments wrap the list
// in a paginated envelope; both shapes are accepted.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, "", &raw); err != nil {
		return nil, err
	}

	var categories []catalog.Category
	if err := json.Unmarshal(raw, &categories); err == nil {
		return categories, nil
	}
	var envelope struct {
		Results []catalog.Category `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return envelope.Results, nil
}

// ListReviews fetches the reviews for a product.
func (c *Client) ListReviews(ctx context.Context, slug string) ([]catalog.Review, error) {
	var reviews []catalog.Review
	if err := c.do(ctx, http.MethodGet, "/products/"+slug+"/reviews/", nil, "", &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview posts a review on a product. Requires authentication.
func (c *Client) CreateReview(ctx context.Context, slug string, rating int, comment, token string) (catalog.Review, error) {
	body := map[string]interface{}{"rating": rating, "comment": comment}
	var review catalog.Review
	if err := c.do(ctx, http.MethodPost, "/products/"+slug+"/reviews/", body, token, &review); err != nil {
		return catalog.Review{}, err
	}
	return review, nil
}

// authResponse tolerates both token layouts the API is known to return:
// top-level access/refresh or a nested tokens object.
type authResponse struct {
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	User    auth.User `json:"user"`
	Tokens  *struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	} `json:"tokens"`
}

func (r authResponse) credentials() auth.Credentials {
	creds := auth.Credentials{User: r.User, Access: r.Access, Refresh: r.Refresh}
	if r.Tokens != nil {
		if creds.Access == "" {
			creds.Access = r.Tokens.Access
		}
		if creds.Refresh == "" {
			creds.Refresh = r.Tokens.Refresh
		}
	}
	return creds
}

// Login exchanges email and password for a credential triple.
func (c *Client) Login(ctx context.Context, email, password string) (auth.Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login/", body, "", &resp); err != nil {
		return auth.Credentials{}, err
	}
	return resp.credentials(), nil
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// Register creates an account and returns its credential triple.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (auth.Credentials, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register/", req, "", &resp); err != nil {
		return auth.Credentials{}, err
	}
	return resp.credentials(), nil
}

// OrderItemRequest is one cart line in an order placement.
type OrderItemRequest struct {
	Product  int64 `json:"product"`
	Quantity int   `json:"quantity"`
}

// PlaceOrder submits the cart as an order. Requires authentication.
func (c *Client) PlaceOrder(ctx context.Context, items []OrderItemRequest, token string) (order.Order, error) {
	body := map[string]interface{}{"items": items}
	var o order.Order
	if err := c.do(ctx, http.MethodPost, "/orders/place/", body, token, &o); err != nil {
		return order.Order{}, err
	}
	return o, nil
}

// ListOrders fetches the caller's order history. Requires authentication.
func (c *Client) ListOrders(ctx context.Context, token string) ([]order.Order, error) {
	var envelope struct {
		Count   int           `json:"count"`
		Results []order.Order `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders/", nil, token, &envelope); err != nil {
		return nil, err
	}
	return envelope.Results, nil
}

// CancelOrder cancels an order by id. Requires authentication.
func (c *Client) CancelOrder(ctx context.Context, id int64, token string) (order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodPost, "/orders/"+strconv.FormatInt(id, 10)+"/cancel/", nil, token, &o); err != nil {
		return order.Order{}, err
	}
	return o, nil
}
