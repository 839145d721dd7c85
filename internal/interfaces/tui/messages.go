// internal/interfaces/tui/messages.go
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/your-org/storefront/internal/domain/auth"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/api"
	"github.com/your-org/storefront/internal/state"
)

// All remote I/O happens inside tea commands; the results come back as
// these messages and are folded into state on the update loop, so every
// state transition stays on a single goroutine.

type pageFetchedMsg struct {
	fetch  catalog.Fetch
	result catalog.PageResult
	err    error
}

type categoriesMsg struct {
	categories []catalog.Category
	err        error
}

type productDetailMsg struct {
	product catalog.Product
	reviews []catalog.Review
	err     error
}

type reviewPostedMsg struct {
	slug string
	err  error
}

type authResultMsg struct {
	creds auth.Credentials
	err   error
}

type ordersMsg struct {
	orders []order.Order
	err    error
}

type orderPlacedMsg struct {
	placed order.Order
	err    error
}

type orderCancelledMsg struct {
	cancelled order.Order
	err       error
}

func fetchPageCmd(client *api.Client, fetch catalog.Fetch, pageSize int) tea.Cmd {
	return func() tea.Msg {
		result, err := client.ListProducts(context.Background(), fetch.Filter, fetch.Page, pageSize)
		return pageFetchedMsg{fetch: fetch, result: result, err: err}
	}
}

func fetchCategoriesCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		categories, err := client.ListCategories(context.Background())
		return categoriesMsg{categories: categories, err: err}
	}
}

func fetchDetailCmd(client *api.Client, slug string) tea.Cmd {
	return func() tea.Msg {
		product, err := client.GetProduct(context.Background(), slug)
		if err != nil {
			return productDetailMsg{err: err}
		}
		// Review fetch failures degrade to an empty list; the product
		// page is still worth showing.
		reviews, _ := client.ListReviews(context.Background(), slug)
		return productDetailMsg{product: product, reviews: reviews}
	}
}

func postReviewCmd(client *api.Client, slug string, rating int, comment, token string) tea.Cmd {
	return func() tea.Msg {
		_, err := client.CreateReview(context.Background(), slug, rating, comment, token)
		return reviewPostedMsg{slug: slug, err: err}
	}
}

func loginCmd(client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		creds, err := client.Login(context.Background(), email, password)
		return authResultMsg{creds: creds, err: err}
	}
}

func registerCmd(client *api.Client, req api.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		creds, err := client.Register(context.Background(), req)
		return authResultMsg{creds: creds, err: err}
	}
}

func fetchOrdersCmd(client *api.Client, token string) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.ListOrders(context.Background(), token)
		return ordersMsg{orders: orders, err: err}
	}
}

func placeOrderCmd(client *api.Client, items []api.OrderItemRequest, token string) tea.Cmd {
	return func() tea.Msg {
		placed, err := client.PlaceOrder(context.Background(), items, token)
		return orderPlacedMsg{placed: placed, err: err}
	}
}

func cancelOrderCmd(client *api.Client, id int64, token string) tea.Cmd {
	return func() tea.Msg {
		cancelled, err := client.CancelOrder(context.Background(), id, token)
		return orderCancelledMsg{cancelled: cancelled, err: err}
	}
}

// navigateMsg asks the root model to switch pages. Detail navigation
// carries the product slug being opened.
type navigateMsg struct {
	page pageID
	slug string
}

// statusMsg updates the transient status line at the bottom of the app.
type statusMsg struct {
	text  string
	isErr bool
}

func navigate(page pageID, slug string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{page: page, slug: slug} }
}

func reportStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func reportError(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: err.Error(), isErr: true} }
}

func addToCart(container *state.Container, p catalog.Product, quantity int) tea.Cmd {
	return func() tea.Msg {
		if err := container.AddToCart(context.Background(), p, quantity); err != nil {
			return statusMsg{text: "cart not saved: " + err.Error(), isErr: true}
		}
		return statusMsg{text: fmt.Sprintf("added %q to cart", p.Name)}
	}
}
