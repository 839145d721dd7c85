// internal/interfaces/tui/cart_page.go
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/interfaces/api"
	"github.com/your-org/storefront/internal/state"
)

// CartPageModel renders the cart ledger and drives quantity edits,
// removals and checkout.
type CartPageModel struct {
	client    *api.Client
	container *state.Container
	styles    Styles

	width, height int
	cursor        int
	placing       bool
}

// NewCartPageModel creates the cart page.
func NewCartPageModel(client *api.Client, container *state.Container, styles Styles) CartPageModel {
	return CartPageModel{client: client, container: container, styles: styles}
}

// SetSize updates the page dimensions.
func (m *CartPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles messages for the cart page.
func (m CartPageModel) Update(msg tea.Msg) (CartPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case orderPlacedMsg:
		m.placing = false
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		if err := m.container.ClearCart(context.Background()); err != nil {
			return m, reportError(err)
		}
		m.cursor = 0
		return m, tea.Batch(
			reportStatus(fmt.Sprintf("order %s placed", msg.placed.OrderNumber)),
			navigate(pageOrders, ""),
		)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m CartPageModel) updateKeys(msg tea.KeyMsg) (CartPageModel, tea.Cmd) {
	items := m.container.Cart().Items()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil

	case "+", "=":
		if m.cursor < len(items) {
			it := items[m.cursor]
			if err := m.container.UpdateQuantity(context.Background(), it.Product.ID, it.Quantity+1); err != nil {
				return m, reportError(err)
			}
		}
		return m, nil

	case "-":
		if m.cursor < len(items) {
			it := items[m.cursor]
			if it.Quantity <= 1 {
				return m, nil
			}
			if err := m.container.UpdateQuantity(context.Background(), it.Product.ID, it.Quantity-1); err != nil {
				return m, reportError(err)
			}
		}
		return m, nil

	case "x", "delete":
		if m.cursor < len(items) {
			if err := m.container.RemoveFromCart(context.Background(), items[m.cursor].Product.ID); err != nil {
				return m, reportError(err)
			}
			if m.cursor > 0 {
				m.cursor--
			}
		}
		return m, nil

	case "X":
		if len(items) == 0 {
			return m, nil
		}
		if err := m.container.ClearCart(context.Background()); err != nil {
			return m, reportError(err)
		}
		m.cursor = 0
		return m, reportStatus("cart cleared")

	case "enter":
		return m.checkout(items)

	case "esc", "backspace":
		return m, navigate(pageBrowse, "")
	}

	return m, nil
}

func (m CartPageModel) checkout(items []cart.Item) (CartPageModel, tea.Cmd) {
	if m.placing || len(items) == 0 {
		return m, nil
	}
	if !m.container.Auth().Authenticated() {
		return m, tea.Batch(
			reportStatus("sign in to check out"),
			navigate(pageAuth, ""),
		)
	}

	req := make([]api.OrderItemRequest, 0, len(items))
	for _, it := range items {
		req = append(req, api.OrderItemRequest{Product: it.Product.ID, Quantity: it.Quantity})
	}
	m.placing = true
	return m, placeOrderCmd(m.client, req, m.container.Auth().AccessToken())
}

// View renders the page.
func (m CartPageModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Your cart"))
	b.WriteString("\n\n")

	items := m.container.Cart().Items()
	if len(items) == 0 {
		b.WriteString(m.styles.Muted.Render("Your cart is empty."))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Help.Render("esc back to browsing"))
		return b.String()
	}

	for i, it := range items {
		name := it.Product.Name
		if len(name) > 36 {
			name = name[:33] + "..."
		}
		line := fmt.Sprintf("%-36s  x%-3d  %s each  %s",
			name,
			it.Quantity,
			m.styles.Price.Render("$"+it.Product.Price),
			m.styles.Price.Render("$"+it.Subtotal().String()),
		)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	t := m.container.Cart().Totals()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  (%d items, %d units)\n",
		m.styles.Title.Render("Subtotal:"),
		m.styles.Price.Render("$"+t.Subtotal.String()),
		t.ItemCount,
		t.TotalQuantity,
	))

	if m.placing {
		b.WriteString(m.styles.Muted.Render("placing order..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("+/- quantity · x remove · X clear · enter checkout · esc back"))
	return b.String()
}
