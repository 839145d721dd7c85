// internal/interfaces/tui/orders_page.go
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/api"
	"github.com/your-org/storefront/internal/state"
)

// OrdersPageModel lists the signed-in user's orders, newest first, and
// cancels the ones that are still cancellable.
type OrdersPageModel struct {
	client    *api.Client
	container *state.Container
	styles    Styles

	width, height int
	cursor        int
	orders        []order.Order
	loading       bool
	cancelling    bool
}

// NewOrdersPageModel creates the orders page.
func NewOrdersPageModel(client *api.Client, container *state.Container, styles Styles) OrdersPageModel {
	return OrdersPageModel{client: client, container: container, styles: styles}
}

// SetSize updates the page dimensions.
func (m *OrdersPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Refresh starts a reload of the order list.
func (m *OrdersPageModel) Refresh() tea.Cmd {
	if !m.container.Auth().Authenticated() {
		return nil
	}
	m.loading = true
	return fetchOrdersCmd(m.client, m.container.Auth().AccessToken())
}

// Update handles messages for the orders page.
func (m OrdersPageModel) Update(msg tea.Msg) (OrdersPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersMsg:
		m.loading = false
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		m.orders = msg.orders
		if m.cursor >= len(m.orders) {
			m.cursor = 0
		}
		return m, nil

	case orderCancelledMsg:
		m.cancelling = false
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		for i := range m.orders {
			if m.orders[i].ID == msg.cancelled.ID {
				m.orders[i] = msg.cancelled
			}
		}
		return m, reportStatus(fmt.Sprintf("order %s cancelled", msg.cancelled.OrderNumber))

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m OrdersPageModel) updateKeys(msg tea.KeyMsg) (OrdersPageModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.orders)-1 {
			m.cursor++
		}
		return m, nil

	case "r":
		return m, m.Refresh()

	case "x":
		if m.cancelling || m.cursor >= len(m.orders) {
			return m, nil
		}
		o := m.orders[m.cursor]
		if !o.CanBeCancelled() {
			return m, reportStatus(fmt.Sprintf("a %s order cannot be cancelled", o.Status))
		}
		m.cancelling = true
		return m, cancelOrderCmd(m.client, o.ID, m.container.Auth().AccessToken())

	case "esc", "backspace":
		return m, navigate(pageBrowse, "")
	}

	return m, nil
}

// View renders the page.
func (m OrdersPageModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Your orders"))
	b.WriteString("\n\n")

	switch {
	case !m.container.Auth().Authenticated():
		b.WriteString(m.styles.Muted.Render("Sign in to see your orders."))
		b.WriteString("\n")
	case m.loading:
		b.WriteString(m.styles.Muted.Render("loading orders..."))
		b.WriteString("\n")
	case len(m.orders) == 0:
		b.WriteString(m.styles.Muted.Render("No orders yet."))
		b.WriteString("\n")
	default:
		for i, o := range m.orders {
			b.WriteString(m.renderOrder(o, i == m.cursor))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("↑/↓ move · x cancel · r refresh · esc back"))
	return b.String()
}

func (m OrdersPageModel) renderOrder(o order.Order, selected bool) string {
	status := string(o.Status)
	switch o.Status {
	case order.StatusCancelled:
		status = m.styles.OutBadge.Render(status)
	case order.StatusDelivered:
		status = m.styles.Badge.Render(status)
	default:
		status = m.styles.Muted.Render(status)
	}

	line := fmt.Sprintf("%-14s  %s  %-10s  %s",
		o.OrderNumber,
		o.CreatedAt.Format("Jan 2, 2006"),
		status,
		m.styles.Price.Render("$"+o.TotalAmount),
	)

	var b strings.Builder
	if selected {
		b.WriteString(m.styles.Selected.Render("> " + line))
	} else {
		b.WriteString("  " + line)
	}
	b.WriteString("\n")

	if selected {
		for _, it := range o.Items {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("      %dx %s", it.Quantity, it.ProductName)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
