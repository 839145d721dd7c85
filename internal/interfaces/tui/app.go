// internal/interfaces/tui/app.go
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/interfaces/api"
	"github.com/your-org/storefront/internal/state"
)

// pageID identifies one of the app's screens.
type pageID int

const (
	pageBrowse pageID = iota
	pageDetail
	pageCart
	pageAuth
	pageOrders
)

// App is the root model. It owns the shared state (cart, session,
// catalog query engine), routes messages to the active page, and draws
// the chrome around it.
type App struct {
	client    *api.Client
	container *state.Container
	engine    *catalog.Engine
	styles    Styles

	page   pageID
	browse BrowsePageModel
	detail DetailPageModel
	cart   CartPageModel
	auth   AuthPageModel
	orders OrdersPageModel

	width, height int
	status        string
	statusErr     bool
}

// NewApp assembles the TUI over an API client and a restored state
// container.
func NewApp(client *api.Client, container *state.Container, pageSize int) App {
	styles := DefaultStyles()
	engine := catalog.NewEngine(pageSize)

	return App{
		client:    client,
		container: container,
		engine:    engine,
		styles:    styles,
		browse:    NewBrowsePageModel(engine, client, container, styles),
		detail:    NewDetailPageModel(client, container, styles),
		cart:      NewCartPageModel(client, container, styles),
		auth:      NewAuthPageModel(client, container, styles),
		orders:    NewOrdersPageModel(client, container, styles),
	}
}

// Init kicks off the first catalog page and the category list.
func (m App) Init() tea.Cmd {
	fetch := m.engine.Reload()
	return tea.Batch(
		fetchPageCmd(m.client, fetch, m.engine.PageSize()),
		fetchCategoriesCmd(m.client),
		m.browse.spinner.Tick,
	)
}

// typing reports whether the active page is capturing free-form text,
// in which case global single-letter shortcuts must stay out of the way.
func (m App) typing() bool {
	switch m.page {
	case pageBrowse:
		return m.browse.searching
	case pageDetail:
		return m.detail.reviewing
	case pageAuth:
		return true
	}
	return false
}

// Update implements tea.Model.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inner := msg.Height - 3 // chrome: top bar and status line
		m.browse.SetSize(msg.Width, inner)
		m.detail.SetSize(msg.Width, inner)
		m.cart.SetSize(msg.Width, inner)
		m.auth.SetSize(msg.Width, inner)
		m.orders.SetSize(msg.Width, inner)
		return m, nil

	case navigateMsg:
		return m.navigateTo(msg)

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isErr
		return m, nil

	case categoriesMsg:
		if msg.err != nil {
			m.status = "categories unavailable: " + msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		m.browse.SetCategories(msg.categories)
		return m, nil

	case pageFetchedMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.browse, cmd = m.browse.Update(msg)
		return m, cmd

	case productDetailMsg, reviewPostedMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case orderPlacedMsg:
		var cmd tea.Cmd
		m.cart, cmd = m.cart.Update(msg)
		return m, cmd

	case authResultMsg:
		var cmd tea.Cmd
		m.auth, cmd = m.auth.Update(msg)
		return m, cmd

	case ordersMsg, orderCancelledMsg:
		var cmd tea.Cmd
		m.orders, cmd = m.orders.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	// Everything else (cursor blink and other component ticks) belongs
	// to the active page.
	return m.routeToActive(msg)
}

func (m App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case pageBrowse:
		m.browse, cmd = m.browse.Update(msg)
	case pageDetail:
		m.detail, cmd = m.detail.Update(msg)
	case pageCart:
		m.cart, cmd = m.cart.Update(msg)
	case pageAuth:
		m.auth, cmd = m.auth.Update(msg)
	case pageOrders:
		m.orders, cmd = m.orders.Update(msg)
	}
	return m, cmd
}

func (m App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if !m.typing() {
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "C":
			return m.navigateTo(navigateMsg{page: pageCart})

		case "O":
			return m.navigateTo(navigateMsg{page: pageOrders})

		case "U":
			if m.container.Auth().Authenticated() {
				if err := m.container.Logout(context.Background()); err != nil {
					m.status = err.Error()
					m.statusErr = true
					return m, nil
				}
				m.status = "signed out"
				m.statusErr = false
				return m, nil
			}
			return m.navigateTo(navigateMsg{page: pageAuth})
		}
	}

	// New keystroke, stale status.
	m.status = ""
	m.statusErr = false

	return m.routeToActive(msg)
}

func (m App) navigateTo(msg navigateMsg) (tea.Model, tea.Cmd) {
	m.page = msg.page
	switch msg.page {
	case pageDetail:
		m.detail.Open(msg.slug)
	case pageOrders:
		return m, m.orders.Refresh()
	}
	return m, nil
}

// View implements tea.Model.
func (m App) View() string {
	var b strings.Builder
	b.WriteString(m.topBar())
	b.WriteString("\n")

	switch m.page {
	case pageBrowse:
		b.WriteString(m.browse.View())
	case pageDetail:
		b.WriteString(m.detail.View())
	case pageCart:
		b.WriteString(m.cart.View())
	case pageAuth:
		b.WriteString(m.auth.View())
	case pageOrders:
		b.WriteString(m.orders.View())
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m App) topBar() string {
	left := m.styles.Title.Render("storefront")

	account := "U sign in"
	if u := m.container.Auth().User(); u != nil {
		account = "U " + u.DisplayName()
	}

	totals := m.container.Cart().Totals()
	cart := fmt.Sprintf("C cart (%d)", totals.TotalQuantity)

	return left + m.styles.Muted.Render(fmt.Sprintf("   %s · %s · O orders · q quit", account, cart))
}

func (m App) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.Error.Render(m.status)
	}
	return m.styles.Success.Render(m.status)
}

// Run restores persisted state and drives the program to completion.
func Run(client *api.Client, container *state.Container, pageSize int) error {
	container.Restore(context.Background())

	p := tea.NewProgram(NewApp(client, container, pageSize), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
