// internal/interfaces/tui/browse_page.go
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/interfaces/api"
	"github.com/your-org/storefront/internal/state"
)

// proximityRows is how close to the bottom of the list the cursor must
// be to count as a scroll-proximity trigger in infinite mode. It stands
// in for the original sentinel element at the end of the grid.
const proximityRows = 3

// orderings the user can cycle through with the sort key.
var orderings = []struct {
	key   string
	label string
}{
	{"", "featured"},
	{"price", "price ↑"},
	{"-price", "price ↓"},
	{"name", "name"},
	{"-created_at", "newest"},
	{"-rating", "top rated"},
}

// BrowsePageModel is the catalog listing: a windowed product list over
// the query engine's accumulated results, with filter, search, sort and
// display-mode controls.
type BrowsePageModel struct {
	engine    *catalog.Engine
	client    *api.Client
	container *state.Container
	styles    Styles

	width  int
	height int
	cursor int
	offset int

	categories  []catalog.Category
	categoryIdx int // 0 means all categories
	orderingIdx int
	inStockOnly bool

	search    textinput.Model
	searching bool
	spinner   spinner.Model
}

// NewBrowsePageModel creates the browse page over a shared engine.
func NewBrowsePageModel(engine *catalog.Engine, client *api.Client, container *state.Container, styles Styles) BrowsePageModel {
	search := textinput.New()
	search.Placeholder = "search products..."
	search.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return BrowsePageModel{
		engine:    engine,
		client:    client,
		container: container,
		styles:    styles,
		search:    search,
		spinner:   sp,
	}
}

// SetSize updates the page dimensions.
func (m *BrowsePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetCategories installs the category list once it arrives.
func (m *BrowsePageModel) SetCategories(categories []catalog.Category) {
	m.categories = categories
}

// visibleRows is the number of product rows that fit on screen.
func (m *BrowsePageModel) visibleRows() int {
	// Header, filter line, footer, status line.
	rows := m.height - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

// currentFilter assembles the FilterSpec from the page's controls.
func (m *BrowsePageModel) currentFilter() catalog.FilterSpec {
	f := catalog.FilterSpec{
		Search:      strings.TrimSpace(m.search.Value()),
		Ordering:    orderings[m.orderingIdx].key,
		InStockOnly: m.inStockOnly,
	}
	if m.categoryIdx > 0 && m.categoryIdx <= len(m.categories) {
		f.Category = m.categories[m.categoryIdx-1].Slug
	}
	return f
}

// applyFilter pushes the current controls into the engine and starts
// the replacing fetch.
func (m *BrowsePageModel) applyFilter() tea.Cmd {
	m.cursor = 0
	m.offset = 0
	fetch := m.engine.SetFilter(m.currentFilter())
	return tea.Batch(fetchPageCmd(m.client, fetch, m.engine.PageSize()), m.spinner.Tick)
}

// Update handles messages for the browse page.
func (m BrowsePageModel) Update(msg tea.Msg) (BrowsePageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case pageFetchedMsg:
		applied := m.engine.Apply(msg.fetch, msg.result, msg.err)
		if !applied {
			return m, nil
		}
		m.clampCursor()
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		if m.engine.Fetching() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BrowsePageModel) updateSearch(msg tea.KeyMsg) (BrowsePageModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, m.applyFilter()
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m BrowsePageModel) updateBrowse(msg tea.KeyMsg) (BrowsePageModel, tea.Cmd) {
	products := m.engine.Products()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.scrollIntoView()
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(products)-1 {
			m.cursor++
			m.scrollIntoView()
		}
		return m, m.maybeLoadMore()

	case "g":
		m.cursor = 0
		m.offset = 0
		return m, nil

	case "G":
		if len(products) > 0 {
			m.cursor = len(products) - 1
			m.scrollIntoView()
		}
		return m, m.maybeLoadMore()

	case "left", "h":
		if fetch, ok := m.engine.PrevPage(); ok {
			m.cursor = 0
			m.offset = 0
			return m, tea.Batch(fetchPageCmd(m.client, fetch, m.engine.PageSize()), m.spinner.Tick)
		}
		return m, nil

	case "right", "l":
		if fetch, ok := m.engine.NextPage(); ok {
			m.cursor = 0
			m.offset = 0
			return m, tea.Batch(fetchPageCmd(m.client, fetch, m.engine.PageSize()), m.spinner.Tick)
		}
		return m, nil

	case "m":
		m.cursor = 0
		m.offset = 0
		fetch := m.engine.ToggleMode()
		return m, tea.Batch(fetchPageCmd(m.client, fetch, m.engine.PageSize()), m.spinner.Tick)

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "c":
		m.categoryIdx = (m.categoryIdx + 1) % (len(m.categories) + 1)
		return m, m.applyFilter()

	case "s":
		m.orderingIdx = (m.orderingIdx + 1) % len(orderings)
		return m, m.applyFilter()

	case "t":
		m.inStockOnly = !m.inStockOnly
		return m, m.applyFilter()

	case "r":
		fetch := m.engine.Reload()
		return m, tea.Batch(fetchPageCmd(m.client, fetch, m.engine.PageSize()), m.spinner.Tick)

	case "a":
		if m.cursor < len(products) {
			p := products[m.cursor]
			return m, addToCart(m.container, p, 1)
		}
		return m, nil

	case "enter":
		if m.cursor < len(products) {
			slug := products[m.cursor].Slug
			return m, tea.Batch(
				navigate(pageDetail, slug),
				fetchDetailCmd(m.client, slug),
			)
		}
		return m, nil
	}

	return m, nil
}

// maybeLoadMore fires the scroll-proximity trigger when the cursor is
// near the end of the accumulated list in infinite mode. The engine
// ignores the trigger while a fetch is in flight or once every page has
// been shown.
func (m *BrowsePageModel) maybeLoadMore() tea.Cmd {
	if m.cursor < len(m.engine.Products())-proximityRows {
		return nil
	}
	fetch, ok := m.engine.NearEnd()
	if !ok {
		return nil
	}
	return tea.Batch(fetchPageCmd(m.client, fetch, m.engine.PageSize()), m.spinner.Tick)
}

func (m *BrowsePageModel) scrollIntoView() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m *BrowsePageModel) clampCursor() {
	n := len(m.engine.Products())
	if n == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	m.scrollIntoView()
}

// View renders the page.
func (m BrowsePageModel) View() string {
	var b strings.Builder

	total := m.engine.Total()
	b.WriteString(m.styles.Header.Render("All products"))
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d items · %s mode", total, m.engine.Mode())))
	if m.engine.Mode() == catalog.ModePaginated && m.engine.TotalPages() > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" · page %d/%d", m.engine.Page(), m.engine.TotalPages())))
	}
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n\n")

	products := m.engine.Products()
	switch {
	case m.engine.Loading():
		b.WriteString(m.spinner.View() + m.styles.Muted.Render(" loading products..."))
		b.WriteString("\n")
	case len(products) == 0:
		b.WriteString(m.styles.Muted.Render("Nothing matches those filters."))
		b.WriteString("\n")
	default:
		rows := m.visibleRows()
		end := m.offset + rows
		if end > len(products) {
			end = len(products)
		}
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderRow(products[i], i == m.cursor))
			b.WriteString("\n")
		}
		b.WriteString(m.bottomLine(len(products)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("↑/↓ move · ←/→ page · enter view · a add · m mode · / search · c category · s sort · t in-stock"))
	return b.String()
}

func (m BrowsePageModel) filterLine() string {
	if m.searching {
		return m.styles.InputArea.Render("search: " + m.search.View())
	}

	parts := []string{"category: all"}
	if m.categoryIdx > 0 && m.categoryIdx <= len(m.categories) {
		parts[0] = "category: " + m.categories[m.categoryIdx-1].Name
	}
	parts = append(parts, "sort: "+orderings[m.orderingIdx].label)
	if m.inStockOnly {
		parts = append(parts, "in stock only")
	}
	if q := strings.TrimSpace(m.search.Value()); q != "" {
		parts = append(parts, fmt.Sprintf("search: %q", q))
	}
	return m.styles.Muted.Render(strings.Join(parts, " · "))
}

func (m BrowsePageModel) renderRow(p catalog.Product, selected bool) string {
	name := p.Name
	if len(name) > 40 {
		name = name[:37] + "..."
	}

	price := m.styles.Price.Render("$" + p.Price)
	if p.HasDiscount() {
		price += " " + m.styles.WasPrice.Render("$"+p.CompareAtPrice)
	}

	stock := m.styles.Badge.Render("in stock")
	if !p.InStock {
		stock = m.styles.OutBadge.Render("sold out")
	}

	rating := ""
	if p.ReviewCount > 0 {
		rating = m.styles.Muted.Render(fmt.Sprintf("★ %.1f (%d)", p.Rating, p.ReviewCount))
	}

	line := fmt.Sprintf("%-40s  %s  %s  %s", name, price, stock, rating)
	if selected {
		return m.styles.Selected.Render("> " + line)
	}
	return "  " + line
}

// bottomLine renders the sentinel area under the list: the appending
// spinner, the terminal "seen everything" notice, or a count summary.
func (m BrowsePageModel) bottomLine(shown int) string {
	switch {
	case m.engine.LoadingMore():
		return m.spinner.View() + m.styles.Muted.Render(" loading more...")
	case m.engine.Mode() == catalog.ModeInfinite && m.engine.AllShown():
		return m.styles.Muted.Render("— you've seen everything —")
	default:
		return m.styles.Muted.Render(fmt.Sprintf("%d of %d shown", shown, m.engine.Total()))
	}
}
