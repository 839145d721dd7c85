// internal/interfaces/tui/detail_page.go
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/interfaces/api"
	"github.com/your-org/storefront/internal/state"
)

// DetailPageModel shows one product with its description and reviews,
// and lets a signed-in user leave a review.
type DetailPageModel struct {
	client    *api.Client
	container *state.Container
	styles    Styles

	width  int
	height int

	slug    string
	product catalog.Product
	reviews []catalog.Review
	loading bool

	viewport viewport.Model

	reviewing bool
	rating    int
	comment   textinput.Model
	posting   bool
}

// NewDetailPageModel creates the product detail page.
func NewDetailPageModel(client *api.Client, container *state.Container, styles Styles) DetailPageModel {
	comment := textinput.New()
	comment.Placeholder = "what did you think?"
	comment.CharLimit = 300

	return DetailPageModel{
		client:    client,
		container: container,
		styles:    styles,
		viewport:  viewport.New(80, 20),
		rating:    5,
		comment:   comment,
	}
}

// SetSize updates the page dimensions.
func (m *DetailPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	h -= 4
	if h < 3 {
		h = 3
	}
	m.viewport.Height = h
	m.viewport.SetContent(m.content())
}

// Open resets the page for a new product while its detail loads.
func (m *DetailPageModel) Open(slug string) {
	m.slug = slug
	m.product = catalog.Product{}
	m.reviews = nil
	m.loading = true
	m.reviewing = false
	m.posting = false
	m.rating = 5
	m.comment.SetValue("")
	m.viewport.GotoTop()
	m.viewport.SetContent(m.content())
}

// Update handles messages for the detail page.
func (m DetailPageModel) Update(msg tea.Msg) (DetailPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case productDetailMsg:
		m.loading = false
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		m.product = msg.product
		m.reviews = msg.reviews
		m.viewport.SetContent(m.content())
		return m, nil

	case reviewPostedMsg:
		m.posting = false
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		m.reviewing = false
		m.comment.SetValue("")
		// Refetch so the new review and updated average show up.
		return m, tea.Batch(reportStatus("review posted"), fetchDetailCmd(m.client, msg.slug))

	case tea.KeyMsg:
		if m.reviewing {
			return m.updateReview(msg)
		}
		return m.updateDetail(msg)
	}

	if m.reviewing {
		var cmd tea.Cmd
		m.comment, cmd = m.comment.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m DetailPageModel) updateDetail(msg tea.KeyMsg) (DetailPageModel, tea.Cmd) {
	switch msg.String() {
	case "a":
		if m.product.ID == 0 {
			return m, nil
		}
		return m, addToCart(m.container, m.product, 1)

	case "R":
		if !m.container.Auth().Authenticated() {
			return m, tea.Batch(
				reportStatus("sign in to leave a review"),
				navigate(pageAuth, ""),
			)
		}
		m.reviewing = true
		m.comment.Focus()
		return m, textinput.Blink

	case "esc", "backspace":
		return m, navigate(pageBrowse, "")
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m DetailPageModel) updateReview(msg tea.KeyMsg) (DetailPageModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.reviewing = false
		m.comment.Blur()
		return m, nil

	case "up":
		if m.rating < 5 {
			m.rating++
		}
		return m, nil

	case "down":
		if m.rating > 1 {
			m.rating--
		}
		return m, nil

	case "enter":
		if m.posting {
			return m, nil
		}
		m.posting = true
		token := m.container.Auth().AccessToken()
		return m, postReviewCmd(m.client, m.slug, m.rating, strings.TrimSpace(m.comment.Value()), token)
	}

	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

// View renders the page.
func (m DetailPageModel) View() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.reviewing {
		b.WriteString(m.styles.InputArea.Render(fmt.Sprintf("rating: %s (↑/↓)  comment: %s", stars(m.rating), m.comment.View())))
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter submit · esc cancel"))
		return b.String()
	}

	b.WriteString(m.styles.Help.Render("a add to cart · R review · ↑/↓ scroll · esc back"))
	return b.String()
}

func (m DetailPageModel) content() string {
	if m.loading {
		return m.styles.Muted.Render("loading product...")
	}
	p := m.product
	if p.ID == 0 {
		return m.styles.Muted.Render("product not found")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(p.Name))
	b.WriteString("\n")
	if p.CategoryName != "" {
		b.WriteString(m.styles.Muted.Render(p.CategoryName))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.styles.Price.Render("$" + p.Price))
	if p.HasDiscount() {
		b.WriteString("  " + m.styles.WasPrice.Render("$"+p.CompareAtPrice))
	}
	b.WriteString("\n")

	if p.InStock {
		b.WriteString(m.styles.Badge.Render(fmt.Sprintf("in stock (%d available)", p.StockQuantity)))
	} else {
		b.WriteString(m.styles.OutBadge.Render("out of stock"))
	}
	b.WriteString("\n\n")

	if p.Description != "" {
		b.WriteString(wrap(p.Description, m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Reviews (%d)", p.ReviewCount)))
	if p.ReviewCount > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  avg %.1f", p.Rating)))
	}
	b.WriteString("\n")

	if len(m.reviews) == 0 {
		b.WriteString(m.styles.Muted.Render("no reviews yet"))
		b.WriteString("\n")
	}
	for _, r := range m.reviews {
		b.WriteString(fmt.Sprintf("%s %s %s\n", stars(r.Rating), m.styles.Title.Render(r.User), m.styles.Muted.Render(r.CreatedAt.Format("Jan 2, 2006"))))
		if r.Comment != "" {
			b.WriteString(wrap(r.Comment, m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func stars(rating int) string {
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// wrap breaks text into lines no wider than width, preserving words.
func wrap(s string, width int) string {
	if width < 20 {
		width = 20
	}
	words := strings.Fields(s)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if line > 0 && line+1+len(w) > width {
			b.WriteString("\n")
			line = 0
		} else if i > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
