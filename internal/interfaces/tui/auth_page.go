// internal/interfaces/tui/auth_page.go
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/your-org/storefront/internal/interfaces/api"
	"github.com/your-org/storefront/internal/state"
)

type authTab int

const (
	tabLogin authTab = iota
	tabRegister
)

// AuthPageModel is the sign-in / sign-up form.
type AuthPageModel struct {
	client    *api.Client
	container *state.Container
	styles    Styles

	width, height int

	tab     authTab
	inputs  []textinput.Model
	focus   int
	working bool
}

// Field order for the register tab; login uses the first two.
const (
	fieldEmail = iota
	fieldPassword
	fieldConfirm
	fieldUsername
	fieldFirstName
	fieldLastName
	fieldCount
)

// NewAuthPageModel creates the auth page.
func NewAuthPageModel(client *api.Client, container *state.Container, styles Styles) AuthPageModel {
	labels := []string{"email", "password", "confirm password", "username", "first name", "last name"}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 100
		if i == fieldPassword || i == fieldConfirm {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		inputs[i] = in
	}
	inputs[fieldEmail].Focus()

	return AuthPageModel{
		client:    client,
		container: container,
		styles:    styles,
		inputs:    inputs,
	}
}

// SetSize updates the page dimensions.
func (m *AuthPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *AuthPageModel) fieldCountForTab() int {
	if m.tab == tabLogin {
		return 2
	}
	return fieldCount
}

func (m *AuthPageModel) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

// Update handles messages for the auth page.
func (m AuthPageModel) Update(msg tea.Msg) (AuthPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.working = false
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		if err := m.container.SetCredentials(context.Background(), msg.creds); err != nil {
			return m, reportError(err)
		}
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		return m, tea.Batch(
			reportStatus("signed in as "+msg.creds.User.DisplayName()),
			navigate(pageBrowse, ""),
		)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m AuthPageModel) updateKeys(msg tea.KeyMsg) (AuthPageModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.tab == tabLogin {
			m.tab = tabRegister
		} else {
			m.tab = tabLogin
		}
		return m, m.setFocus(fieldEmail)

	case "up", "shift+tab":
		i := m.focus - 1
		if i < 0 {
			i = m.fieldCountForTab() - 1
		}
		return m, m.setFocus(i)

	case "down":
		return m, m.setFocus((m.focus + 1) % m.fieldCountForTab())

	case "enter":
		if m.focus < m.fieldCountForTab()-1 {
			return m, m.setFocus(m.focus + 1)
		}
		return m.submit()

	case "esc":
		return m, navigate(pageBrowse, "")
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m AuthPageModel) submit() (AuthPageModel, tea.Cmd) {
	if m.working {
		return m, nil
	}

	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()
	if email == "" || password == "" {
		return m, reportStatus("email and password are required")
	}

	if m.tab == tabLogin {
		m.working = true
		return m, loginCmd(m.client, email, password)
	}

	if m.inputs[fieldConfirm].Value() != password {
		return m, reportStatus("passwords do not match")
	}
	req := api.RegisterRequest{
		Email:           email,
		Password:        password,
		PasswordConfirm: m.inputs[fieldConfirm].Value(),
		Username:        strings.TrimSpace(m.inputs[fieldUsername].Value()),
		FirstName:       strings.TrimSpace(m.inputs[fieldFirstName].Value()),
		LastName:        strings.TrimSpace(m.inputs[fieldLastName].Value()),
	}
	m.working = true
	return m, registerCmd(m.client, req)
}

// View renders the page.
func (m AuthPageModel) View() string {
	var b strings.Builder

	login, register := "Sign in", "Create account"
	if m.tab == tabLogin {
		b.WriteString(m.styles.Header.Render(login) + m.styles.Muted.Render("  |  "+register))
	} else {
		b.WriteString(m.styles.Muted.Render(login+"  |  ") + m.styles.Header.Render(register))
	}
	b.WriteString("\n\n")

	for i := 0; i < m.fieldCountForTab(); i++ {
		marker := "  "
		if i == m.focus {
			marker = m.styles.Header.Render("> ")
		}
		b.WriteString(marker + m.inputs[i].View() + "\n")
	}

	if m.working {
		b.WriteString("\n" + m.styles.Muted.Render("signing in..."))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("tab switch mode · ↑/↓ fields · enter submit · esc back"))
	return b.String()
}
