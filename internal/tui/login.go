package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/PocheonLim/TeamPlaner/internal/auth"
)

// loginModel gates the whole app: until a session exists every other
// view is unreachable.
type loginModel struct {
	auth   *auth.Local
	width  int
	height int

	registering bool
	form        *huh.Form
	failed      bool

	// Form field pointers (survive value copies)
	username *string
	password *string
	email    *string
}

func newLoginModel(a *auth.Local) loginModel {
	username, password, email := "", "", ""
	m := loginModel{
		auth:     a,
		username: &username,
		password: &password,
		email:    &email,
	}
	m.form = m.buildForm()
	return m
}

func (m *loginModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m loginModel) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("Username").Value(m.username),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(m.password),
	}
	if m.registering {
		fields = append(fields, huh.NewInput().Title("Email").Value(m.email))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
}

func (m loginModel) init() tea.Cmd {
	return m.form.Init()
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+r" {
		// Switch between login and registration.
		m.registering = !m.registering
		m.failed = false
		*m.username, *m.password, *m.email = "", "", ""
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		ok := false
		if m.registering {
			ok = m.auth.Register(*m.username, *m.password, *m.email)
		} else {
			ok = m.auth.Login(*m.username, *m.password)
		}
		if ok {
			m.failed = false
			return m, func() tea.Msg { return loggedInMsg{} }
		}
		m.failed = true
		*m.password = ""
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	return m, cmd
}

func (m loginModel) view() string {
	w := m.width - 4
	if w < 30 {
		w = 30
	}

	title := titleStyle.Render("TeamPlaner — Sign In")
	if m.registering {
		title = titleStyle.Render("TeamPlaner — Register")
	}

	rows := []string{title, ""}

	if m.failed {
		if m.registering {
			rows = append(rows, errorStyle.Render("Registration failed: name or email taken, or email invalid."))
		} else {
			rows = append(rows, errorStyle.Render("Wrong username or password."))
		}
		rows = append(rows, "")
	}

	rows = append(rows, m.form.View())
	rows = append(rows, "")
	if m.registering {
		rows = append(rows, mutedStyle.Render("  ctrl+r: back to sign in"))
	} else {
		rows = append(rows, mutedStyle.Render("  ctrl+r: register a new account"))
	}

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
