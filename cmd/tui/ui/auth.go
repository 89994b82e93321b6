package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/davixiao/MeetTheDev/internal/client/store"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

const (
	loginEmail = iota
	loginPassword
)

const (
	registerName = iota
	registerEmail
	registerPassword
	registerConfirm
)

func newLoginForm() *Form {
	return NewForm("Sign In", "tab switch  •  enter login  •  ctrl+s register  •  ctrl+l clear",
		"Email", "Password").Mask(loginPassword)
}

func newRegisterForm() *Form {
	return NewForm("Sign Up", "tab switch  •  enter register  •  ctrl+s login  •  ctrl+l clear",
		"Name", "Email", "Password", "Confirm password").Mask(registerPassword).Mask(registerConfirm)
}

func (m Model) authKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlS {
		if m.view == LoginView {
			m.view = RegisterView
		} else {
			m.view = LoginView
		}
		return m, nil
	}
	if msg.Type == tea.KeyEsc {
		m.view = ProfilesView
		m.state = store.Reduce(m.state, store.ClearProfile{})
		return m, m.actions.GetProfiles()
	}

	if m.view == LoginView {
		if !m.login.Update(msg) {
			return m, nil
		}
		return m, m.actions.Login(m.login.Value(loginEmail), m.login.fields[loginPassword].value)
	}

	if !m.register.Update(msg) {
		return m, nil
	}
	password := m.register.fields[registerPassword].value
	if password != m.register.fields[registerConfirm].value {
		return m, m.actions.SetAlertCmd("Passwords do not match", store.AlertDanger)
	}
	return m, m.actions.Register(ports.RegisterInput{
		Name:     m.register.Value(registerName),
		Email:    m.register.Value(registerEmail),
		Password: password,
	})
}
