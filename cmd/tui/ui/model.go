package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/davixiao/MeetTheDev/internal/client/store"
)

type View int

const (
	LoginView View = iota
	RegisterView
	DashboardView
	ProfileFormView
	ExperienceFormView
	EducationFormView
	ProfilesView
	ProfileView
	PostsView
	PostView
	PostFormView
	CommentFormView
)

// private views need an authenticated user.
func (v View) private() bool {
	switch v {
	case LoginView, RegisterView, ProfilesView, ProfileView:
		return false
	}
	return true
}

// Model drives the terminal client. Store events are reduced into state and
// their follow-up effects are returned as commands.
type Model struct {
	view    View
	state   store.State
	actions *store.Actions

	login      *Form
	register   *Form
	profile    *Form
	experience *Form
	education  *Form
	post       *Form
	comment    *Form

	cursor        int
	confirmDelete bool
	width         int
}

func NewModel(actions *store.Actions, initial store.State) Model {
	return Model{
		view:    DashboardView,
		state:   initial,
		actions: actions,

		login:      newLoginForm(),
		register:   newRegisterForm(),
		profile:    newProfileForm(),
		experience: newExperienceForm(),
		education:  newEducationForm(),
		post:       NewForm("Create Post", "enter publish  •  esc back", "Text"),
		comment:    NewForm("Leave a Comment", "enter comment  •  esc back", "Text"),
	}
}

func (m Model) Init() tea.Cmd {
	return m.actions.LoadUser()
}

func (m Model) State() store.State { return m.state }

func (m Model) CurrentView() View { return m.view }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		next, cmd := m.handleKey(msg)
		next.route()
		return next, cmd
	}

	m.state = store.Reduce(m.state, msg)
	cmd := tea.Batch(m.actions.FollowUp(msg), m.react(msg))
	m.route()
	return m, cmd
}

// react moves between views once an effect completes.
func (m *Model) react(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case store.GetProfile:
		if m.view == ProfileView && msg.Profile.GithubUsername != "" {
			return m.actions.GetGithubRepos(msg.Profile.GithubUsername)
		}
		if m.view == ProfileFormView && msg.Notice != "" {
			m.view = DashboardView
		}
	case store.UpdateProfile:
		if m.view == ExperienceFormView || m.view == EducationFormView {
			m.view = DashboardView
		}
		m.cursor = 0
	case store.AddPost:
		if m.view == PostFormView {
			m.view = PostsView
			m.cursor = 0
		}
	case store.AddComment:
		if m.view == CommentFormView {
			m.view = PostView
		}
	case store.DeletePost:
		if m.view == PostView {
			m.view = PostsView
		}
		m.cursor = 0
	case store.RemoveComment:
		m.cursor = 0
	}
	return nil
}

// route applies the private-view gate and leaves the auth forms once signed in.
func (m *Model) route() {
	if m.view.private() && store.CanEnter(m.state.Auth) == store.GateRedirectLogin {
		m.view = LoginView
		m.confirmDelete = false
		return
	}
	if m.state.Auth.IsAuthenticated && (m.view == LoginView || m.view == RegisterView) {
		m.view = DashboardView
		m.login.Reset()
		m.register.Reset()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.view {
	case LoginView, RegisterView:
		return m.authKey(msg)
	case ProfileFormView, ExperienceFormView, EducationFormView:
		return m.profileFormKey(msg)
	case DashboardView:
		return m.dashboardKey(msg)
	case ProfilesView, ProfileView:
		return m.profilesKey(msg)
	case PostsView, PostView, PostFormView, CommentFormView:
		return m.postsKey(msg)
	}
	return m, nil
}

func (m *Model) move(delta, n int) {
	m.cursor += delta
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	var content string
	switch m.view {
	case LoginView:
		content = m.login.View()
	case RegisterView:
		content = m.register.View()
	case DashboardView:
		content = m.dashboardView()
	case ProfileFormView:
		content = m.profile.View()
	case ExperienceFormView:
		content = m.experience.View()
	case EducationFormView:
		content = m.education.View()
	case ProfilesView:
		content = m.profilesView()
	case ProfileView:
		content = m.profileView()
	case PostsView:
		content = m.postsView()
	case PostView:
		content = m.postView()
	case PostFormView:
		content = m.post.View()
	case CommentFormView:
		content = m.comment.View()
	}

	parts := []string{m.statusBar()}
	if alerts := m.alertsView(); alerts != "" {
		parts = append(parts, alerts)
	}
	parts = append(parts, content)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) statusBar() string {
	brand := TitleStyle.Render("</> DevConnector")
	if u := m.state.Auth.User; u != nil && m.state.Auth.IsAuthenticated {
		who := lipgloss.NewStyle().Foreground(Success).Render(u.Name) +
			lipgloss.NewStyle().Foreground(Muted).Render(" ("+u.Email+")")
		return StatusBarStyle.Render(brand + "  " + who)
	}
	return StatusBarStyle.Render(brand)
}

func (m Model) alertsView() string {
	if len(m.state.Alerts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.state.Alerts))
	for _, a := range m.state.Alerts {
		style, ok := alertStyles[string(a.Type)]
		if !ok {
			style = alertStyles["info"]
		}
		lines = append(lines, style.Render(a.Msg))
	}
	return strings.Join(lines, "\n")
}
