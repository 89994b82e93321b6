package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davixiao/MeetTheDev/internal/client/store"
)

func (m Model) profilesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.view == ProfileView {
		if msg.Type == tea.KeyEsc {
			m.view = ProfilesView
		}
		return m, nil
	}

	profiles := m.state.Profile.Profiles
	switch msg.String() {
	case "esc":
		m.cursor = 0
		if m.state.Auth.IsAuthenticated {
			m.view = DashboardView
			return m, m.actions.GetCurrentProfile()
		}
		m.view = LoginView
	case "up", "k":
		m.move(-1, len(profiles))
	case "down", "j":
		m.move(1, len(profiles))
	case "r":
		return m, m.actions.GetProfiles()
	case "enter":
		if m.cursor < len(profiles) {
			m.view = ProfileView
			m.state = store.Reduce(m.state, store.ClearProfile{})
			return m, m.actions.GetProfileByID(profiles[m.cursor].User.ID)
		}
	}
	return m, nil
}

func (m Model) profilesView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Developers"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Browse and connect with developers"))
	b.WriteString("\n\n")

	profiles := m.state.Profile.Profiles
	switch {
	case m.state.Profile.Loading:
		b.WriteString(InfoStyle.Render("Loading..."))
	case len(profiles) == 0:
		b.WriteString(ItemStyle.Render("No profiles found..."))
	}
	for i, p := range profiles {
		line := fmt.Sprintf("%s  %s", p.User.Name, p.Status)
		if p.Company != "" {
			line += " at " + p.Company
		}
		if len(p.Skills) > 0 {
			line += "  [" + strings.Join(p.Skills, ", ") + "]"
		}
		b.WriteString(m.entryLine(i, line))
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("enter view profile  •  r refresh  •  esc back"))
	return BoxStyle.Width(76).Render(b.String())
}

func (m Model) profileView() string {
	var b strings.Builder

	p := m.state.Profile.Profile
	if p == nil {
		if m.state.Profile.Error != nil {
			b.WriteString(ItemStyle.Render("Profile not found"))
		} else {
			b.WriteString(InfoStyle.Render("Loading..."))
		}
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("esc back"))
		return BoxStyle.Width(76).Render(b.String())
	}

	b.WriteString(TitleStyle.Render(p.User.Name))
	b.WriteString("\n")
	headline := p.Status
	if p.Company != "" {
		headline += " at " + p.Company
	}
	b.WriteString(SubtitleStyle.Render(headline))
	b.WriteString("\n")
	if p.Location != "" {
		b.WriteString(ItemStyle.Render(p.Location) + "\n")
	}
	if p.Website != "" {
		b.WriteString(ItemStyle.Render(p.Website) + "\n")
	}
	if p.Bio != "" {
		b.WriteString("\n" + LabelStyle.Render("Bio") + "\n" + ItemStyle.Render(p.Bio) + "\n")
	}

	b.WriteString("\n" + LabelStyle.Render("Skill Set") + "\n")
	b.WriteString(ItemStyle.Render("✓ "+strings.Join(p.Skills, "  ✓ ")) + "\n")

	b.WriteString("\n" + LabelStyle.Render("Experience") + "\n")
	if len(p.Experience) == 0 {
		b.WriteString(ItemStyle.Render("No experience credentials") + "\n")
	}
	for _, exp := range p.Experience {
		b.WriteString(ItemStyle.Render(fmt.Sprintf("%s, %s  %s", exp.Title, exp.Company, entryDates(exp.From, exp.To, exp.Current))) + "\n")
	}

	b.WriteString("\n" + LabelStyle.Render("Education") + "\n")
	if len(p.Education) == 0 {
		b.WriteString(ItemStyle.Render("No education credentials") + "\n")
	}
	for _, edu := range p.Education {
		b.WriteString(ItemStyle.Render(fmt.Sprintf("%s, %s in %s  %s", edu.School, edu.Degree, edu.FieldOfStudy, entryDates(edu.From, edu.To, edu.Current))) + "\n")
	}

	if p.GithubUsername != "" {
		b.WriteString("\n" + LabelStyle.Render("Github Repos") + "\n")
		for _, r := range m.state.Profile.Repos {
			b.WriteString(ItemStyle.Render(fmt.Sprintf("%s  ★%d  forks %d", r.Name, r.StargazersCount, r.ForksCount)) + "\n")
			if r.Description != "" {
				b.WriteString(InfoStyle.PaddingLeft(4).Render(r.Description) + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("esc back"))
	return BoxStyle.Width(76).Render(b.String())
}
