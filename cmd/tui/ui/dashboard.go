package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davixiao/MeetTheDev/internal/client/store"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

const (
	pfStatus = iota
	pfSkills
	pfCompany
	pfWebsite
	pfLocation
	pfBio
	pfGithub
	pfYouTube
	pfTwitter
	pfFacebook
	pfLinkedIn
	pfInstagram
)

const (
	entryTitle    = iota // school for education
	entryCompany         // degree for education
	entryLocation        // field of study for education
	entryFrom
	entryTo
	entryCurrent
	entryDescription
)

const dateHelp = "dates as YYYY-MM-DD  •  current y/n  •  enter save  •  esc back"

func newProfileForm() *Form {
	return NewForm("Edit Your Profile", "skills comma separated  •  enter save  •  esc back",
		"* Status", "* Skills", "Company", "Website", "Location", "Bio", "GitHub username",
		"YouTube", "Twitter", "Facebook", "LinkedIn", "Instagram")
}

func newExperienceForm() *Form {
	return NewForm("Add An Experience", dateHelp,
		"* Job title", "* Company", "Location", "* From", "To", "Current", "Description")
}

func newEducationForm() *Form {
	return NewForm("Add Your Education", dateHelp,
		"* School", "* Degree", "* Field of study", "* From", "To", "Current", "Description")
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func yes(v string) bool {
	switch strings.ToLower(v) {
	case "y", "yes", "true":
		return true
	}
	return false
}

// fillProfileForm pre-populates the form from the current profile.
func (m *Model) fillProfileForm() {
	m.profile.Reset()
	p := m.state.Profile.Profile
	if p == nil {
		m.profile.title = "Create Your Profile"
		return
	}
	m.profile.title = "Edit Your Profile"
	values := map[int]string{
		pfStatus: p.Status, pfSkills: strings.Join(p.Skills, ", "), pfCompany: p.Company,
		pfWebsite: p.Website, pfLocation: p.Location, pfBio: p.Bio, pfGithub: p.GithubUsername,
		pfYouTube: p.Social.YouTube, pfTwitter: p.Social.Twitter, pfFacebook: p.Social.Facebook,
		pfLinkedIn: p.Social.LinkedIn, pfInstagram: p.Social.Instagram,
	}
	for i, v := range values {
		m.profile.Set(i, v)
	}
}

func (m Model) profileInput() ports.UpsertProfileInput {
	f := m.profile
	return ports.UpsertProfileInput{
		Status:         f.Value(pfStatus),
		Skills:         f.Value(pfSkills),
		Company:        optional(f.Value(pfCompany)),
		Website:        optional(f.Value(pfWebsite)),
		Location:       optional(f.Value(pfLocation)),
		Bio:            optional(f.Value(pfBio)),
		GithubUsername: optional(f.Value(pfGithub)),
		YouTube:        optional(f.Value(pfYouTube)),
		Twitter:        optional(f.Value(pfTwitter)),
		Facebook:       optional(f.Value(pfFacebook)),
		LinkedIn:       optional(f.Value(pfLinkedIn)),
		Instagram:      optional(f.Value(pfInstagram)),
	}
}

func (m Model) profileFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.view = DashboardView
		return m, nil
	}

	switch m.view {
	case ProfileFormView:
		if m.profile.Update(msg) {
			return m, m.actions.CreateProfile(m.profileInput())
		}
	case ExperienceFormView:
		if f := m.experience; f.Update(msg) {
			return m, m.actions.AddExperience(ports.ExperienceInput{
				Title:       f.Value(entryTitle),
				Company:     f.Value(entryCompany),
				Location:    f.Value(entryLocation),
				From:        f.Value(entryFrom),
				To:          f.Value(entryTo),
				Current:     yes(f.Value(entryCurrent)),
				Description: f.Value(entryDescription),
			})
		}
	case EducationFormView:
		if f := m.education; f.Update(msg) {
			return m, m.actions.AddEducation(ports.EducationInput{
				School:       f.Value(entryTitle),
				Degree:       f.Value(entryCompany),
				FieldOfStudy: f.Value(entryLocation),
				From:         f.Value(entryFrom),
				To:           f.Value(entryTo),
				Current:      yes(f.Value(entryCurrent)),
				Description:  f.Value(entryDescription),
			})
		}
	}
	return m, nil
}

// dashboardEntries lists experience then education, the order the cursor walks.
func (m Model) dashboardEntries() int {
	p := m.state.Profile.Profile
	if p == nil {
		return 0
	}
	return len(p.Experience) + len(p.Education)
}

func (m Model) dashboardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() == "y" {
			return m, m.actions.DeleteAccount()
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.move(-1, m.dashboardEntries())
	case "down", "j":
		m.move(1, m.dashboardEntries())
	case "e":
		m.fillProfileForm()
		m.view = ProfileFormView
	case "x":
		if m.state.Profile.Profile != nil {
			m.experience.Reset()
			m.view = ExperienceFormView
		}
	case "c":
		if m.state.Profile.Profile != nil {
			m.education.Reset()
			m.view = EducationFormView
		}
	case "d":
		return m, m.deleteEntry()
	case "D":
		m.confirmDelete = true
	case "p":
		m.view = ProfilesView
		m.cursor = 0
		m.state = store.Reduce(m.state, store.ClearProfile{})
		return m, m.actions.GetProfiles()
	case "f":
		m.view = PostsView
		m.cursor = 0
		return m, m.actions.GetPosts()
	case "r":
		return m, m.actions.GetCurrentProfile()
	case "l":
		return m, m.actions.Logout()
	}
	return m, nil
}

func (m Model) deleteEntry() tea.Cmd {
	p := m.state.Profile.Profile
	if p == nil || m.cursor >= m.dashboardEntries() {
		return nil
	}
	if m.cursor < len(p.Experience) {
		return m.actions.DeleteExperience(p.Experience[m.cursor].ID)
	}
	return m.actions.DeleteEducation(p.Education[m.cursor-len(p.Experience)].ID)
}

func entryDates(from time.Time, to *time.Time, current bool) string {
	const layout = "2006/01/02"
	switch {
	case current || to == nil:
		return from.Format(layout) + " - Now"
	default:
		return from.Format(layout) + " - " + to.Format(layout)
	}
}

func (m Model) dashboardView() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Dashboard"))
	b.WriteString("\n")
	if u := m.state.Auth.User; u != nil {
		b.WriteString(SubtitleStyle.Render("Welcome " + u.Name))
		b.WriteString("\n\n")
	}

	p := m.state.Profile.Profile
	switch {
	case m.state.Profile.Loading && p == nil:
		b.WriteString(InfoStyle.Render("Loading..."))
	case p == nil:
		b.WriteString(ItemStyle.Render("You have not yet setup a profile, press e to add some info"))
	default:
		b.WriteString(LabelStyle.Render("Experience Credentials"))
		b.WriteString("\n")
		for i, exp := range p.Experience {
			line := fmt.Sprintf("%s  %s  %s", exp.Company, exp.Title, entryDates(exp.From, exp.To, exp.Current))
			b.WriteString(m.entryLine(i, line))
		}
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("Education Credentials"))
		b.WriteString("\n")
		for i, edu := range p.Education {
			line := fmt.Sprintf("%s  %s  %s", edu.School, edu.Degree, entryDates(edu.From, edu.To, edu.Current))
			b.WriteString(m.entryLine(len(p.Experience)+i, line))
		}
	}

	b.WriteString("\n")
	if m.confirmDelete {
		b.WriteString(alertStyles["danger"].Render("Are you certain? This cannot be undone. Press y to delete your account."))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render("e profile  •  x experience  •  c education  •  d delete entry  •  D delete account\np developers  •  f posts  •  r refresh  •  l logout  •  q quit"))
	return BoxStyle.Width(76).Render(b.String())
}

func (m Model) entryLine(i int, text string) string {
	if i == m.cursor {
		return SelectedItemStyle.Render("> "+text) + "\n"
	}
	return ItemStyle.Render("  "+text) + "\n"
}
