package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary   = lipgloss.Color("#17A2B8")
	Secondary = lipgloss.Color("#6FD3E2")
	Accent    = lipgloss.Color("#343A40")
	Success   = lipgloss.Color("#28A745")
	Danger    = lipgloss.Color("#DC3545")
	Muted     = lipgloss.Color("#6C757D")
	Text      = lipgloss.Color("#F4F4F4")
	BgDark    = lipgloss.Color("#1B1F23")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Muted).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Background(BgDark).
			Padding(0, 2)

	alertStyles = map[string]lipgloss.Style{
		"success": lipgloss.NewStyle().Foreground(Text).Background(Success).Padding(0, 2),
		"danger":  lipgloss.NewStyle().Foreground(Text).Background(Danger).Padding(0, 2),
		"info":    lipgloss.NewStyle().Foreground(Text).Background(Accent).Padding(0, 2),
	}
)
