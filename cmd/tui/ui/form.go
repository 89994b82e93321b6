package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field struct {
	label  string
	value  string
	masked bool
}

// Form is a column of single-line text inputs.
type Form struct {
	title  string
	help   string
	fields []field
	focus  int
}

func NewForm(title, help string, labels ...string) *Form {
	f := &Form{title: title, help: help}
	for _, l := range labels {
		f.fields = append(f.fields, field{label: l})
	}
	return f
}

// Mask hides the value of field i.
func (f *Form) Mask(i int) *Form {
	f.fields[i].masked = true
	return f
}

func (f *Form) Value(i int) string {
	return strings.TrimSpace(f.fields[i].value)
}

func (f *Form) Set(i int, v string) {
	f.fields[i].value = v
}

func (f *Form) Reset() {
	for i := range f.fields {
		f.fields[i].value = ""
	}
	f.focus = 0
}

// Update edits the focused field and reports whether enter was pressed.
func (f *Form) Update(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEnter:
		return true
	case tea.KeyTab, tea.KeyDown:
		f.focus = (f.focus + 1) % len(f.fields)
	case tea.KeyShiftTab, tea.KeyUp:
		f.focus = (f.focus + len(f.fields) - 1) % len(f.fields)
	case tea.KeyBackspace:
		v := []rune(f.fields[f.focus].value)
		if len(v) > 0 {
			f.fields[f.focus].value = string(v[:len(v)-1])
		}
	case tea.KeyCtrlL:
		f.Reset()
	case tea.KeySpace:
		f.fields[f.focus].value += " "
	case tea.KeyRunes:
		f.fields[f.focus].value += string(msg.Runes)
	}
	return false
}

func (f *Form) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(f.title))
	b.WriteString("\n\n")

	for i, fl := range f.fields {
		style := InputStyle
		if i == f.focus {
			style = FocusedInputStyle
		}
		v := fl.value
		if fl.masked {
			v = strings.Repeat("•", len([]rune(v)))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center, LabelStyle.Render(fl.label+":"), style.Width(44).Render(v))
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(f.help))
	return BoxStyle.Width(76).Render(b.String())
}
