package store

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FollowUp derives the effects scheduled by an event that has just been
// reduced: chained loads after authentication, alerts raised from failures
// and notices, and the timed removal of every alert.
func (a *Actions) FollowUp(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case RegisterSuccess, LoginSuccess:
		return a.LoadUser()
	case UserLoaded:
		return a.GetCurrentProfile()

	case RegisterFail:
		return a.failureAlerts(m.Failure)
	case LoginFail:
		return a.failureAlerts(m.Failure)
	case ProfileError:
		return a.failureAlerts(m.Failure)
	case PostError:
		return a.failureAlerts(m.Failure)

	case GetProfile:
		return a.notice(m.Notice, AlertSuccess)
	case UpdateProfile:
		return a.notice(m.Notice, AlertSuccess)
	case AccountDeleted:
		return a.notice("Your account has been deleted", AlertInfo)
	case AddPost:
		return a.notice("Post Created", AlertSuccess)
	case DeletePost:
		return a.notice("Post Removed", AlertSuccess)
	case AddComment:
		return a.notice("Comment Added", AlertSuccess)
	case RemoveComment:
		return a.notice("Comment Removed", AlertSuccess)

	case SetAlert:
		id := m.Alert.ID
		return tea.Tick(a.alertTTL, func(time.Time) tea.Msg {
			return RemoveAlert{ID: id}
		})
	}
	return nil
}

// SetAlertCmd raises a single alert.
func (a *Actions) SetAlertCmd(msg string, typ AlertType) tea.Cmd {
	alert := Alert{ID: a.newID(), Msg: msg, Type: typ}
	return func() tea.Msg { return SetAlert{Alert: alert} }
}

func (a *Actions) notice(msg string, typ AlertType) tea.Cmd {
	if msg == "" {
		return nil
	}
	return a.SetAlertCmd(msg, typ)
}

// failureAlerts fans field errors out into one danger alert each. Without
// field errors a single generic alert is raised unless the failure is quiet.
func (a *Actions) failureAlerts(f Failure) tea.Cmd {
	if len(f.Errors) > 0 {
		cmds := make([]tea.Cmd, 0, len(f.Errors))
		for _, fe := range f.Errors {
			cmds = append(cmds, a.SetAlertCmd(fe.Msg, AlertDanger))
		}
		return tea.Batch(cmds...)
	}
	if f.Quiet || f.Msg == "" {
		return nil
	}
	return a.SetAlertCmd(f.Msg, AlertDanger)
}
