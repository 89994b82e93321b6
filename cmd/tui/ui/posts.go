package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) postsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.view {
	case PostFormView:
		if msg.Type == tea.KeyEsc {
			m.view = PostsView
			return m, nil
		}
		if m.post.Update(msg) {
			return m, m.actions.AddPost(m.post.Value(0))
		}
		return m, nil

	case CommentFormView:
		if msg.Type == tea.KeyEsc {
			m.view = PostView
			return m, nil
		}
		if p := m.state.Post.Post; p != nil && m.comment.Update(msg) {
			return m, m.actions.AddComment(p.ID, m.comment.Value(0))
		}
		return m, nil

	case PostView:
		return m.postKey(msg)
	}

	posts := m.state.Post.Posts
	selected := ""
	if m.cursor < len(posts) {
		selected = posts[m.cursor].ID
	}
	switch msg.String() {
	case "esc":
		m.view = DashboardView
		m.cursor = 0
	case "up", "k":
		m.move(-1, len(posts))
	case "down", "j":
		m.move(1, len(posts))
	case "n":
		m.post.Reset()
		m.view = PostFormView
	case "r":
		return m, m.actions.GetPosts()
	case "enter":
		if selected != "" {
			m.view = PostView
			m.cursor = 0
			return m, m.actions.GetPost(selected)
		}
	case "L":
		if selected != "" {
			return m, m.actions.AddLike(selected)
		}
	case "U":
		if selected != "" {
			return m, m.actions.RemoveLike(selected)
		}
	case "d":
		if selected != "" {
			return m, m.actions.DeletePost(selected)
		}
	}
	return m, nil
}

func (m Model) postKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	p := m.state.Post.Post
	switch msg.String() {
	case "esc":
		m.view = PostsView
		m.cursor = 0
		return m, m.actions.GetPosts()
	}
	if p == nil {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.move(-1, len(p.Comments))
	case "down", "j":
		m.move(1, len(p.Comments))
	case "c":
		m.comment.Reset()
		m.view = CommentFormView
	case "L":
		return m, m.actions.AddLike(p.ID)
	case "U":
		return m, m.actions.RemoveLike(p.ID)
	case "d":
		if m.cursor < len(p.Comments) {
			return m, m.actions.DeleteComment(p.ID, p.Comments[m.cursor].ID)
		}
	}
	return m, nil
}

func (m Model) postsView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Posts"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Welcome to the community"))
	b.WriteString("\n\n")

	posts := m.state.Post.Posts
	switch {
	case m.state.Post.Loading:
		b.WriteString(InfoStyle.Render("Loading..."))
	case len(posts) == 0:
		b.WriteString(ItemStyle.Render("No posts yet"))
	}
	for i, p := range posts {
		line := fmt.Sprintf("%s: %s  ♥ %d  💬 %d  %s", p.Name, p.Text, len(p.Likes), len(p.Comments), p.Date.Format("2006/01/02"))
		b.WriteString(m.entryLine(i, line))
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("enter discussion  •  n new post  •  L like  •  U unlike  •  d delete  •  r refresh  •  esc back"))
	return BoxStyle.Width(76).Render(b.String())
}

func (m Model) postView() string {
	var b strings.Builder

	p := m.state.Post.Post
	if p == nil {
		b.WriteString(InfoStyle.Render("Loading..."))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("esc back"))
		return BoxStyle.Width(76).Render(b.String())
	}

	b.WriteString(TitleStyle.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(ValueStyle.PaddingLeft(1).Render(p.Text))
	b.WriteString("\n")
	b.WriteString(InfoStyle.PaddingLeft(1).Render(fmt.Sprintf("Posted on %s  ♥ %d", p.Date.Format("2006/01/02"), len(p.Likes))))
	b.WriteString("\n\n")

	b.WriteString(LabelStyle.Render("Comments"))
	b.WriteString("\n")
	if len(p.Comments) == 0 {
		b.WriteString(ItemStyle.Render("No comments yet") + "\n")
	}
	for i, c := range p.Comments {
		b.WriteString(m.entryLine(i, fmt.Sprintf("%s: %s  %s", c.Name, c.Text, c.Date.Format("2006/01/02"))))
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("c comment  •  d delete comment  •  L like  •  U unlike  •  esc back"))
	return BoxStyle.Width(76).Render(b.String())
}
