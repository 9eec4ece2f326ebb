package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/api"
)

type logoutDoneMsg struct{ err error }

// Dashboard is the top-level program model. It owns the header and the
// sign-out flow and delegates everything else to the task list.
type Dashboard struct {
	list    *TaskList
	user    api.User
	signOut func(context.Context) error

	keys       keymap
	styles     styles
	width      int
	height     int
	loggingOut bool
}

// NewDashboard wires the task list for the signed-in user. signOut
// revokes the server session and clears the local one.
func NewDashboard(taskAPI api.TaskAPI, user api.User, signOut func(context.Context) error) *Dashboard {
	return &Dashboard{
		list:    NewTaskList(taskAPI, user.ID),
		user:    user,
		signOut: signOut,
		keys:    newKeymap(),
		styles:  newStyles(),
	}
}

func (d *Dashboard) Init() tea.Cmd {
	return d.list.Init()
}

func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width, d.height = msg.Width, msg.Height
		d.list.SetSize(msg.Width, msg.Height-2)
		return d, nil

	case logoutDoneMsg:
		// The local session is cleared either way, so quit.
		return d, tea.Quit

	case tea.KeyMsg:
		if d.loggingOut {
			return d, nil
		}
		if !d.list.ModalOpen() {
			switch {
			case key.Matches(msg, d.keys.Quit):
				return d, tea.Quit
			case key.Matches(msg, d.keys.Logout):
				d.loggingOut = true
				return d, d.logout()
			}
		}
	}

	var cmd tea.Cmd
	d.list, cmd = d.list.Update(msg)
	return d, cmd
}

func (d *Dashboard) logout() tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: d.signOut(context.Background())}
	}
}

func (d *Dashboard) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		d.styles.Header.Render("taskdeck"),
		d.styles.UserName.Render("signed in as "+d.user.Name),
	)
	if d.loggingOut {
		return header + "\n\n" + d.styles.StatusLine.Render("Signing out...")
	}
	return header + "\n" + d.list.View()
}
