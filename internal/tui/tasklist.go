// Package tui implements the interactive task dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/api"
	"taskdeck/internal/models"
)

type mode int

const (
	modeBrowsing mode = iota
	modeAdding
	modeEditing
	modeConfirmingDelete
)

const skeletonRows = 6

type (
	tasksLoadedMsg struct {
		seq   uint64
		tasks []models.Task
	}
	loadFailedMsg struct {
		seq uint64
		err error
	}
	taskCreatedMsg struct{ task models.Task }
	taskUpdatedMsg struct{ task models.Task }
	taskToggledMsg struct{ task models.Task }
	taskDeletedMsg struct{ id int64 }
	opFailedMsg    struct {
		op  string
		err error
	}
	titleCopiedMsg struct{ title string }
)

// TaskList coordinates the task collection, the active filter, the
// modal editing state and every server round trip. Mutations apply
// only after the server confirms them.
type TaskList struct {
	api    api.TaskAPI
	userID string

	tasks   []models.Task
	filter  models.Filter
	loading bool

	mode     mode
	form     *form
	deleting *models.Task
	busy     bool

	cursor int

	// fetchSeq stamps every list fetch; responses carrying a stale
	// sequence are dropped so a slow fetch for a previous filter
	// cannot overwrite the current one.
	fetchSeq uint64

	errMsg    string
	statusMsg string

	spinner spinner.Model
	keys    keymap
	styles  styles
	width   int
	height  int
}

func NewTaskList(taskAPI api.TaskAPI, userID string) *TaskList {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &TaskList{
		api:     taskAPI,
		userID:  userID,
		filter:  models.FilterAll,
		loading: true,
		spinner: sp,
		keys:    newKeymap(),
		styles:  newStyles(),
	}
}

func (l *TaskList) Init() tea.Cmd {
	return tea.Batch(l.spinner.Tick, l.fetchTasks())
}

// ModalOpen reports whether a form or dialog currently captures input.
func (l *TaskList) ModalOpen() bool {
	return l.mode != modeBrowsing
}

func (l *TaskList) SetSize(width, height int) {
	l.width, l.height = width, height
}

func (l *TaskList) fetchTasks() tea.Cmd {
	l.loading = true
	l.fetchSeq++
	seq := l.fetchSeq
	filter := l.filter
	return func() tea.Msg {
		tasks, err := l.api.GetTasks(context.Background(), l.userID, filter)
		if err != nil {
			return loadFailedMsg{seq: seq, err: err}
		}
		return tasksLoadedMsg{seq: seq, tasks: tasks}
	}
}

func (l *TaskList) createTask(draft models.TaskDraft) tea.Cmd {
	return func() tea.Msg {
		task, err := l.api.CreateTask(context.Background(), l.userID, draft)
		if err != nil {
			return opFailedMsg{op: "add", err: err}
		}
		return taskCreatedMsg{task: *task}
	}
}

func (l *TaskList) updateTask(id int64, draft models.TaskDraft) tea.Cmd {
	return func() tea.Msg {
		task, err := l.api.UpdateTask(context.Background(), l.userID, id, draft)
		if err != nil {
			return opFailedMsg{op: "update", err: err}
		}
		return taskUpdatedMsg{task: *task}
	}
}

func (l *TaskList) toggleTask(id int64) tea.Cmd {
	return func() tea.Msg {
		task, err := l.api.ToggleComplete(context.Background(), l.userID, id)
		if err != nil {
			return opFailedMsg{op: "update", err: err}
		}
		return taskToggledMsg{task: *task}
	}
}

func (l *TaskList) deleteTask(id int64) tea.Cmd {
	return func() tea.Msg {
		if _, err := l.api.DeleteTask(context.Background(), l.userID, id); err != nil {
			return opFailedMsg{op: "delete", err: err}
		}
		return taskDeletedMsg{id: id}
	}
}

func copyTitle(title string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(title); err != nil {
			return opFailedMsg{op: "copy", err: err}
		}
		return titleCopiedMsg{title: title}
	}
}

func (l *TaskList) Update(msg tea.Msg) (*TaskList, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.SetSize(msg.Width, msg.Height)
		return l, nil

	case spinner.TickMsg:
		if !l.loading && !l.busy {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd

	case tasksLoadedMsg:
		if msg.seq != l.fetchSeq {
			return l, nil
		}
		l.loading = false
		l.errMsg = ""
		l.tasks = msg.tasks
		l.clampCursor()
		return l, nil

	case loadFailedMsg:
		if msg.seq != l.fetchSeq {
			return l, nil
		}
		l.loading = false
		l.errMsg = "Failed to load tasks: " + msg.err.Error()
		return l, nil

	case taskCreatedMsg:
		l.busy = false
		l.tasks = append([]models.Task{msg.task}, l.tasks...)
		l.closeModal()
		l.cursor = 0
		l.statusMsg = "Task added"
		return l, nil

	case taskUpdatedMsg:
		l.busy = false
		l.replaceTask(msg.task)
		l.closeModal()
		l.statusMsg = "Task updated"
		return l, nil

	case taskToggledMsg:
		l.busy = false
		l.replaceTask(msg.task)
		return l, nil

	case taskDeletedMsg:
		l.busy = false
		l.removeTask(msg.id)
		l.closeModal()
		l.clampCursor()
		l.statusMsg = "Task deleted"
		return l, nil

	case opFailedMsg:
		l.busy = false
		if l.form != nil {
			l.form.SetSubmitting(false)
		}
		l.errMsg = fmt.Sprintf("Failed to %s task: %s", msg.op, msg.err.Error())
		return l, nil

	case titleCopiedMsg:
		l.statusMsg = fmt.Sprintf("Copied %q", msg.title)
		return l, nil

	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	return l, nil
}

func (l *TaskList) handleKey(msg tea.KeyMsg) (*TaskList, tea.Cmd) {
	switch l.mode {
	case modeAdding, modeEditing:
		return l.handleFormKey(msg)
	case modeConfirmingDelete:
		return l.handleConfirmKey(msg)
	}
	return l.handleBrowsingKey(msg)
}

func (l *TaskList) handleFormKey(msg tea.KeyMsg) (*TaskList, tea.Cmd) {
	if l.busy {
		return l, nil
	}

	switch {
	case key.Matches(msg, l.keys.Cancel):
		l.closeModal()
		return l, nil

	case key.Matches(msg, l.keys.NextField):
		l.form.NextField()
		return l, nil

	case key.Matches(msg, l.keys.Submit):
		draft, ok := l.form.Submit()
		if !ok {
			return l, nil
		}
		l.busy = true
		l.form.SetSubmitting(true)
		if editing := l.form.Editing(); editing != nil {
			return l, tea.Batch(l.spinner.Tick, l.updateTask(editing.ID, draft))
		}
		return l, tea.Batch(l.spinner.Tick, l.createTask(draft))
	}

	return l, l.form.Update(msg)
}

func (l *TaskList) handleConfirmKey(msg tea.KeyMsg) (*TaskList, tea.Cmd) {
	if l.busy {
		return l, nil
	}

	switch {
	case key.Matches(msg, l.keys.Confirm):
		l.busy = true
		return l, tea.Batch(l.spinner.Tick, l.deleteTask(l.deleting.ID))
	case key.Matches(msg, l.keys.Deny):
		l.closeModal()
	}
	return l, nil
}

func (l *TaskList) handleBrowsingKey(msg tea.KeyMsg) (*TaskList, tea.Cmd) {
	l.statusMsg = ""

	switch {
	case key.Matches(msg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}

	case key.Matches(msg, l.keys.Down):
		if l.cursor < len(l.visibleTasks())-1 {
			l.cursor++
		}

	case key.Matches(msg, l.keys.Add):
		l.mode = modeAdding
		l.form = newForm(nil)

	case key.Matches(msg, l.keys.Edit):
		if task := l.selectedTask(); task != nil {
			l.mode = modeEditing
			l.form = newForm(task)
		}

	case key.Matches(msg, l.keys.Delete):
		if task := l.selectedTask(); task != nil {
			l.mode = modeConfirmingDelete
			l.deleting = task
		}

	case key.Matches(msg, l.keys.Toggle):
		if task := l.selectedTask(); task != nil && !l.busy {
			l.busy = true
			return l, tea.Batch(l.spinner.Tick, l.toggleTask(task.ID))
		}

	case key.Matches(msg, l.keys.Copy):
		if task := l.selectedTask(); task != nil {
			return l, copyTitle(task.Title)
		}

	case key.Matches(msg, l.keys.Refresh):
		return l, tea.Batch(l.spinner.Tick, l.fetchTasks())

	case key.Matches(msg, l.keys.NextFilter):
		return l.setFilter(nextFilter(l.filter))

	case key.Matches(msg, l.keys.FilterAll):
		return l.setFilter(models.FilterAll)

	case key.Matches(msg, l.keys.FilterPending):
		return l.setFilter(models.FilterPending)

	case key.Matches(msg, l.keys.FilterCompleted):
		return l.setFilter(models.FilterCompleted)

	case key.Matches(msg, l.keys.Dismiss):
		l.errMsg = ""
	}

	return l, nil
}

// setFilter switches the active tab and refetches; the skeleton
// replaces the list until the fresh fetch lands.
func (l *TaskList) setFilter(filter models.Filter) (*TaskList, tea.Cmd) {
	if filter == l.filter {
		return l, nil
	}
	l.filter = filter
	l.cursor = 0
	return l, tea.Batch(l.spinner.Tick, l.fetchTasks())
}

func nextFilter(filter models.Filter) models.Filter {
	switch filter {
	case models.FilterAll:
		return models.FilterPending
	case models.FilterPending:
		return models.FilterCompleted
	default:
		return models.FilterAll
	}
}

func (l *TaskList) closeModal() {
	l.mode = modeBrowsing
	l.form = nil
	l.deleting = nil
}

func (l *TaskList) visibleTasks() []models.Task {
	return models.FilterTasks(l.tasks, l.filter)
}

func (l *TaskList) selectedTask() *models.Task {
	visible := l.visibleTasks()
	if l.cursor < 0 || l.cursor >= len(visible) {
		return nil
	}
	return &visible[l.cursor]
}

func (l *TaskList) replaceTask(task models.Task) {
	for i := range l.tasks {
		if l.tasks[i].ID == task.ID {
			l.tasks[i] = task
			return
		}
	}
}

func (l *TaskList) removeTask(id int64) {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			return
		}
	}
}

func (l *TaskList) clampCursor() {
	visible := len(l.visibleTasks())
	if visible == 0 {
		l.cursor = 0
		return
	}
	if l.cursor >= visible {
		l.cursor = visible - 1
	}
}

func (l *TaskList) View() string {
	switch l.mode {
	case modeAdding, modeEditing:
		return l.overlay(l.form.View(l.styles))
	case modeConfirmingDelete:
		return l.overlay(renderDeleteDialog(l.styles, l.deleting, l.busy))
	}

	var b strings.Builder
	b.WriteString(l.renderTabs() + "\n")

	if l.errMsg != "" {
		b.WriteString(l.styles.ErrorBanner.Render(l.errMsg+"  (esc to dismiss)") + "\n")
	}
	if l.statusMsg != "" {
		b.WriteString(l.styles.StatusLine.Render(l.statusMsg) + "\n")
	}

	switch {
	case l.loading:
		b.WriteString(l.renderSkeleton())
	case len(l.visibleTasks()) == 0:
		b.WriteString(l.renderEmptyState())
	default:
		for i, task := range l.visibleTasks() {
			b.WriteString(renderTaskCard(l.styles, &task, i == l.cursor, l.width) + "\n")
		}
	}

	b.WriteString("\n" + l.styles.Help.Render(
		"a add · e edit · d delete · space toggle · y copy · tab filter · r refresh · L log out · q quit"))
	return b.String()
}

// renderTabs shows the three filters with counts taken from the whole
// collection, not the filtered view.
func (l *TaskList) renderTabs() string {
	counts := models.CountTasks(l.tasks)

	tab := func(filter models.Filter, label string, count int) string {
		text := fmt.Sprintf("%s (%d)", label, count)
		if filter == l.filter {
			return l.styles.TabActive.Render(text)
		}
		return l.styles.TabInactive.Render(text)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		tab(models.FilterAll, "All", counts.All),
		tab(models.FilterPending, "Pending", counts.Pending),
		tab(models.FilterCompleted, "Completed", counts.Completed),
	)
	if l.loading || l.busy {
		row += " " + l.spinner.View()
	}
	return row
}

func (l *TaskList) renderSkeleton() string {
	var b strings.Builder
	for i := 0; i < skeletonRows; i++ {
		b.WriteString(l.styles.Skeleton.Render("░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░") + "\n")
	}
	return b.String()
}

func (l *TaskList) renderEmptyState() string {
	var text string
	switch l.filter {
	case models.FilterPending:
		text = "No pending tasks. Nice work!"
	case models.FilterCompleted:
		text = "No completed tasks yet."
	default:
		text = "No tasks yet. Press 'a' to add your first task."
	}
	return l.styles.EmptyState.Render(text) + "\n"
}

func (l *TaskList) overlay(dialog string) string {
	if l.width == 0 || l.height == 0 {
		return dialog
	}
	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, dialog)
}
