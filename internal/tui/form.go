package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/models"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
)

const (
	focusTitle = iota
	focusDescription
)

// form edits a task draft. The same form serves both creation and
// editing; Editing reports which of the two it is doing.
type form struct {
	title       textinput.Model
	description textarea.Model
	existing    *models.Task
	titleErr    string
	focus       int
	submitting  bool
}

func newForm(task *models.Task) *form {
	title := textinput.New()
	title.Placeholder = "What needs to be done?"
	title.CharLimit = maxTitleLength
	title.Focus()

	description := textarea.New()
	description.Placeholder = "Details (optional)"
	description.CharLimit = maxDescriptionLength
	description.SetHeight(4)

	f := &form{
		title:       title,
		description: description,
	}
	f.SetTask(task)
	return f
}

// SetTask resets the form to the given task, or to a blank draft when
// the task is nil. Validation state is discarded.
func (f *form) SetTask(task *models.Task) {
	f.existing = task
	f.titleErr = ""
	f.submitting = false
	f.setFocus(focusTitle)

	if task == nil {
		f.title.SetValue("")
		f.description.SetValue("")
		return
	}
	f.title.SetValue(task.Title)
	f.description.SetValue(task.DisplayDescription())
}

// Editing returns the task being edited, or nil when creating.
func (f *form) Editing() *models.Task {
	return f.existing
}

func (f *form) Submitting() bool {
	return f.submitting
}

func (f *form) SetSubmitting(submitting bool) {
	f.submitting = submitting
}

func (f *form) NextField() {
	if f.focus == focusTitle {
		f.setFocus(focusDescription)
	} else {
		f.setFocus(focusTitle)
	}
}

func (f *form) setFocus(focus int) {
	f.focus = focus
	if focus == focusTitle {
		f.title.Focus()
		f.description.Blur()
	} else {
		f.title.Blur()
		f.description.Focus()
	}
}

// Update routes input to the focused field. Typing in the title clears
// any validation error from a previous submit attempt.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	if f.submitting {
		return nil
	}

	var cmd tea.Cmd
	if f.focus == focusTitle {
		before := f.title.Value()
		f.title, cmd = f.title.Update(msg)
		if f.title.Value() != before {
			f.titleErr = ""
		}
	} else {
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

// Submit validates the draft and returns it. A false result means the
// form stays open with an inline error.
func (f *form) Submit() (models.TaskDraft, bool) {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		f.titleErr = "Title is required"
		return models.TaskDraft{}, false
	}
	if len([]rune(title)) > maxTitleLength {
		f.titleErr = fmt.Sprintf("Title must be at most %d characters", maxTitleLength)
		return models.TaskDraft{}, false
	}

	return models.TaskDraft{
		Title:       title,
		Description: strings.TrimSpace(f.description.Value()),
	}, true
}

func (f *form) View(st styles) string {
	heading := "New Task"
	action := "create"
	submittingLabel := "Creating..."
	if f.existing != nil {
		heading = "Edit Task"
		action = "save"
		submittingLabel = "Updating..."
	}

	var b strings.Builder
	b.WriteString(st.DialogTitle.Render(heading) + "\n\n")

	b.WriteString(st.FormLabel.Render("Title") + " " +
		st.FormCounter.Render(fmt.Sprintf("%d/%d", len([]rune(f.title.Value())), maxTitleLength)) + "\n")
	b.WriteString(f.title.View() + "\n")
	if f.titleErr != "" {
		b.WriteString(st.FormError.Render(f.titleErr) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(st.FormLabel.Render("Description") + " " +
		st.FormCounter.Render(fmt.Sprintf("%d/%d", len([]rune(f.description.Value())), maxDescriptionLength)) + "\n")
	b.WriteString(f.description.View() + "\n\n")

	if f.submitting {
		b.WriteString(st.FormSubmitted.Render(submittingLabel))
	} else {
		b.WriteString(st.Help.Render(fmt.Sprintf("[ctrl+s] %s    [tab] next field    [esc] cancel", action)))
	}
	return st.Dialog.Render(b.String())
}
