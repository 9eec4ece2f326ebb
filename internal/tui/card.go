package tui

import (
	"fmt"
	"strings"

	"taskdeck/internal/models"
)

const checkboxDone, checkboxPending = "[x]", "[ ]"

// renderTaskCard draws a single task. It is a pure function of the task
// and the selection state so it can be tested without a running program.
func renderTaskCard(st styles, task *models.Task, selected bool, width int) string {
	checkbox := checkboxPending
	titleStyle := st.Title
	if task.Completed {
		checkbox = checkboxDone
		titleStyle = st.TitleDone
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s", checkbox, titleStyle.Render(task.Title)))

	if description := task.DisplayDescription(); description != "" {
		b.WriteString("\n" + st.Description.Render(description))
	}
	b.WriteString("\n" + st.Meta.Render("Created "+task.CreatedAt.Format("Jan 2, 2006")))

	cardStyle := st.Card
	if selected {
		cardStyle = st.CardSelected
	}
	if width > 4 {
		cardStyle = cardStyle.Width(width - 2)
	}
	return cardStyle.Render(b.String())
}
