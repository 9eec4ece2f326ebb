package tui

import (
	"fmt"

	"taskdeck/internal/models"
)

// renderDeleteDialog draws the confirmation shown before a task is
// removed. Nothing is sent to the server until the user confirms.
func renderDeleteDialog(st styles, task *models.Task, deleting bool) string {
	body := st.DialogTitle.Render("Delete Task") + "\n\n" +
		fmt.Sprintf("Are you sure you want to delete %q?\nThis action cannot be undone.", task.Title) + "\n\n"
	if deleting {
		body += st.FormSubmitted.Render("Deleting...")
	} else {
		body += st.Help.Render("[y] delete    [n] cancel")
	}
	return st.Dialog.Render(body)
}
