package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/models"
)

func TestFormRejectsEmptyTitle(t *testing.T) {
	t.Parallel()

	f := newForm(nil)
	if _, ok := f.Submit(); ok {
		t.Fatal("expected an empty title to be rejected")
	}
	if f.titleErr != "Title is required" {
		t.Errorf("got title error %q", f.titleErr)
	}

	f.title.SetValue("   ")
	if _, ok := f.Submit(); ok {
		t.Error("expected a whitespace-only title to be rejected")
	}
}

func TestFormTrimsOnSubmit(t *testing.T) {
	t.Parallel()

	f := newForm(nil)
	f.title.SetValue("  buy milk  ")
	f.description.SetValue("  two litres  ")

	draft, ok := f.Submit()
	if !ok {
		t.Fatal("expected a valid draft")
	}
	if draft.Title != "buy milk" {
		t.Errorf("got title %q", draft.Title)
	}
	if draft.Description != "two litres" {
		t.Errorf("got description %q", draft.Description)
	}
}

func TestFormAcceptsMaxLengthTitle(t *testing.T) {
	t.Parallel()

	f := newForm(nil)
	f.title.SetValue(strings.Repeat("x", maxTitleLength))

	if _, ok := f.Submit(); !ok {
		t.Errorf("expected a %d character title to be accepted", maxTitleLength)
	}
}

func TestFormRejectsOverlongTitle(t *testing.T) {
	t.Parallel()

	// Lift the input cap so the submit-time check is what rejects; the
	// validation must hold even for values set outside the keyboard path.
	f := newForm(nil)
	f.title.CharLimit = 0
	f.title.SetValue(strings.Repeat("x", maxTitleLength+1))

	if _, ok := f.Submit(); ok {
		t.Fatalf("expected a %d character title to be rejected", maxTitleLength+1)
	}
	if !strings.Contains(f.titleErr, "at most") {
		t.Errorf("got title error %q, want the length error", f.titleErr)
	}
}

func TestFormInputCapsTitleLength(t *testing.T) {
	t.Parallel()

	f := newForm(nil)
	if f.title.CharLimit != maxTitleLength {
		t.Errorf("got title char limit %d, want %d", f.title.CharLimit, maxTitleLength)
	}
	if f.description.CharLimit != maxDescriptionLength {
		t.Errorf("got description char limit %d, want %d", f.description.CharLimit, maxDescriptionLength)
	}
}

func TestFormTypingClearsTitleError(t *testing.T) {
	t.Parallel()

	f := newForm(nil)
	_, _ = f.Submit()
	if f.titleErr == "" {
		t.Fatal("expected a title error before typing")
	}

	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if f.titleErr != "" {
		t.Errorf("got title error %q after typing, want none", f.titleErr)
	}
}

func TestFormSetTaskResetsState(t *testing.T) {
	t.Parallel()

	description := "old details"
	task := &models.Task{ID: 7, Title: "old title", Description: &description}

	f := newForm(nil)
	f.title.SetValue("draft in progress")
	_, _ = f.Submit()

	f.SetTask(task)
	if f.title.Value() != "old title" {
		t.Errorf("got title %q, want the task's", f.title.Value())
	}
	if f.description.Value() != "old details" {
		t.Errorf("got description %q, want the task's", f.description.Value())
	}
	if f.titleErr != "" {
		t.Error("expected validation state to be discarded")
	}
	if f.Editing() == nil || f.Editing().ID != 7 {
		t.Error("expected the form to report the task being edited")
	}

	f.SetTask(nil)
	if f.title.Value() != "" || f.Editing() != nil {
		t.Error("expected a blank create form")
	}
}

func TestFormSubmittingBlocksInput(t *testing.T) {
	t.Parallel()

	f := newForm(nil)
	f.title.SetValue("pending")
	f.SetSubmitting(true)

	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	if f.title.Value() != "pending" {
		t.Errorf("got title %q, want input ignored while submitting", f.title.Value())
	}
}
