package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/models"
)

type fakeTaskAPI struct {
	tasks      []models.Task
	err        error
	nextID     int64
	lastFilter models.Filter
	deleted    []int64
}

func newFakeTaskAPI(tasks ...models.Task) *fakeTaskAPI {
	return &fakeTaskAPI{tasks: tasks, nextID: 100}
}

func (f *fakeTaskAPI) GetTasks(_ context.Context, _ string, filter models.Filter) ([]models.Task, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return models.FilterTasks(f.tasks, filter), nil
}

func (f *fakeTaskAPI) CreateTask(_ context.Context, userID string, draft models.TaskDraft) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	task := models.Task{ID: f.nextID, UserID: userID, Title: draft.Title}
	if draft.Description != "" {
		description := draft.Description
		task.Description = &description
	}
	return &task, nil
}

func (f *fakeTaskAPI) UpdateTask(_ context.Context, userID string, taskID int64, draft models.TaskDraft) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	task := models.Task{ID: taskID, UserID: userID, Title: draft.Title}
	if draft.Description != "" {
		description := draft.Description
		task.Description = &description
	}
	return &task, nil
}

func (f *fakeTaskAPI) DeleteTask(_ context.Context, _ string, taskID int64) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, taskID)
	return &models.Task{ID: taskID}, nil
}

func (f *fakeTaskAPI) ToggleComplete(_ context.Context, userID string, taskID int64) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			toggled := f.tasks[i]
			toggled.Completed = !toggled.Completed
			return &toggled, nil
		}
	}
	return &models.Task{ID: taskID, UserID: userID, Completed: true}, nil
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testTasks() []models.Task {
	return []models.Task{
		{ID: 3, Title: "newest"},
		{ID: 2, Title: "middle", Completed: true},
		{ID: 1, Title: "oldest"},
	}
}

func loadedList(t *testing.T, fake *fakeTaskAPI) *TaskList {
	t.Helper()

	list := NewTaskList(fake, "user-1")
	cmd := list.fetchTasks()
	list, _ = list.Update(cmd())
	if list.loading {
		t.Fatal("expected loading to finish")
	}
	return list
}

func TestLoadReplacesTasks(t *testing.T) {
	t.Parallel()

	list := loadedList(t, newFakeTaskAPI(testTasks()...))
	if len(list.tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(list.tasks))
	}
	if list.tasks[0].ID != 3 {
		t.Errorf("got first task id %d, want 3", list.tasks[0].ID)
	}
}

func TestLoadFailureShowsBanner(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI()
	fake.err = errors.New("connection refused")

	list := NewTaskList(fake, "user-1")
	cmd := list.fetchTasks()
	list, _ = list.Update(cmd())

	if list.loading {
		t.Error("expected loading to finish on failure")
	}
	if !strings.Contains(list.errMsg, "Failed to load tasks") {
		t.Errorf("got error banner %q", list.errMsg)
	}
}

func TestStaleFetchResponseIsDropped(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI(testTasks()...)
	list := NewTaskList(fake, "user-1")

	firstCmd := list.fetchTasks()
	firstMsg := firstCmd()

	fake.tasks = []models.Task{{ID: 9, Title: "fresh"}}
	secondCmd := list.fetchTasks()
	secondMsg := secondCmd()

	// The newer response lands first; the older one must not clobber it.
	list, _ = list.Update(secondMsg)
	list, _ = list.Update(firstMsg)

	if len(list.tasks) != 1 || list.tasks[0].ID != 9 {
		t.Errorf("got tasks %v, want only the fresh task", list.tasks)
	}
}

func TestReloadIsIdempotent(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI(testTasks()...)
	list := loadedList(t, fake)

	list, cmd := list.Update(keyRune('r'))
	list, _ = list.Update(runBatch(cmd))

	if len(list.tasks) != 3 {
		t.Errorf("got %d tasks after reload, want 3", len(list.tasks))
	}
}

func TestFilterSwitchRefetches(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI(testTasks()...)
	list := loadedList(t, fake)

	list, cmd := list.Update(keyRune('2'))
	list, _ = list.Update(runBatch(cmd))

	if fake.lastFilter != models.FilterPending {
		t.Errorf("got filter %q sent to the server, want %q", fake.lastFilter, models.FilterPending)
	}
	if got := len(list.visibleTasks()); got != 2 {
		t.Errorf("got %d visible tasks, want 2", got)
	}
}

func TestCreateTaskPrependsAndClosesForm(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI(testTasks()...)
	list := loadedList(t, fake)

	list, _ = list.Update(keyRune('a'))
	if list.mode != modeAdding {
		t.Fatalf("got mode %d, want adding", list.mode)
	}

	list.form.title.SetValue("buy milk")
	list, cmd := list.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !list.busy {
		t.Error("expected the list to be busy while creating")
	}

	list, _ = list.Update(runBatch(cmd))
	if list.mode != modeBrowsing {
		t.Errorf("got mode %d after creation, want browsing", list.mode)
	}
	if list.tasks[0].Title != "buy milk" {
		t.Errorf("got first task %q, want the new one first", list.tasks[0].Title)
	}
	if list.cursor != 0 {
		t.Errorf("got cursor %d, want 0", list.cursor)
	}
}

func TestCreateFailureKeepsFormOpen(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI(testTasks()...)
	list := loadedList(t, fake)
	list, _ = list.Update(keyRune('a'))
	list.form.title.SetValue("buy milk")

	fake.err = errors.New("server unavailable")
	list, cmd := list.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	list, _ = list.Update(runBatch(cmd))

	if list.mode != modeAdding {
		t.Error("expected the form to stay open after a failure")
	}
	if list.form.Submitting() {
		t.Error("expected the form to leave the submitting state")
	}
	if !strings.Contains(list.errMsg, "Failed to add task") {
		t.Errorf("got error banner %q", list.errMsg)
	}
	if len(list.tasks) != 3 {
		t.Errorf("got %d tasks, want the collection untouched", len(list.tasks))
	}
}

func TestInvalidFormSubmitSendsNothing(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI()
	list := loadedList(t, fake)
	list, _ = list.Update(keyRune('a'))

	list, cmd := list.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("expected no command for an invalid draft")
	}
	if list.form.titleErr == "" {
		t.Error("expected an inline title error")
	}
}

func TestUpdateReplacesOnlyTargetTask(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI(testTasks()...)
	list := loadedList(t, fake)

	list.cursor = 1 // task id 2
	list, _ = list.Update(keyRune('e'))
	if list.mode != modeEditing {
		t.Fatalf("got mode %d, want editing", list.mode)
	}

	list.form.title.SetValue("renamed")
	list, cmd := list.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	list, _ = list.Update(runBatch(cmd))

	wantTitles := []string{"newest", "renamed", "oldest"}
	for i, want := range wantTitles {
		if list.tasks[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, list.tasks[i].Title, want)
		}
	}
}

func TestToggleAppliesOnlyAfterConfirmation(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI(testTasks()...)
	list := loadedList(t, fake)

	list, cmd := list.Update(tea.KeyMsg{Type: tea.KeySpace})
	if list.tasks[0].Completed {
		t.Error("task flipped before the server confirmed")
	}

	list, _ = list.Update(runBatch(cmd))
	if !list.tasks[0].Completed {
		t.Error("task not flipped after confirmation")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI(testTasks()...)
	list := loadedList(t, fake)

	list, _ = list.Update(keyRune('d'))
	if list.mode != modeConfirmingDelete {
		t.Fatalf("got mode %d, want confirming delete", list.mode)
	}
	if len(fake.deleted) != 0 {
		t.Fatal("delete sent before confirmation")
	}

	list, cmd := list.Update(keyRune('y'))
	list, _ = list.Update(runBatch(cmd))

	if len(fake.deleted) != 1 || fake.deleted[0] != 3 {
		t.Errorf("got deleted ids %v, want [3]", fake.deleted)
	}
	if len(list.tasks) != 2 {
		t.Errorf("got %d tasks, want 2", len(list.tasks))
	}
	if list.mode != modeBrowsing {
		t.Errorf("got mode %d after deletion, want browsing", list.mode)
	}
}

func TestDeleteCancelIsSideEffectFree(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI(testTasks()...)
	list := loadedList(t, fake)

	list, _ = list.Update(keyRune('d'))
	list, cmd := list.Update(keyRune('n'))

	if cmd != nil {
		t.Error("expected no command on cancel")
	}
	if list.mode != modeBrowsing {
		t.Errorf("got mode %d after cancel, want browsing", list.mode)
	}
	if len(fake.deleted) != 0 {
		t.Error("delete sent despite cancel")
	}
	if len(list.tasks) != 3 {
		t.Errorf("got %d tasks, want the collection untouched", len(list.tasks))
	}
}

func TestEscClosesFormWithoutSaving(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI(testTasks()...)
	list := loadedList(t, fake)

	list, _ = list.Update(keyRune('e'))
	list.form.title.SetValue("discarded")
	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if list.mode != modeBrowsing {
		t.Errorf("got mode %d, want browsing", list.mode)
	}
	if list.tasks[0].Title != "newest" {
		t.Errorf("got title %q, want the original", list.tasks[0].Title)
	}
}

func TestEmptyStatesPerFilter(t *testing.T) {
	t.Parallel()

	list := loadedList(t, newFakeTaskAPI())
	if view := list.View(); !strings.Contains(view, "Press 'a'") && !strings.Contains(view, "press 'a'") {
		t.Errorf("expected the add hint in the empty view")
	}

	list.filter = models.FilterPending
	if view := list.View(); !strings.Contains(view, "No pending tasks") {
		t.Error("expected the pending empty state")
	}

	list.filter = models.FilterCompleted
	if view := list.View(); !strings.Contains(view, "No completed tasks") {
		t.Error("expected the completed empty state")
	}
}

func TestTabsCountWholeCollection(t *testing.T) {
	t.Parallel()

	fake := newFakeTaskAPI(testTasks()...)
	list := loadedList(t, fake)
	list.filter = models.FilterCompleted

	view := list.renderTabs()
	for _, want := range []string{"All (3)", "Pending (2)", "Completed (1)"} {
		if !strings.Contains(view, want) {
			t.Errorf("tabs %q missing %q", view, want)
		}
	}
}

// runBatch executes the commands produced by Update and returns the
// first message relevant to the list, skipping spinner ticks.
func runBatch(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			if sub == nil {
				continue
			}
			subMsg := sub()
			switch subMsg.(type) {
			case tasksLoadedMsg, loadFailedMsg, taskCreatedMsg,
				taskUpdatedMsg, taskToggledMsg, taskDeletedMsg, opFailedMsg:
				return subMsg
			}
		}
		return nil
	}
	return msg
}
