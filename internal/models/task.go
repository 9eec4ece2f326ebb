package models

import "time"

// Filter selects a slice of the task collection by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterPending || f == FilterCompleted
}

// Matches reports whether the task belongs to the filtered view.
func (f Filter) Matches(t *Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// FilterTasks returns the tasks selected by f, preserving order.
func FilterTasks(tasks []Task, f Filter) []Task {
	if f == FilterAll {
		return tasks
	}
	filtered := make([]Task, 0, len(tasks))
	for i := range tasks {
		if f.Matches(&tasks[i]) {
			filtered = append(filtered, tasks[i])
		}
	}
	return filtered
}

// TaskCounts holds per-filter counts computed from the full,
// unfiltered collection.
type TaskCounts struct {
	All       int
	Pending   int
	Completed int
}

func CountTasks(tasks []Task) TaskCounts {
	counts := TaskCounts{All: len(tasks)}
	for i := range tasks {
		if tasks[i].Completed {
			counts.Completed++
		} else {
			counts.Pending++
		}
	}
	return counts
}

type Task struct {
	ID          int64
	UserID      string
	Title       string
	Description *string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayDescription returns the description for rendering; an absent
// and an empty description are the same thing.
func (t *Task) DisplayDescription() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// TaskDraft is the validated title/description pair produced by the
// task form for both creation and editing.
type TaskDraft struct {
	Title       string
	Description string
}
