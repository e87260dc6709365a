package client

import (
	"context"
	"errors"

	"taskboard/models"
)

// Phase is the task-list session lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
)

// View names a filter over the in-memory task collection.
type View string

const (
	ViewAll          View = "all"
	ViewPending      View = "pending"
	ViewCompleted    View = "completed"
	ViewHighPriority View = "high-priority"
)

// Stats are the summary counts shown above the list.
type Stats struct {
	Total            int
	Completed        int
	Pending          int
	HighPriorityOpen int
}

// ErrNoSuchTask is returned for operations on an id the local state
// doesn't hold.
var ErrNoSuchTask = errors.New("no such task")

// ListState holds the signed-in user's tasks and drives every list
// interaction. It mirrors a single-threaded UI loop: one outstanding
// call at a time, so it is not safe for concurrent use.
//
// The server stays the source of truth after each mutation; local state
// is reconciled from the returned record rather than re-fetched.
type ListState struct {
	api     API
	confirm func(taskID string) bool

	phase     Phase
	tasks     []models.Task // newest first, matching server order
	formOpen  bool
	editingID string
	errMsg    string
}

// NewListState wires the state to an API and a delete-confirmation
// prompt. A nil confirm means every delete is confirmed.
func NewListState(api API, confirm func(taskID string) bool) *ListState {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &ListState{api: api, confirm: confirm}
}

// Load fetches the full task list and replaces local state wholesale.
// On failure the list is left empty and the error flag is set; there is
// no automatic retry.
func (s *ListState) Load(ctx context.Context) error {
	s.phase = PhaseLoading
	tasks, err := s.api.ListTasks(ctx)
	s.phase = PhaseReady
	if err != nil {
		s.tasks = nil
		s.errMsg = "Failed to fetch tasks"
		return err
	}
	s.tasks = tasks
	s.errMsg = ""
	return nil
}

func (s *ListState) Phase() Phase { return s.phase }

// Err returns the currently surfaced error message, if any.
func (s *ListState) Err() string { return s.errMsg }

// Tasks returns a copy of the current list.
func (s *ListState) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// FormOpen reports whether the create/edit form is showing.
func (s *ListState) FormOpen() bool { return s.formOpen }

// Editing returns the id of the task under edit, if any.
func (s *ListState) Editing() (string, bool) {
	return s.editingID, s.editingID != ""
}

// OpenForm shows the creation form.
func (s *ListState) OpenForm() { s.formOpen = true }

// CloseForm hides the form and abandons any edit in progress.
func (s *ListState) CloseForm() {
	s.formOpen = false
	s.editingID = ""
}

// Filter derives a view over the in-memory tasks. Pure; never touches
// the server.
func (s *ListState) Filter(view View) []models.Task {
	out := []models.Task{}
	for _, t := range s.tasks {
		switch view {
		case ViewCompleted:
			if t.Completed {
				out = append(out, t)
			}
		case ViewPending:
			if !t.Completed {
				out = append(out, t)
			}
		case ViewHighPriority:
			if t.Priority == models.PriorityHigh && !t.Completed {
				out = append(out, t)
			}
		default:
			out = append(out, t)
		}
	}
	return out
}

// Stats derives the summary counts from the in-memory tasks.
func (s *ListState) Stats() Stats {
	stats := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
			if t.Priority == models.PriorityHigh {
				stats.HighPriorityOpen++
			}
		}
	}
	return stats
}

// Create sends a creation request. On success the returned task is
// prepended, preserving newest-first order without a re-fetch, and the
// form closes. On failure the error propagates and state is untouched.
func (s *ListState) Create(ctx context.Context, draft models.TaskDraft) error {
	task, err := s.api.CreateTask(ctx, draft)
	if err != nil {
		return err
	}
	s.tasks = append([]models.Task{task}, s.tasks...)
	s.CloseForm()
	return nil
}

// ToggleComplete flips a task's completed flag on the server and
// replaces the local record with the server's. Concurrent toggles are
// not coordinated; the last response wins.
func (s *ListState) ToggleComplete(ctx context.Context, taskID string) error {
	i := s.indexOf(taskID)
	if i < 0 {
		return ErrNoSuchTask
	}

	next := !s.tasks[i].Completed
	task, err := s.api.UpdateTask(ctx, taskID, models.TaskPatch{Completed: &next})
	if err != nil {
		s.errMsg = "Failed to update task"
		return err
	}
	s.replace(taskID, task)
	s.errMsg = ""
	return nil
}

// BeginEdit marks a task as under edit and opens the form pre-populated
// with its current values. Local only.
func (s *ListState) BeginEdit(taskID string) (models.Task, error) {
	i := s.indexOf(taskID)
	if i < 0 {
		return models.Task{}, ErrNoSuchTask
	}
	s.editingID = taskID
	s.formOpen = true
	return s.tasks[i], nil
}

// CommitEdit sends the update for the task under edit. On success the
// local record is replaced and edit state clears; on failure the form
// stays open with the error propagated.
func (s *ListState) CommitEdit(ctx context.Context, patch models.TaskPatch) error {
	if s.editingID == "" {
		return errors.New("no task under edit")
	}

	task, err := s.api.UpdateTask(ctx, s.editingID, patch)
	if err != nil {
		return err
	}
	s.replace(s.editingID, task)
	s.CloseForm()
	return nil
}

// Delete asks for confirmation, then removes the task remotely and
// locally. Declining the prompt is a no-op. On failure the task stays
// and the error flag is set.
func (s *ListState) Delete(ctx context.Context, taskID string) error {
	if !s.confirm(taskID) {
		return nil
	}
	if err := s.api.DeleteTask(ctx, taskID); err != nil {
		s.errMsg = "Failed to delete task"
		return err
	}
	if i := s.indexOf(taskID); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
	s.errMsg = ""
	return nil
}

func (s *ListState) indexOf(taskID string) int {
	for i, t := range s.tasks {
		if t.ID.String() == taskID {
			return i
		}
	}
	return -1
}

func (s *ListState) replace(taskID string, task models.Task) {
	if i := s.indexOf(taskID); i >= 0 {
		s.tasks[i] = task
	}
}
