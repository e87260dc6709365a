package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"taskboard/models"
	"taskboard/store"
)

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		draft   models.TaskDraft
		wantErr bool
	}{
		{
			name:  "Valid title",
			draft: models.TaskDraft{Title: "buy milk"},
		},
		{
			name:    "Empty title",
			draft:   models.TaskDraft{Title: ""},
			wantErr: true,
		},
		{
			name:    "Whitespace-only title",
			draft:   models.TaskDraft{Title: "   \t "},
			wantErr: true,
		},
		{
			name:  "Title is trimmed",
			draft: models.TaskDraft{Title: "  buy milk  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryTaskStore()
			owner := uuid.NewString()

			task, err := s.Create(context.Background(), owner, tt.draft)
			if tt.wantErr {
				var verr *store.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Create() error = %v, want ValidationError", err)
				}
				tasks, _ := s.List(context.Background(), owner)
				if len(tasks) != 0 {
					t.Errorf("failed Create left %d records behind", len(tasks))
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() unexpected error: %v", err)
			}
			if task.Title != "buy milk" {
				t.Errorf("Title = %q, want %q", task.Title, "buy milk")
			}
			if task.Completed {
				t.Error("new task should not be completed")
			}
		})
	}
}

func TestCreateDefaultsPriorityToMedium(t *testing.T) {
	tests := []struct {
		name     string
		priority string
		want     string
	}{
		{"Omitted", "", models.PriorityMedium},
		{"Low kept", "low", models.PriorityLow},
		{"High kept", "high", models.PriorityHigh},
		{"Out of enum", "urgent", models.PriorityMedium},
	}

	s := store.NewMemoryTaskStore()
	owner := uuid.NewString()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := s.Create(context.Background(), owner, models.TaskDraft{Title: "t", Priority: tt.priority})
			if err != nil {
				t.Fatalf("Create() error: %v", err)
			}
			if task.Priority != tt.want {
				t.Errorf("Priority = %q, want %q", task.Priority, tt.want)
			}
		})
	}
}

func TestCreateDueDateDegradesSilently(t *testing.T) {
	s := store.NewMemoryTaskStore()
	owner := uuid.NewString()

	task, err := s.Create(context.Background(), owner, models.TaskDraft{Title: "t", DueDate: "not a date"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if task.DueDate != nil {
		t.Errorf("unparseable due date stored as %v, want nil", task.DueDate)
	}

	task, err = s.Create(context.Background(), owner, models.TaskDraft{Title: "t", DueDate: "2026-09-15"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if task.DueDate == nil || !task.DueDate.Equal(want) {
		t.Errorf("DueDate = %v, want %v", task.DueDate, want)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	s := store.NewMemoryTaskStore()
	ownerA := uuid.NewString()
	ownerB := uuid.NewString()

	task, err := s.Create(context.Background(), ownerA, models.TaskDraft{Title: "a's task"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	tasks, err := s.List(context.Background(), ownerB)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("List(B) returned %d tasks owned by A", len(tasks))
	}

	completed := true
	_, err = s.Update(context.Background(), ownerB, task.ID.String(), models.TaskPatch{Completed: &completed})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update by non-owner: error = %v, want ErrNotFound", err)
	}

	if err := s.Delete(context.Background(), ownerB, task.ID.String()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete by non-owner: error = %v, want ErrNotFound", err)
	}

	// The owner still sees the untouched record.
	tasks, _ = s.List(context.Background(), ownerA)
	if len(tasks) != 1 || tasks[0].Completed {
		t.Errorf("owner's task was affected by another owner's calls: %+v", tasks)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := store.NewMemoryTaskStore()
	owner := uuid.NewString()

	t1, _ := s.Create(context.Background(), owner, models.TaskDraft{Title: "first"})
	t2, _ := s.Create(context.Background(), owner, models.TaskDraft{Title: "second"})

	tasks, err := s.List(context.Background(), owner)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("List() returned %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != t2.ID || tasks[1].ID != t1.ID {
		t.Errorf("List() order = [%s, %s], want newest first [%s, %s]",
			tasks[0].Title, tasks[1].Title, t2.Title, t1.Title)
	}
}

func TestUpdateAppliesAllowListedFieldsOnly(t *testing.T) {
	s := store.NewMemoryTaskStore()
	owner := uuid.NewString()

	task, _ := s.Create(context.Background(), owner, models.TaskDraft{Title: "before", Priority: "low"})

	title := "after"
	prio := "high"
	due := "2026-01-02T15:04:05Z"
	updated, err := s.Update(context.Background(), owner, task.ID.String(), models.TaskPatch{
		Title:    &title,
		Priority: &prio,
		DueDate:  &due,
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Title != "after" || updated.Priority != "high" || updated.DueDate == nil {
		t.Errorf("patched fields not applied: %+v", updated)
	}
	if updated.ID != task.ID || updated.UserID != task.UserID || !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("immutable fields changed: %+v", updated)
	}
	if updated.Description != "" {
		t.Errorf("untouched field changed: %q", updated.Description)
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	s := store.NewMemoryTaskStore()
	owner := uuid.NewString()

	task, _ := s.Create(context.Background(), owner, models.TaskDraft{Title: "keep me"})

	blank := "   "
	_, err := s.Update(context.Background(), owner, task.ID.String(), models.TaskPatch{Title: &blank})
	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Update() error = %v, want ValidationError", err)
	}

	tasks, _ := s.List(context.Background(), owner)
	if tasks[0].Title != "keep me" {
		t.Errorf("failed update mutated the record: %q", tasks[0].Title)
	}
}

func TestCompletedToggleRoundTrip(t *testing.T) {
	s := store.NewMemoryTaskStore()
	owner := uuid.NewString()

	task, _ := s.Create(context.Background(), owner, models.TaskDraft{Title: "toggle me"})

	flip := func(v bool) models.Task {
		updated, err := s.Update(context.Background(), owner, task.ID.String(), models.TaskPatch{Completed: &v})
		if err != nil {
			t.Fatalf("Update() error: %v", err)
		}
		return updated
	}

	if got := flip(true); !got.Completed {
		t.Error("first toggle: completed = false, want true")
	}
	if got := flip(false); got.Completed {
		t.Error("second toggle: completed = true, want false")
	}
}

func TestDeleteIsPermanent(t *testing.T) {
	s := store.NewMemoryTaskStore()
	owner := uuid.NewString()

	task, _ := s.Create(context.Background(), owner, models.TaskDraft{Title: "doomed"})
	if err := s.Delete(context.Background(), owner, task.ID.String()); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	tasks, _ := s.List(context.Background(), owner)
	if len(tasks) != 0 {
		t.Errorf("List() still contains %d tasks after delete", len(tasks))
	}

	completed := true
	if _, err := s.Update(context.Background(), owner, task.ID.String(), models.TaskPatch{Completed: &completed}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update after delete: error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(context.Background(), owner, task.ID.String()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete after delete: error = %v, want ErrNotFound", err)
	}
}
