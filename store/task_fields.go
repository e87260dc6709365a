package store

import (
	"strings"

	"taskboard/models"
	"taskboard/utils"
)

// normalizeDraft applies the creation rules shared by every backend:
// title is required after trimming, priority falls back to medium, and
// a due date that fails to parse is stored as absent.
func normalizeDraft(draft models.TaskDraft) (models.Task, error) {
	title := strings.TrimSpace(draft.Title)
	if err := utils.ValidateTaskTitle(title); err != nil {
		return models.Task{}, &ValidationError{Msg: err.Error()}
	}
	return models.Task{
		Title:       title,
		Description: draft.Description,
		Priority:    models.NormalizePriority(draft.Priority),
		DueDate:     models.ParseDueDate(draft.DueDate),
		Completed:   false,
	}, nil
}

// applyPatch mutates t with the allow-listed fields of the patch. Nil
// fields are skipped. Owner, id and creation time are never touched.
func applyPatch(t *models.Task, patch models.TaskPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := utils.ValidateTaskTitle(title); err != nil {
			return &ValidationError{Msg: err.Error()}
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		t.Priority = models.NormalizePriority(*patch.Priority)
	}
	if patch.DueDate != nil {
		t.DueDate = models.ParseDueDate(*patch.DueDate)
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	return nil
}
