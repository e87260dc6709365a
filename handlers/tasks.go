package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"taskboard/models"
	"taskboard/store"
)

// TaskHandler serves the owner-scoped task CRUD routes.
type TaskHandler struct {
	Store store.TaskStore
}

func NewTaskHandler(s store.TaskStore) *TaskHandler {
	return &TaskHandler{Store: s}
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Store.List(r.Context(), UserID(r))
	if err != nil {
		log.Println("Error listing tasks:", err)
		writeMessage(w, http.StatusInternalServerError, "failed to fetch tasks")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.TaskDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	task, err := h.Store.Create(r.Context(), UserID(r), draft)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			writeMessage(w, http.StatusBadRequest, verr.Msg)
			return
		}
		log.Println("Error creating task:", err)
		writeMessage(w, http.StatusInternalServerError, "failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	task, err := h.Store.Update(r.Context(), UserID(r), taskID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			writeMessage(w, http.StatusBadRequest, verr.Msg)
			return
		}
		log.Println("Error updating task:", err)
		writeMessage(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	err := h.Store.Delete(r.Context(), UserID(r), taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		log.Println("Error deleting task:", err)
		writeMessage(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	writeMessage(w, http.StatusOK, "Task deleted successfully")
}
