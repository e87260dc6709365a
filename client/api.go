// Package client implements the task client: an HTTP API client plus
// the in-memory list state, theme preference and route guarding the
// single-page frontend runs on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"taskboard/models"
)

// API is the remote surface the list state talks to. Tests swap in an
// in-memory fake.
type API interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, draft models.TaskDraft) (models.Task, error)
	UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// HTTPAPI talks to the task service over HTTP with a bearer credential.
type HTTPAPI struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewHTTPAPI(baseURL, token string) *HTTPAPI {
	return &HTTPAPI{BaseURL: baseURL, Token: token, Client: http.DefaultClient}
}

func (a *HTTPAPI) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := a.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks)
	return tasks, err
}

func (a *HTTPAPI) CreateTask(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	var task models.Task
	err := a.do(ctx, http.MethodPost, "/api/tasks", draft, &task)
	return task, err
}

func (a *HTTPAPI) UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) (models.Task, error) {
	var task models.Task
	err := a.do(ctx, http.MethodPut, "/api/tasks/"+taskID, patch, &task)
	return task, err
}

func (a *HTTPAPI) DeleteTask(ctx context.Context, taskID string) error {
	return a.do(ctx, http.MethodDelete, "/api/tasks/"+taskID, nil, nil)
}

func (a *HTTPAPI) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.Token)

	resp, err := a.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
