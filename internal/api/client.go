// Package api implements the HTTP client for the taskdeck backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"taskdeck/internal/models"
)

// TaskAPI is the task contract the dashboard depends on. Every call is
// scoped to a user and returns the authoritative server record.
type TaskAPI interface {
	GetTasks(ctx context.Context, userID string, filter models.Filter) ([]models.Task, error)
	CreateTask(ctx context.Context, userID string, draft models.TaskDraft) (*models.Task, error)
	UpdateTask(ctx context.Context, userID string, taskID int64, draft models.TaskDraft) (*models.Task, error)
	DeleteTask(ctx context.Context, userID string, taskID int64) (*models.Task, error)
	ToggleComplete(ctx context.Context, userID string, taskID int64) (*models.Task, error)
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Credentials is the token pair and user identity returned by the auth
// endpoints and persisted by the session store.
type Credentials struct {
	AccessToken           string    `json:"access_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  User      `json:"user"`
}

// Error is a failed API call, carrying the server's human-readable
// message when one was returned.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

type taskPayload struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *taskPayload) toModel() models.Task {
	return models.Task{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Completed:   p.Completed,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type taskDraftPayload struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

func newTaskDraftPayload(draft models.TaskDraft) taskDraftPayload {
	payload := taskDraftPayload{Title: draft.Title}
	if draft.Description != "" {
		payload.Description = &draft.Description
	}
	return payload
}

func (c *Client) GetTasks(ctx context.Context, userID string, filter models.Filter) ([]models.Task, error) {
	path := fmt.Sprintf("/api/v1/users/%s/tasks?status=%s",
		url.PathEscape(userID), url.QueryEscape(string(filter)))

	var payload []taskPayload
	err := c.do(ctx, http.MethodGet, path, nil, &payload)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, len(payload))
	for i := range payload {
		tasks[i] = payload[i].toModel()
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, userID string, draft models.TaskDraft) (*models.Task, error) {
	path := fmt.Sprintf("/api/v1/users/%s/tasks", url.PathEscape(userID))
	return c.doTask(ctx, http.MethodPost, path, newTaskDraftPayload(draft))
}

func (c *Client) UpdateTask(ctx context.Context, userID string, taskID int64, draft models.TaskDraft) (*models.Task, error) {
	path := fmt.Sprintf("/api/v1/users/%s/tasks/%d", url.PathEscape(userID), taskID)
	return c.doTask(ctx, http.MethodPut, path, newTaskDraftPayload(draft))
}

// DeleteTask removes the task and returns the deleted record.
func (c *Client) DeleteTask(ctx context.Context, userID string, taskID int64) (*models.Task, error) {
	path := fmt.Sprintf("/api/v1/users/%s/tasks/%d", url.PathEscape(userID), taskID)
	return c.doTask(ctx, http.MethodDelete, path, nil)
}

func (c *Client) ToggleComplete(ctx context.Context, userID string, taskID int64) (*models.Task, error) {
	path := fmt.Sprintf("/api/v1/users/%s/tasks/%d/complete", url.PathEscape(userID), taskID)
	return c.doTask(ctx, http.MethodPatch, path, nil)
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*Credentials, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	creds := new(Credentials)
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, creds)
	if err != nil {
		return nil, err
	}
	return creds, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	creds := new(Credentials)
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, creds)
	if err != nil {
		return nil, err
	}
	return creds, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	body := map[string]string{"refresh_token": refreshToken}
	creds := new(Credentials)
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", body, creds)
	if err != nil {
		return nil, err
	}
	return creds, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

func (c *Client) doTask(ctx context.Context, method, path string, body any) (*models.Task, error) {
	payload := new(taskPayload)
	err := c.do(ctx, method, path, body, payload)
	if err != nil {
		return nil, err
	}
	task := payload.toModel()
	return &task, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if err = json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
