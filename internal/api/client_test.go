package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskdeck/internal/models"
)

const testUserID = "019535a8-0000-7000-8000-000000000001"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 5*time.Second)
	client.SetToken("test-token")
	return client
}

func TestGetTasksSendsFilterAndToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("got method %s, want GET", r.Method)
		}
		if want := "/api/v1/users/" + testUserID + "/tasks"; r.URL.Path != want {
			t.Errorf("got path %s, want %s", r.URL.Path, want)
		}
		if got := r.URL.Query().Get("status"); got != "pending" {
			t.Errorf("got status %q, want pending", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("got authorization %q", got)
		}

		description := "details"
		_ = json.NewEncoder(w).Encode([]taskPayload{
			{ID: 2, UserID: testUserID, Title: "second"},
			{ID: 1, UserID: testUserID, Title: "first", Description: &description, Completed: true},
		})
	})

	tasks, err := client.GetTasks(context.Background(), testUserID, models.FilterPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != 2 || tasks[1].ID != 1 {
		t.Errorf("got ids %d, %d; order must follow the response", tasks[0].ID, tasks[1].ID)
	}
	if tasks[1].DisplayDescription() != "details" {
		t.Errorf("got description %q", tasks[1].DisplayDescription())
	}
}

func TestCreateTaskOmitsEmptyDescription(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["title"] != "buy milk" {
			t.Errorf("got title %v", body["title"])
		}
		if _, ok := body["description"]; ok {
			t.Error("empty description must be omitted")
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(taskPayload{ID: 10, UserID: testUserID, Title: "buy milk"})
	})

	task, err := client.CreateTask(context.Background(), testUserID, models.TaskDraft{Title: "buy milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 10 {
		t.Errorf("got id %d, want 10", task.ID)
	}
}

func TestUpdateTaskHitsTaskPath(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("got method %s, want PUT", r.Method)
		}
		if want := "/api/v1/users/" + testUserID + "/tasks/7"; r.URL.Path != want {
			t.Errorf("got path %s, want %s", r.URL.Path, want)
		}
		_ = json.NewEncoder(w).Encode(taskPayload{ID: 7, UserID: testUserID, Title: "renamed"})
	})

	task, err := client.UpdateTask(context.Background(), testUserID, 7, models.TaskDraft{Title: "renamed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "renamed" {
		t.Errorf("got title %q", task.Title)
	}
}

func TestToggleCompleteUsesPatch(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("got method %s, want PATCH", r.Method)
		}
		if want := "/api/v1/users/" + testUserID + "/tasks/7/complete"; r.URL.Path != want {
			t.Errorf("got path %s, want %s", r.URL.Path, want)
		}
		_ = json.NewEncoder(w).Encode(taskPayload{ID: 7, Completed: true})
	})

	task, err := client.ToggleComplete(context.Background(), testUserID, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !task.Completed {
		t.Error("expected the toggled record")
	}
}

func TestDeleteTaskReturnsDeletedRecord(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("got method %s, want DELETE", r.Method)
		}
		_ = json.NewEncoder(w).Encode(taskPayload{ID: 7, Title: "gone"})
	})

	task, err := client.DeleteTask(context.Background(), testUserID, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "gone" {
		t.Errorf("got title %q, want the deleted record", task.Title)
	}
}

func TestErrorCarriesServerMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "task not found"})
	})

	_, err := client.ToggleComplete(context.Background(), testUserID, 404)
	if err == nil {
		t.Fatal("expected an error")
	}

	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T, want *Error", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("got status %d, want 404", apiErr.Status)
	}
	if apiErr.Error() != "task not found" {
		t.Errorf("got message %q", apiErr.Error())
	}
}

func TestLoginDecodesCredentials(t *testing.T) {
	t.Parallel()

	expires := time.Now().Add(15 * time.Minute).UTC().Truncate(time.Second)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("got path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Credentials{
			AccessToken:          "access",
			AccessTokenExpiresAt: expires,
			RefreshToken:         "refresh",
			User:                 User{ID: testUserID, Email: "jo@example.com", Name: "Jo"},
		})
	})

	creds, err := client.Login(context.Background(), "jo@example.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.AccessToken != "access" || creds.RefreshToken != "refresh" {
		t.Errorf("got tokens %q, %q", creds.AccessToken, creds.RefreshToken)
	}
	if !creds.AccessTokenExpiresAt.Equal(expires) {
		t.Errorf("got expiry %v, want %v", creds.AccessTokenExpiresAt, expires)
	}
	if creds.User.Name != "Jo" {
		t.Errorf("got user %+v", creds.User)
	}
}

func TestLogoutAcceptsNoContent(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
