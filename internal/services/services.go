package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskdeck/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrTaskNotFound         = errors.New("task not found")
)

type AuthService interface {
	// Register creates a user with the given name, email and password.
	//
	// It hashes the password, generates a unique ID and creates a
	// session with a fresh token pair.
	//
	// It returns ErrUserAlreadyExists if the user
	// with the given email already exists.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new token pair.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)

	// Refresh rotates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist or ErrSessionExpired
	// if the session is expired.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	// ParseAccessToken parses the given JWT token and returns the
	// registered claims. The subject of a valid token is a session ID.
	ParseAccessToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

type TaskService interface {
	// CreateTask inserts a task with completed = false and returns
	// the stored record.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// GetTasks returns the user's tasks newest-first, narrowed by the
	// filter. An empty result is not an error.
	GetTasks(ctx context.Context, userID string, filter models.Filter) ([]models.Task, error)

	// UpdateTask replaces the title and description of the task and
	// returns the stored record, or ErrTaskNotFound.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// ToggleComplete flips the completion flag and returns the stored
	// record, or ErrTaskNotFound.
	ToggleComplete(ctx context.Context, taskID int64, userID string) (*models.Task, error)

	// DeleteTask removes the task and returns the deleted record,
	// or ErrTaskNotFound.
	DeleteTask(ctx context.Context, taskID int64, userID string) (*models.Task, error)
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	UserID                string
	Email                 string
	Name                  string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type CreateTaskParams struct {
	UserID      string
	Title       string
	Description *string
}

type UpdateTaskParams struct {
	ID          int64
	UserID      string
	Title       string
	Description *string
}
