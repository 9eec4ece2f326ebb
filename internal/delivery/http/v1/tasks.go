package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/models"
	"taskdeck/internal/services"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
)

type taskResponse struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type taskDraftRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
}

// validate trims both fields and enforces the title and description
// length limits shared with the clients. Limits count characters, not
// bytes, so multibyte titles are measured the same way the clients
// measure them.
func (r *taskDraftRequest) validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if titleLen := utf8.RuneCountInString(r.Title); titleLen < 1 || titleLen > maxTitleLength {
		return errors.New("title must be between 1 and 200 characters")
	}
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		if utf8.RuneCountInString(trimmed) > maxDescriptionLength {
			return errors.New("description must be at most 5000 characters")
		}
		r.Description = &trimmed
	}
	return nil
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req taskDraftRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = req.validate()
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("invalid task draft")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	filter := models.Filter(c.DefaultQuery("status", string(models.FilterAll)))
	if !filter.Valid() {
		h.logger.Error().
			Str("status", string(filter)).
			Msg("invalid status filter")
		abort(c, newBadRequestError("status must be 'all', 'pending' or 'completed'"))
		return
	}

	tasks, err := h.tasks.GetTasks(c, userID, filter)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]taskResponse, len(tasks))
	for i := range tasks {
		response[i] = newTaskResponse(&tasks[i])
	}

	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("invalid task id")
		abort(c, newBadRequestError("invalid task id"))
		return
	}

	var req taskDraftRequest
	err = c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = req.validate()
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("invalid task draft")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:          taskID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update task")
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleToggleComplete(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("invalid task id")
		abort(c, newBadRequestError("invalid task id"))
		return
	}

	task, err := h.tasks.ToggleComplete(c, taskID, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to toggle task completion")
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("invalid task id")
		abort(c, newBadRequestError("invalid task id"))
		return
	}

	task, err := h.tasks.DeleteTask(c, taskID, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	// The deleted record is returned so the caller can log or undo it.
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func parseTaskID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
