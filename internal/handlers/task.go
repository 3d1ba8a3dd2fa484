package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/dto"
	apierrors "tasktrack/internal/errors"
	"tasktrack/internal/middleware"
	"tasktrack/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks of the caller, open tasks first, oldest first
// within each group.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task for the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title              string  `json:"title"`
		Deadline           string  `json:"deadline"`
		Note               string  `json:"note"`
		CategoryID         *uint64 `json:"category_id"`
		Recurring          bool    `json:"recurring"`
		RecurrenceType     string  `json:"recurrence_type"`
		RecurrenceInterval int     `json:"recurrence_interval"`
		RecurrenceStart    string  `json:"recurrence_start"`
		RecurrenceEnd      string  `json:"recurrence_end"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		OwnerID:            userID,
		Title:              req.Title,
		Deadline:           req.Deadline,
		Note:               req.Note,
		CategoryID:         req.CategoryID,
		Recurring:          req.Recurring,
		RecurrenceType:     req.RecurrenceType,
		RecurrenceInterval: req.RecurrenceInterval,
		RecurrenceStart:    req.RecurrenceStart,
		RecurrenceEnd:      req.RecurrenceEnd,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// SetCompleted updates the completed flag of one of the caller's tasks.
func (h *TaskHandler) SetCompleted(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	type SetCompletedRequest struct {
		Completed *bool `json:"completed" binding:"required"`
	}

	var req SetCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.SetCompleted(taskID, userID, *req.Completed); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Task updated",
		"task_id":   taskID,
		"completed": *req.Completed,
	})
}

// SetDeadline updates the deadline of one of the caller's tasks. An empty
// deadline clears it.
func (h *TaskHandler) SetDeadline(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	type SetDeadlineRequest struct {
		Deadline string `json:"deadline"`
	}

	var req SetDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.taskService.SetDeadline(taskID, userID, req.Deadline); err != nil {
		respondTaskError(c, err)
		return
	}

	var deadline interface{}
	if req.Deadline != "" {
		deadline = req.Deadline
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Deadline updated",
		"task_id":  taskID,
		"deadline": deadline,
	})
}

// SetNote updates the note of one of the caller's tasks.
func (h *TaskHandler) SetNote(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	type SetNoteRequest struct {
		Note string `json:"note"`
	}

	var req SetNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.taskService.SetNote(taskID, userID, req.Note)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note updated",
		"task_id": taskID,
		"note":    note,
	})
}

// DeleteTask deletes one of the caller's tasks along with its attachments.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
		"task_id": taskID,
	})
}

// taskRequestIDs extracts the caller and the :id path parameter, writing the
// error response itself when either is missing.
func taskRequestIDs(c *gin.Context) (userID, taskID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return 0, 0, false
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return 0, 0, false
	}

	return userID, taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDeadlineInPast),
		errors.Is(err, services.ErrInvalidRecurrence),
		errors.Is(err, services.ErrCategoryNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
