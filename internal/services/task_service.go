package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tasktrack/internal/dateutil"
	"tasktrack/internal/logger"
	"tasktrack/internal/models"
	"tasktrack/internal/repository"
	"tasktrack/internal/storage"
)

var (
	ErrTitleRequired     = errors.New("title is required")
	ErrDeadlineInPast    = errors.New("deadline in past")
	ErrInvalidRecurrence = errors.New("invalid recurrence descriptor")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrTaskNotFound      = errors.New("task not found")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo       repository.TaskRepository
	attachmentRepo repository.AttachmentRepository
	categoryRepo   repository.CategoryRepository
	blobs          storage.BlobStore
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	attachmentRepo repository.AttachmentRepository,
	categoryRepo repository.CategoryRepository,
	blobs storage.BlobStore,
) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		attachmentRepo: attachmentRepo,
		categoryRepo:   categoryRepo,
		blobs:          blobs,
	}
}

// CreateTaskInput represents input for creating a task. Dates arrive as
// YYYY-MM-DD strings; empty means unset.
type CreateTaskInput struct {
	OwnerID            uint64
	Title              string
	Deadline           string
	Note               string
	CategoryID         *uint64
	Recurring          bool
	RecurrenceType     string
	RecurrenceInterval int
	RecurrenceStart    string
	RecurrenceEnd      string
}

// CreateTask validates and persists a new task for its owner.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	deadline, err := s.parseDeadline(input.Deadline)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		OwnerID:  input.OwnerID,
		Title:    title,
		Deadline: deadline,
		Note:     strings.TrimSpace(input.Note),
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		task.CategoryID = input.CategoryID
	}

	if input.Recurring {
		if err := applyRecurrence(task, input); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// A fresh task always carries an empty attachment list.
	task.Attachments = []models.Attachment{}

	return task, nil
}

// applyRecurrence validates the descriptor and copies it onto the task. The
// descriptor is stored as-is; it is never expanded into occurrences.
func applyRecurrence(task *models.Task, input CreateTaskInput) error {
	rtype := models.RecurrenceType(input.RecurrenceType)
	if !models.ValidRecurrenceType(rtype) {
		return ErrInvalidRecurrence
	}

	interval := input.RecurrenceInterval
	if interval == 0 {
		interval = 1
	}
	if interval < 1 {
		return ErrInvalidRecurrence
	}

	task.Recurring = true
	task.RecurrenceType = rtype
	task.RecurrenceInterval = interval

	if input.RecurrenceStart != "" {
		start, err := dateutil.ParseDate(input.RecurrenceStart)
		if err != nil {
			return ErrInvalidRecurrence
		}
		task.RecurrenceStart = &start
	}
	if input.RecurrenceEnd != "" {
		end, err := dateutil.ParseDate(input.RecurrenceEnd)
		if err != nil {
			return ErrInvalidRecurrence
		}
		if task.RecurrenceStart != nil && end.Before(*task.RecurrenceStart) {
			return ErrInvalidRecurrence
		}
		task.RecurrenceEnd = &end
	}

	return nil
}

// ListTasks returns all tasks of an owner with their attachments, ordered by
// (completed ASC, created_at ASC).
func (s *TaskService) ListTasks(ownerID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	for i := range tasks {
		if tasks[i].Attachments == nil {
			tasks[i].Attachments = []models.Attachment{}
		}
	}

	return tasks, nil
}

// SetCompleted updates the completed flag of an owned task.
func (s *TaskService) SetCompleted(taskID, ownerID uint64, completed bool) error {
	rows, err := s.taskRepo.UpdateOwned(taskID, ownerID, map[string]interface{}{
		"completed": completed,
	})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// SetDeadline updates the deadline of an owned task. An empty string clears
// the deadline; anything else must be a parsable date not in the past.
func (s *TaskService) SetDeadline(taskID, ownerID uint64, deadline string) (*time.Time, error) {
	parsed, err := s.parseDeadline(deadline)
	if err != nil {
		return nil, err
	}

	rows, err := s.taskRepo.UpdateOwned(taskID, ownerID, map[string]interface{}{
		"deadline": parsed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if rows == 0 {
		return nil, ErrTaskNotFound
	}
	return parsed, nil
}

// SetNote updates the note of an owned task, returning the note exactly as
// stored so responses never drift from persisted state.
func (s *TaskService) SetNote(taskID, ownerID uint64, note string) (string, error) {
	trimmed := strings.TrimSpace(note)
	rows, err := s.taskRepo.UpdateOwned(taskID, ownerID, map[string]interface{}{
		"note": trimmed,
	})
	if err != nil {
		return "", fmt.Errorf("failed to update task: %w", err)
	}
	if rows == 0 {
		return "", ErrTaskNotFound
	}
	return trimmed, nil
}

// DeleteTask deletes an owned task and cascades to its attachments. Removing
// the backing bytes is best-effort: filesystem failures are logged and never
// roll back the already-committed row deletions.
func (s *TaskService) DeleteTask(taskID, ownerID uint64) error {
	attachments, err := s.attachmentRepo.ListByTask(taskID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list attachments: %w", err)
	}

	rows, err := s.taskRepo.DeleteOwned(taskID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if rows == 0 {
		return ErrTaskNotFound
	}

	if err := s.attachmentRepo.DeleteByTask(taskID, ownerID); err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}

	for _, a := range attachments {
		if err := s.blobs.Remove(a.StoredFilename); err != nil {
			logger.Error("failed to remove attachment file",
				"attachment_id", a.ID,
				"stored_filename", a.StoredFilename,
				"error", err,
			)
		}
	}

	return nil
}

// parseDeadline turns a date string into a stored deadline. Empty clears the
// deadline; an unparsable or past date is rejected.
func (s *TaskService) parseDeadline(deadline string) (*time.Time, error) {
	if deadline == "" {
		return nil, nil
	}
	if dateutil.IsPastDate(deadline) {
		return nil, ErrDeadlineInPast
	}
	parsed, err := dateutil.ParseDate(deadline)
	if err != nil {
		return nil, ErrDeadlineInPast
	}
	return &parsed, nil
}
