package dto

import (
	"time"

	"tasktrack/internal/dateutil"
	"tasktrack/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// AttachmentDTO represents an attachment in API responses. URL is the path
// the stored bytes are served from.
type AttachmentDTO struct {
	ID               uint64    `json:"id"`
	TaskID           uint64    `json:"task_id"`
	OriginalFilename string    `json:"original_filename"`
	StoredFilename   string    `json:"stored_filename"`
	Mimetype         string    `json:"mimetype"`
	Size             int64     `json:"size"`
	URL              string    `json:"url"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// TaskDTO represents a task in API responses. Calendar dates are rendered as
// YYYY-MM-DD strings.
type TaskDTO struct {
	ID                 uint64          `json:"id"`
	OwnerID            uint64          `json:"owner_id"`
	Title              string          `json:"title"`
	Completed          bool            `json:"completed"`
	Deadline           *string         `json:"deadline"`
	Note               string          `json:"note"`
	CategoryID         *uint64         `json:"category_id"`
	Category           *CategoryDTO    `json:"category,omitempty"`
	Recurring          bool            `json:"recurring"`
	RecurrenceType     string          `json:"recurrence_type,omitempty"`
	RecurrenceInterval int             `json:"recurrence_interval,omitempty"`
	RecurrenceStart    *string         `json:"recurrence_start,omitempty"`
	RecurrenceEnd      *string         `json:"recurrence_end,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Attachments        []AttachmentDTO `json:"attachments"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
	}
}

// ToAttachmentDTO converts an Attachment model to AttachmentDTO
func ToAttachmentDTO(attachment models.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:               attachment.ID,
		TaskID:           attachment.TaskID,
		OriginalFilename: attachment.OriginalFilename,
		StoredFilename:   attachment.StoredFilename,
		Mimetype:         attachment.Mimetype,
		Size:             attachment.Size,
		URL:              "/uploads/" + attachment.StoredFilename,
		UploadedAt:       attachment.UploadedAt,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Completed:   task.Completed,
		Deadline:    formatDate(task.Deadline),
		Note:        task.Note,
		CategoryID:  task.CategoryID,
		Recurring:   task.Recurring,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Attachments: make([]AttachmentDTO, 0, len(task.Attachments)),
	}

	if task.Recurring {
		dto.RecurrenceType = string(task.RecurrenceType)
		dto.RecurrenceInterval = task.RecurrenceInterval
		dto.RecurrenceStart = formatDate(task.RecurrenceStart)
		dto.RecurrenceEnd = formatDate(task.RecurrenceEnd)
	}

	// Include category if preloaded
	if task.Category != nil && task.Category.ID != 0 {
		category := ToCategoryDTO(*task.Category)
		dto.Category = &category
	}

	for _, attachment := range task.Attachments {
		dto.Attachments = append(dto.Attachments, ToAttachmentDTO(attachment))
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks, preserving order.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToAttachmentDTOs converts a slice of attachments, preserving order.
func ToAttachmentDTOs(attachments []models.Attachment) []AttachmentDTO {
	dtos := make([]AttachmentDTO, len(attachments))
	for i, attachment := range attachments {
		dtos[i] = ToAttachmentDTO(attachment)
	}
	return dtos
}

// ToCategoryDTOs converts a slice of categories, preserving order.
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		dtos[i] = ToCategoryDTO(category)
	}
	return dtos
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateutil.Layout)
	return &s
}
