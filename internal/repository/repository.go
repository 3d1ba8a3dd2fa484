package repository

import (
	"tasktrack/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Delete removes a user along with their tasks and attachment rows.
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindOwned finds a task by ID scoped to its owner
	FindOwned(id, ownerID uint64) (*models.Task, error)

	// ListByOwner returns all tasks of an owner with attachments and category
	// preloaded, ordered by (completed ASC, created_at ASC, id ASC).
	ListByOwner(ownerID uint64) ([]models.Task, error)

	// UpdateOwned applies the given column updates to the row matching both
	// id and owner, returning the number of rows changed.
	UpdateOwned(id, ownerID uint64, updates map[string]interface{}) (int64, error)

	// DeleteOwned deletes the row matching both id and owner, returning the
	// number of rows deleted.
	DeleteOwned(id, ownerID uint64) (int64, error)

	// ClearCategory nulls the category reference on every task pointing at it.
	ClearCategory(categoryID uint64) error
}

// AttachmentRepository defines the interface for attachment metadata access
type AttachmentRepository interface {
	// Create inserts an attachment metadata row
	Create(attachment *models.Attachment) error

	// FindOwned finds an attachment by ID scoped to its owner
	FindOwned(id, ownerID uint64) (*models.Attachment, error)

	// ListByTask returns all attachments of a task scoped to the owner
	ListByTask(taskID, ownerID uint64) ([]models.Attachment, error)

	// DeleteOwned deletes the row matching both id and owner, returning the
	// number of rows deleted.
	DeleteOwned(id, ownerID uint64) (int64, error)

	// DeleteByTask deletes all attachment rows of a task scoped to the owner.
	DeleteByTask(taskID, ownerID uint64) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *models.Category) error

	// FindByID finds a category by ID
	FindByID(id uint64) (*models.Category, error)

	// FindByName finds a category by name
	FindByName(name string) (*models.Category, error)

	// List returns all categories
	List() ([]models.Category, error)

	// Delete removes a category and clears the reference on its tasks,
	// returning the number of category rows deleted.
	Delete(id uint64) (int64, error)
}
