package repository

import (
	"tasktrack/internal/models"

	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindOwned finds a task by ID scoped to its owner
func (r *GormTaskRepository) FindOwned(id, ownerID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).
		Preload("Attachments").
		Preload("Category").
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner returns all tasks of an owner. Open tasks come before completed
// ones, oldest first within each group; the trailing id sort keeps the order
// deterministic for rows created in the same instant.
func (r *GormTaskRepository) ListByOwner(ownerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("completed ASC, created_at ASC, id ASC").
		Preload("Attachments").
		Preload("Category").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateOwned applies updates to the row matching both id and owner. A zero
// row count means the task is absent or owned by someone else; callers treat
// the two identically.
func (r *GormTaskRepository) UpdateOwned(id, ownerID uint64, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// DeleteOwned deletes the row matching both id and owner
func (r *GormTaskRepository) DeleteOwned(id, ownerID uint64) (int64, error) {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Task{})
	return result.RowsAffected, result.Error
}

// ClearCategory nulls the category reference on every task pointing at it
func (r *GormTaskRepository) ClearCategory(categoryID uint64) error {
	return r.db.Model(&models.Task{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
}
