package repository

import (
	"tasktrack/internal/models"

	"gorm.io/gorm"
)

// GormAttachmentRepository is a GORM implementation of AttachmentRepository
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// Create inserts an attachment metadata row
func (r *GormAttachmentRepository) Create(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

// FindOwned finds an attachment by ID scoped to its owner
func (r *GormAttachmentRepository) FindOwned(id, ownerID uint64) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).
		First(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListByTask returns all attachments of a task scoped to the owner
func (r *GormAttachmentRepository) ListByTask(taskID, ownerID uint64) ([]models.Attachment, error) {
	var attachments []models.Attachment
	if err := r.db.Where("task_id = ? AND owner_id = ?", taskID, ownerID).
		Order("id ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// DeleteOwned deletes the row matching both id and owner
func (r *GormAttachmentRepository) DeleteOwned(id, ownerID uint64) (int64, error) {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Attachment{})
	return result.RowsAffected, result.Error
}

// DeleteByTask deletes all attachment rows of a task scoped to the owner
func (r *GormAttachmentRepository) DeleteByTask(taskID, ownerID uint64) error {
	return r.db.Where("task_id = ? AND owner_id = ?", taskID, ownerID).
		Delete(&models.Attachment{}).Error
}
