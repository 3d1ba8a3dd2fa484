package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"gorm.io/gorm"

	"tasktrack/internal/constants"
	"tasktrack/internal/logger"
	"tasktrack/internal/models"
	"tasktrack/internal/repository"
	"tasktrack/internal/storage"
)

var (
	ErrNotTaskOwner       = errors.New("task does not exist or belongs to another user")
	ErrMimetypeNotAllowed = errors.New("file type not allowed")
	ErrFileTooLarge       = errors.New("file exceeds the maximum upload size")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrStorageFailed      = errors.New("failed to store attachment")
)

// AttachmentService coordinates attachment metadata with the blob store.
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
	taskRepo       repository.TaskRepository
	blobs          storage.BlobStore
	maxUploadBytes int64
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(
	attachmentRepo repository.AttachmentRepository,
	taskRepo repository.TaskRepository,
	blobs storage.BlobStore,
	maxUploadBytes int64,
) *AttachmentService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = constants.MaxUploadBytes
	}
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		taskRepo:       taskRepo,
		blobs:          blobs,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload validates and stores a file for an owned task. Ownership is checked
// before anything touches disk, so rejected uploads leave no bytes behind.
// When the metadata insert fails after the blob is written, the blob is
// removed again.
func (s *AttachmentService) Upload(taskID, ownerID uint64, file *multipart.FileHeader) (*models.Attachment, error) {
	if _, err := s.taskRepo.FindOwned(taskID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotTaskOwner
		}
		return nil, fmt.Errorf("failed to check task: %w", err)
	}

	mimetype := file.Header.Get("Content-Type")
	if !constants.AllowedMimetypes[mimetype] {
		return nil, ErrMimetypeNotAllowed
	}
	if file.Size > s.maxUploadBytes {
		return nil, ErrFileTooLarge
	}

	storedName, err := storage.GenerateStoredName(file.Filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	defer src.Close()

	path, err := s.blobs.Save(storedName, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	attachment := &models.Attachment{
		TaskID:           taskID,
		OwnerID:          ownerID,
		OriginalFilename: file.Filename,
		StoredFilename:   storedName,
		Mimetype:         mimetype,
		Filepath:         path,
		Size:             file.Size,
	}

	if err := s.attachmentRepo.Create(attachment); err != nil {
		if cleanupErr := s.blobs.Remove(storedName); cleanupErr != nil {
			logger.Error("failed to clean up orphaned upload",
				"stored_filename", storedName,
				"error", cleanupErr,
			)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	return attachment, nil
}

// List returns the attachment metadata of a task scoped to the owner.
func (s *AttachmentService) List(taskID, ownerID uint64) ([]models.Attachment, error) {
	attachments, err := s.attachmentRepo.ListByTask(taskID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// Delete removes an owned attachment row, then best-effort deletes the
// backing bytes. A missing file is fine; other I/O errors are logged.
func (s *AttachmentService) Delete(attachmentID, ownerID uint64) error {
	attachment, err := s.attachmentRepo.FindOwned(attachmentID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to find attachment: %w", err)
	}

	rows, err := s.attachmentRepo.DeleteOwned(attachmentID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	if rows == 0 {
		return ErrAttachmentNotFound
	}

	if err := s.blobs.Remove(attachment.StoredFilename); err != nil {
		logger.Error("failed to remove attachment file",
			"attachment_id", attachment.ID,
			"stored_filename", attachment.StoredFilename,
			"error", err,
		)
	}

	return nil
}
