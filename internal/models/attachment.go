package models

import "time"

// Attachment is a file tied to exactly one task. OwnerID always equals the
// owning task's OwnerID; StoredFilename is server-generated and unique so
// uploads with the same original name never collide on disk.
type Attachment struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	TaskID           uint64    `gorm:"not null;index" json:"task_id"`
	OwnerID          uint64    `gorm:"not null;index" json:"owner_id"`
	OriginalFilename string    `gorm:"type:varchar(255);not null" json:"original_filename"`
	StoredFilename   string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"stored_filename"`
	Mimetype         string    `gorm:"type:varchar(100);not null" json:"mimetype"`
	Filepath         string    `gorm:"type:varchar(512);not null" json:"-"`
	Size             int64     `gorm:"not null" json:"size"`
	UploadedAt       time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	// Relations
	Task  Task `gorm:"foreignKey:TaskID" json:"-"`
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
