package models

import "time"

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// ValidRecurrenceType reports whether t is one of the supported recurrence kinds.
func ValidRecurrenceType(t RecurrenceType) bool {
	switch t {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Task is a user-owned unit of work. The recurrence fields describe an
// intended repeating pattern; they are never expanded into concrete
// occurrences and are only meaningful while Recurring is true.
type Task struct {
	ID                 uint64         `gorm:"primarykey" json:"id"`
	OwnerID            uint64         `gorm:"not null;index" json:"owner_id"`
	Title              string         `gorm:"not null" json:"title"`
	Completed          bool           `gorm:"not null;default:false" json:"completed"`
	Deadline           *time.Time     `json:"deadline"`
	Note               string         `gorm:"type:text" json:"note"`
	CategoryID         *uint64        `gorm:"index" json:"category_id"`
	Recurring          bool           `gorm:"not null;default:false" json:"recurring"`
	RecurrenceType     RecurrenceType `gorm:"type:varchar(20)" json:"recurrence_type,omitempty"`
	RecurrenceInterval int            `json:"recurrence_interval,omitempty"`
	RecurrenceStart    *time.Time     `json:"recurrence_start,omitempty"`
	RecurrenceEnd      *time.Time     `json:"recurrence_end,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`

	// Relations
	Owner       User         `gorm:"foreignKey:OwnerID" json:"-"`
	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:TaskID" json:"attachments"`
}
