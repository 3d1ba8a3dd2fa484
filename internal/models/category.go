package models

import "time"

// Category is a global named tag. Tasks reference it by a nullable foreign
// key; deleting a category clears that reference on every task pointing at it.
type Category struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:CategoryID" json:"-"`
}
