package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment is a piece of work published for a class.
type Assignment struct {
	// ID is the unique identifier for the assignment.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Title is the assignment title.
	Title string `gorm:"size:255;not null" json:"title"`
	// Description is the optional long form description.
	Description string `gorm:"size:2000" json:"description,omitempty"`
	// DueDate is when the assignment is due.
	DueDate time.Time `json:"dueDate"`
	// ClassID is the class the assignment was published for.
	ClassID string `gorm:"size:36;not null;index" json:"classId"`
	// CreatedAt is the timestamp when the assignment was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a UUID primary key if none was set.
func (a *Assignment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	return nil
}
