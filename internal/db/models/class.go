package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Class is a tenant-scoped class taught by one teacher.
type Class struct {
	// ID is the unique identifier for the class.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Name is the class name.
	Name string `gorm:"size:255;not null" json:"name"`
	// SchoolID is the tenant the class belongs to.
	SchoolID string `gorm:"size:36;not null;index" json:"schoolId"`
	// TeacherID is the teacher profile running the class.
	TeacherID string `gorm:"size:36;not null" json:"teacherId"`
	// Teacher is the associated teacher profile.
	Teacher Teacher `gorm:"foreignKey:TeacherID;references:ID" json:"teacher"`
	// Assignments are the assignments published for the class.
	Assignments []Assignment `gorm:"foreignKey:ClassID;references:ID" json:"assignments"`
	// Enrollments are the student enrollments of the class.
	Enrollments []Enrollment `gorm:"foreignKey:ClassID;references:ID" json:"enrollments,omitempty"`
	// CreatedAt is the timestamp when the class was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a UUID primary key if none was set.
func (c *Class) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	return nil
}
