package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment links a student profile to a class.
type Enrollment struct {
	// ID is the unique identifier for the enrollment.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// ClassID is the class the student is enrolled in.
	ClassID string `gorm:"size:36;not null;uniqueIndex:idx_enrollments_class_student" json:"classId"`
	// StudentID is the enrolled student profile.
	StudentID string `gorm:"size:36;not null;uniqueIndex:idx_enrollments_class_student" json:"studentId"`
	// Student is the associated student profile.
	Student Student `gorm:"foreignKey:StudentID;references:ID" json:"student"`
	// CreatedAt is the timestamp when the enrollment was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a UUID primary key if none was set.
func (e *Enrollment) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	return nil
}
