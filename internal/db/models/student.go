package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student is the profile extension for users with the STUDENT role.
// The school linkage is duplicated from the User record for query convenience.
type Student struct {
	// ID is the unique identifier for the student profile.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// UserID links the profile 1:1 to its identity.
	UserID string `gorm:"size:36;uniqueIndex" json:"-"`
	// SchoolID is the tenant the student belongs to.
	SchoolID string `gorm:"size:36;not null;index" json:"schoolId"`
	// Name is the student's display name.
	Name string `gorm:"size:255;not null" json:"name"`
	// CreatedAt is the timestamp when the profile was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a UUID primary key if none was set.
func (s *Student) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	return nil
}

// DisplayName implements the Profile interface.
func (s *Student) DisplayName() string {
	return s.Name
}
