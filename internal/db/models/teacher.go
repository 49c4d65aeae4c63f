package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Teacher is the profile extension for users with the TEACHER role.
// The school linkage is duplicated from the User record for query convenience.
type Teacher struct {
	// ID is the unique identifier for the teacher profile.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// UserID links the profile 1:1 to its identity.
	UserID string `gorm:"size:36;uniqueIndex" json:"-"`
	// SchoolID is the tenant the teacher belongs to.
	SchoolID string `gorm:"size:36;not null;index" json:"schoolId"`
	// Name is the teacher's display name.
	Name string `gorm:"size:255;not null" json:"name"`
	// CreatedAt is the timestamp when the profile was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a UUID primary key if none was set.
func (t *Teacher) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	return nil
}

// DisplayName implements the Profile interface.
func (t *Teacher) DisplayName() string {
	return t.Name
}
