package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemSchoolDomain is the reserved domain of the system school hosting the
// super-admin identity. It must never be reachable through public subdomain
// resolution of registered schools.
const SystemSchoolDomain = "system"

// School represents a tenant. Every identity and data record belongs to
// exactly one school and the school domain is the isolation boundary key:
// requests are resolved to a school via the leftmost subdomain label.
type School struct {
	// ID is the unique identifier for the school.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Name is the human readable school name.
	Name string `gorm:"size:255;not null" json:"name"`
	// Domain is the globally unique subdomain label the school is reached by.
	Domain string `gorm:"uniqueIndex;size:100;not null" json:"domain"`
	// ContactEmail is an optional administrative contact address.
	ContactEmail string `gorm:"size:255" json:"contactEmail,omitempty"`
	// ContactPhone is an optional administrative contact phone number.
	ContactPhone string `gorm:"size:50" json:"contactPhone,omitempty"`
	// Address is an optional postal address.
	Address string `gorm:"size:255" json:"address,omitempty"`
	// CreatedAt is the timestamp when the school was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the school was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if none was set.
func (s *School) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	return nil
}
