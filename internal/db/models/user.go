package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// User represents an identity in the system. A user belongs to exactly one
// school and the email address is unique within that school only, so the
// same address may register independently under two different schools.
// At most one refresh token per user is considered live: the stored value is
// replaced on every login, registration and refresh, which invalidates all
// previously issued refresh tokens for that user.
type User struct {
	// ID is the unique identifier for the user.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Email is the login address, unique per school (not globally).
	Email string `gorm:"size:255;not null;uniqueIndex:idx_users_email_school" json:"email"`
	// Password is the Argon2id hashed password. Never serialized.
	Password string `gorm:"size:255;not null" json:"-"`
	// Role is the identity role drawn from the closed role set.
	Role Role `gorm:"type:varchar(20);not null" json:"role"`
	// SchoolID is the tenant the user belongs to.
	SchoolID string `gorm:"size:36;not null;uniqueIndex:idx_users_email_school" json:"schoolId"`
	// School is the associated tenant record.
	School School `gorm:"foreignKey:SchoolID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"-"`
	// RefreshToken is the single currently-valid refresh token value, nil when
	// the user has no live session. Never serialized.
	RefreshToken *string `gorm:"size:512" json:"-"`
	// LastLoginAt is the timestamp of the last successful auth event.
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	// Teacher is the optional teacher profile (role TEACHER only).
	Teacher *Teacher `gorm:"foreignKey:UserID;references:ID" json:"-"`
	// Student is the optional student profile (role STUDENT only).
	Student *Student `gorm:"foreignKey:UserID;references:ID" json:"-"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if none was set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	return nil
}

// Name returns the display name carried by the role profile, empty if the
// user has none.
func (u *User) Name() string {
	switch {
	case u.Teacher != nil:
		return u.Teacher.DisplayName()
	case u.Student != nil:
		return u.Student.DisplayName()
	default:
		return ""
	}
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// This function should be used when creating or updating user passwords.
// It uses the default Argon2id parameters for secure password hashing.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// It uses constant-time comparison to prevent timing attacks.
// Returns true if the password matches, false otherwise.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
