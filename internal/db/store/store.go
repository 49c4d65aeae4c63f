// Package store defines the persistence interface consumed by the auth core
// and route handlers, together with its gorm implementation. Services receive
// a Store by constructor injection so tests can substitute an in-memory
// database.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/GoSchoolHub/GoSchoolHub/internal/db/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrStaleRefreshToken is returned by RotateRefreshToken when the stored
	// refresh token no longer equals the expected current value, meaning a
	// concurrent redemption already rotated it.
	ErrStaleRefreshToken = errors.New("stored refresh token changed")
)

// SchoolOverview is the read model for the tenant landing endpoint: the
// school record plus its teachers and classes with their assignments.
type SchoolOverview struct {
	School   models.School    `json:"school"`
	Teachers []models.Teacher `json:"teachers"`
	Classes  []models.Class   `json:"classes"`
}

// Store is the persistence boundary of the application. No component writes
// the underlying tables directly; everything goes through this interface.
type Store interface {
	// FindSchoolByDomain resolves a tenant by its exact domain label.
	FindSchoolByDomain(ctx context.Context, domain string) (*models.School, error)
	// FindSchoolByID loads a school by primary key.
	FindSchoolByID(ctx context.Context, id string) (*models.School, error)
	// ListSchools returns all schools.
	ListSchools(ctx context.Context) ([]models.School, error)
	// CreateSchool persists a new school.
	CreateSchool(ctx context.Context, school *models.School) error
	// UpdateSchool persists changes to an existing school.
	UpdateSchool(ctx context.Context, school *models.School) error
	// DeleteSchool removes a school by primary key.
	DeleteSchool(ctx context.Context, id string) error

	// FindUserByEmail loads a user by email scoped to one school.
	FindUserByEmail(ctx context.Context, email, schoolID string) (*models.User, error)
	// FindUserByID loads a user with its role profile joined.
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	// FindUserByRefreshToken loads the user whose stored refresh token
	// exactly equals the supplied value.
	FindUserByRefreshToken(ctx context.Context, value string) (*models.User, error)
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error
	// CreateProfile persists a role profile row.
	CreateProfile(ctx context.Context, profile models.Profile) error
	// UpdateAuthState stores a new refresh token and login timestamp,
	// unconditionally replacing any previous refresh token.
	UpdateAuthState(ctx context.Context, userID, refreshToken string, lastLoginAt time.Time) error
	// RotateRefreshToken replaces the stored refresh token only if it still
	// equals current. Exactly one concurrent caller per token succeeds.
	RotateRefreshToken(ctx context.Context, userID, current, next string) error

	// SchoolOverview loads the tenant landing read model.
	SchoolOverview(ctx context.Context, schoolID string) (*SchoolOverview, error)
	// FindClassInSchool loads a class with teacher, assignments and
	// enrollments, scoped to one school.
	FindClassInSchool(ctx context.Context, classID, schoolID string) (*models.Class, error)
}
