package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/GoSchoolHub/GoSchoolHub/internal/db/models"
)

// Gorm implements Store backed by a gorm database handle.
type Gorm struct {
	db *gorm.DB
}

// NewGorm creates a gorm backed store.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// compile time interface check
var _ Store = (*Gorm)(nil)

// FindSchoolByDomain resolves a tenant by its exact domain label.
func (s *Gorm) FindSchoolByDomain(ctx context.Context, domain string) (*models.School, error) {
	var school models.School

	err := s.db.WithContext(ctx).Where("domain = ?", domain).First(&school).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query school by domain: %w", err)
	}

	return &school, nil
}

// FindSchoolByID loads a school by primary key.
func (s *Gorm) FindSchoolByID(ctx context.Context, id string) (*models.School, error) {
	var school models.School

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&school).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query school: %w", err)
	}

	return &school, nil
}

// ListSchools returns all schools ordered by name.
func (s *Gorm) ListSchools(ctx context.Context) ([]models.School, error) {
	var schools []models.School

	if err := s.db.WithContext(ctx).Order("name").Find(&schools).Error; err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}

	return schools, nil
}

// CreateSchool persists a new school.
func (s *Gorm) CreateSchool(ctx context.Context, school *models.School) error {
	if err := s.db.WithContext(ctx).Create(school).Error; err != nil {
		return fmt.Errorf("failed to create school: %w", err)
	}

	return nil
}

// UpdateSchool persists changes to an existing school.
func (s *Gorm) UpdateSchool(ctx context.Context, school *models.School) error {
	if err := s.db.WithContext(ctx).Save(school).Error; err != nil {
		return fmt.Errorf("failed to update school: %w", err)
	}

	return nil
}

// DeleteSchool removes a school by primary key.
func (s *Gorm) DeleteSchool(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.School{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete school: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// FindUserByEmail loads a user by email scoped to one school.
func (s *Gorm) FindUserByEmail(ctx context.Context, email, schoolID string) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).
		Where("email = ? AND school_id = ?", email, schoolID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return &user, nil
}

// FindUserByID loads a user with its role profile joined.
func (s *Gorm) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Student").
		Where("id = ?", id).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// FindUserByRefreshToken loads the user whose stored refresh token exactly
// equals the supplied value.
func (s *Gorm) FindUserByRefreshToken(ctx context.Context, value string) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Where("refresh_token = ?", value).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user by refresh token: %w", err)
	}

	return &user, nil
}

// CreateUser persists a new user.
func (s *Gorm) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// CreateProfile persists a role profile row.
func (s *Gorm) CreateProfile(ctx context.Context, profile models.Profile) error {
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// UpdateAuthState stores a new refresh token and login timestamp.
// The unconditional overwrite is the single-active-session policy: a second
// login invalidates the refresh token of the first.
func (s *Gorm) UpdateAuthState(ctx context.Context, userID, refreshToken string, lastLoginAt time.Time) error {
	err := s.db.WithContext(context.WithoutCancel(ctx)).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token": refreshToken,
			"last_login_at": lastLoginAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update auth state: %w", err)
	}

	return nil
}

// RotateRefreshToken replaces the stored refresh token only if it still
// equals current. The single conditional UPDATE makes concurrent redemptions
// of the same token race-free: the loser observes zero affected rows.
// The write runs detached from request cancellation so a client disconnect
// cannot leave a half-rotated token.
func (s *Gorm) RotateRefreshToken(ctx context.Context, userID, current, next string) error {
	result := s.db.WithContext(context.WithoutCancel(ctx)).
		Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", userID, current).
		Update("refresh_token", next)
	if result.Error != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrStaleRefreshToken
	}

	return nil
}

// SchoolOverview loads the tenant landing read model.
func (s *Gorm) SchoolOverview(ctx context.Context, schoolID string) (*SchoolOverview, error) {
	overview := SchoolOverview{}

	school, err := s.FindSchoolByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	overview.School = *school

	if err := s.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("name").
		Find(&overview.Teachers).Error; err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}

	if err := s.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Assignments").
		Where("school_id = ?", schoolID).
		Order("name").
		Find(&overview.Classes).Error; err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}

	return &overview, nil
}

// FindClassInSchool loads a class with teacher, assignments and enrollments,
// scoped to one school.
func (s *Gorm) FindClassInSchool(ctx context.Context, classID, schoolID string) (*models.Class, error) {
	var class models.Class

	err := s.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Assignments").
		Preload("Enrollments.Student").
		Where("id = ? AND school_id = ?", classID, schoolID).
		First(&class).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query class: %w", err)
	}

	return &class, nil
}
