package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GoSchoolHub/GoSchoolHub/internal/db/models"
	strg "github.com/GoSchoolHub/GoSchoolHub/internal/db/store"
	"github.com/GoSchoolHub/GoSchoolHub/internal/token"
)

// Service provides registration, login and refresh-token rotation.
type Service struct {
	store strg.Store
	codec *token.Codec
}

// NewService creates a new auth service.
func NewService(st strg.Store, codec *token.Codec) *Service {
	return &Service{store: st, codec: codec}
}

// RegisterInput carries the tenant-resolved registration request.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     models.Role
	SchoolID string
}

// Result is a successful auth outcome: the password-stripped user and a
// freshly issued token pair whose refresh token has been persisted.
type Result struct {
	User   *models.User
	Tokens token.Pair
}

// Register creates a new identity in the given school, creates the role
// profile for TEACHER/STUDENT roles, and issues a token pair.
// Email uniqueness is scoped to the school, not global.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	if !in.Role.Valid() || in.Role.Privileged() {
		return nil, ErrRoleNotAllowed
	}

	_, err := s.store.FindUserByEmail(ctx, in.Email, in.SchoolID)
	if err == nil {
		return nil, ErrUserExists
	}

	if !errors.Is(err, strg.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: models.HashPassword(in.Password),
		Role:     in.Role,
		SchoolID: in.SchoolID,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if profile := in.Role.NewProfile(user.ID, in.SchoolID, in.Name); profile != nil {
		if err := s.store.CreateProfile(ctx, profile); err != nil {
			return nil, err
		}

		switch p := profile.(type) {
		case *models.Teacher:
			user.Teacher = p
		case *models.Student:
			user.Student = p
		}
	}

	return s.issue(ctx, user)
}

// Login verifies the credentials of a user within one school and issues a
// new token pair, replacing any previously stored refresh token.
func (s *Service) Login(ctx context.Context, email, password, schoolID string) (*Result, error) {
	user, err := s.store.FindUserByEmail(ctx, email, schoolID)
	if errors.Is(err, strg.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// Refresh exchanges a previously issued refresh token for a new token pair.
// The supplied value must both match the stored value of some user and carry
// a valid signature; the stored value is then rotated so each refresh token
// can be redeemed exactly once.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Result, error) {
	user, err := s.store.FindUserByRefreshToken(ctx, refreshToken)
	if errors.Is(err, strg.ErrNotFound) {
		return nil, ErrInvalidRefreshToken
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user by refresh token: %w", err)
	}

	// storage match alone is not sufficient, the signature is still mandatory
	if _, err := s.codec.Verify(refreshToken, token.Refresh); err != nil {
		return nil, ErrInvalidRefreshToken
	}

	pair, err := s.codec.IssuePair(user.ID, user.Role, user.SchoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token pair: %w", err)
	}

	err = s.store.RotateRefreshToken(ctx, user.ID, refreshToken, pair.Refresh)
	if errors.Is(err, strg.ErrStaleRefreshToken) {
		// a concurrent redemption won the rotation
		return nil, ErrInvalidRefreshToken
	}

	if err != nil {
		return nil, err
	}

	return &Result{User: user, Tokens: pair}, nil
}

// issue mints a token pair for the user and persists the refresh token along
// with the login timestamp.
func (s *Service) issue(ctx context.Context, user *models.User) (*Result, error) {
	pair, err := s.codec.IssuePair(user.ID, user.Role, user.SchoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token pair: %w", err)
	}

	now := time.Now().UTC()
	if err := s.store.UpdateAuthState(ctx, user.ID, pair.Refresh, now); err != nil {
		return nil, err
	}

	user.RefreshToken = &pair.Refresh
	user.LastLoginAt = &now

	return &Result{User: user, Tokens: pair}, nil
}
