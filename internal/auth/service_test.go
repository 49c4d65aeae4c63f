package auth

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GoSchoolHub/GoSchoolHub/internal/config"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/models"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/store"
	"github.com/GoSchoolHub/GoSchoolHub/internal/token"
)

func newTestService(t *testing.T) (*Service, *store.Gorm, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.School{},
		&models.User{},
		&models.Teacher{},
		&models.Student{},
	)
	require.NoError(t, err)

	st := store.NewGorm(db)
	codec := token.NewCodec(config.Auth{
		AccessSecret:    "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})

	return NewService(st, codec), st, db
}

func newTestSchool(t *testing.T, st *store.Gorm, domain string) *models.School {
	t.Helper()

	school := models.School{Name: "School " + domain, Domain: domain}
	require.NoError(t, st.CreateSchool(context.Background(), &school))

	return &school
}

func TestRegisterAndLogin(t *testing.T) {
	svc, st, _ := newTestService(t)
	school := newTestSchool(t, st, "dps-school")
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{
		Email:    "alice@x.edu",
		Password: "s3cret-pass",
		Name:     "Alice",
		Role:     models.RoleTeacher,
		SchoolID: school.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@x.edu", reg.User.Email)
	assert.Equal(t, "Alice", reg.User.Name())
	assert.NotEmpty(t, reg.Tokens.Access)
	assert.NotEmpty(t, reg.Tokens.Refresh)

	login, err := svc.Login(ctx, "alice@x.edu", "s3cret-pass", school.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotNil(t, login.User.LastLoginAt)
}

func TestRegisterDuplicatePerSchool(t *testing.T) {
	svc, st, _ := newTestService(t)
	one := newTestSchool(t, st, "one")
	two := newTestSchool(t, st, "two")
	ctx := context.Background()

	in := RegisterInput{
		Email:    "alice@x.edu",
		Password: "s3cret-pass",
		Name:     "Alice",
		Role:     models.RoleStudent,
		SchoolID: one.ID,
	}

	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrUserExists)

	// the same address registers independently under another school
	in.SchoolID = two.ID
	_, err = svc.Register(ctx, in)
	assert.NoError(t, err)
}

func TestRegisterRejectsPrivilegedRole(t *testing.T) {
	svc, st, _ := newTestService(t)
	school := newTestSchool(t, st, "one")

	for _, role := range []models.Role{models.RoleSuperAdmin, "JANITOR", ""} {
		_, err := svc.Register(context.Background(), RegisterInput{
			Email:    "mallory@x.edu",
			Password: "s3cret-pass",
			Name:     "Mallory",
			Role:     role,
			SchoolID: school.ID,
		})
		assert.ErrorIs(t, err, ErrRoleNotAllowed, "role %q", role)
	}
}

func TestLoginFailureIsOpaque(t *testing.T) {
	svc, st, _ := newTestService(t)
	school := newTestSchool(t, st, "one")
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Email:    "alice@x.edu",
		Password: "s3cret-pass",
		Name:     "Alice",
		Role:     models.RoleTeacher,
		SchoolID: school.ID,
	})
	require.NoError(t, err)

	// unknown email and wrong password are indistinguishable to the caller
	_, unknownErr := svc.Login(ctx, "nobody@x.edu", "s3cret-pass", school.ID)
	_, wrongPassErr := svc.Login(ctx, "alice@x.edu", "wrong-pass", school.ID)

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongPassErr)
}

func TestLoginScopedToSchool(t *testing.T) {
	svc, st, _ := newTestService(t)
	one := newTestSchool(t, st, "one")
	two := newTestSchool(t, st, "two")
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Email:    "alice@x.edu",
		Password: "s3cret-pass",
		Name:     "Alice",
		Role:     models.RoleTeacher,
		SchoolID: one.ID,
	})
	require.NoError(t, err)

	// valid credentials under the wrong tenant do not authenticate
	_, err = svc.Login(ctx, "alice@x.edu", "s3cret-pass", two.ID)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotation(t *testing.T) {
	svc, st, _ := newTestService(t)
	school := newTestSchool(t, st, "one")
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{
		Email:    "alice@x.edu",
		Password: "s3cret-pass",
		Name:     "Alice",
		Role:     models.RoleTeacher,
		SchoolID: school.ID,
	})
	require.NoError(t, err)

	first := reg.Tokens.Refresh

	refreshed, err := svc.Refresh(ctx, first)
	require.NoError(t, err)
	assert.NotEqual(t, first, refreshed.Tokens.Refresh)

	// each refresh token is redeemable exactly once
	_, err = svc.Refresh(ctx, first)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// the rotated-in token still works
	_, err = svc.Refresh(ctx, refreshed.Tokens.Refresh)
	assert.NoError(t, err)
}

func TestRefreshRejectsUnknownValue(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsForgedStoredValue(t *testing.T) {
	svc, st, _ := newTestService(t)
	school := newTestSchool(t, st, "one")
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{
		Email:    "alice@x.edu",
		Password: "s3cret-pass",
		Name:     "Alice",
		Role:     models.RoleTeacher,
		SchoolID: school.ID,
	})
	require.NoError(t, err)

	// a stored value without a valid signature must not redeem, even though
	// it matches the database row
	forged := "not-a-jwt"
	require.NoError(t, st.UpdateAuthState(ctx, reg.User.ID, forged, time.Now().UTC()))

	_, err = svc.Refresh(ctx, forged)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLoginInvalidatesPreviousRefreshToken(t *testing.T) {
	svc, st, _ := newTestService(t)
	school := newTestSchool(t, st, "one")
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{
		Email:    "alice@x.edu",
		Password: "s3cret-pass",
		Name:     "Alice",
		Role:     models.RoleTeacher,
		SchoolID: school.ID,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@x.edu", "s3cret-pass", school.ID)
	require.NoError(t, err)

	// the second login replaced the stored token, the first session is dead
	_, err = svc.Refresh(ctx, reg.Tokens.Refresh)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
