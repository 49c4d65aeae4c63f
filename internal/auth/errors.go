package auth

import "errors"

var (
	// ErrUserExists is returned when registering an email already used within
	// the same school. The same email may register under a different school.
	ErrUserExists = errors.New("user already exists in this school")

	// ErrInvalidCredentials is returned for a failed login. Unknown email and
	// wrong password deliberately collapse into this one error so clients can
	// not probe which addresses are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken is returned when a refresh token is unknown,
	// expired, tampered with or already rotated away.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrRoleNotAllowed is returned when registration is attempted with a
	// privileged role. Super-admin identities are provisioned out-of-band.
	ErrRoleNotAllowed = errors.New("role not allowed for registration")
)
