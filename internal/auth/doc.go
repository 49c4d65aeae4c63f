// Package auth implements the tenant-scoped authentication core: credential
// verification and registration, signed token pair issuance, refresh-token
// rotation, and the Fiber middleware gating protected routes.
//
// Tokens are signed JWT pairs carrying {userId, role, schoolId}. Access
// tokens are stateless; the refresh token is additionally matched against the
// single stored value per user, so rotating it on every auth event is the
// only session termination mechanism. All lookups and writes go through the
// injected store.Store.
//
// The middleware distinguishes two route surfaces: tenant-scoped routes
// require that the token's school matches the school resolved from the
// request subdomain, while the super-admin surface skips tenant matching
// because the super-admin identity lives in the reserved system school and
// must be reachable from any host.
package auth
