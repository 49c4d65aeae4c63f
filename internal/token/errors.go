package token

import "errors"

// ErrInvalidToken is returned for any token that fails verification,
// whether expired, tampered with or signed for the other token class.
var ErrInvalidToken = errors.New("invalid token")
