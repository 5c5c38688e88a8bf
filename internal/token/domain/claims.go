// Package domain defines the token types: the ClaimSet payload and the token
// verification errors.
package domain

import (
	"time"
)

// Reserved claim names used by the token layer.
const (
	// ClaimIssuedAt is the standard issued-at timestamp claim.
	ClaimIssuedAt = "iat"
	// ClaimExpiry is the standard expiry timestamp claim.
	ClaimExpiry = "exp"
	// ClaimSubject is the standard subject claim.
	ClaimSubject = "sub"
	// ClaimRand carries the fresh random nonce of the extra-integrity layer.
	ClaimRand = "rand"
	// ClaimSign carries the digest of the extra-integrity layer.
	ClaimSign = "sign"
)

// ClaimSet is the payload of a token: a mapping of claim name to value.
// A ClaimSet is only ever fully recovered or rejected, never partially valid.
type ClaimSet map[string]any

// Subject returns the "sub" claim, or the empty string when absent.
func (c ClaimSet) Subject() string {
	if sub, ok := c[ClaimSubject].(string); ok {
		return sub
	}
	return ""
}

// IssuedAt returns the "iat" claim as a time, reporting whether it was present.
func (c ClaimSet) IssuedAt() (time.Time, bool) {
	return c.timeClaim(ClaimIssuedAt)
}

// ExpiresAt returns the "exp" claim as a time, reporting whether it was present.
func (c ClaimSet) ExpiresAt() (time.Time, bool) {
	return c.timeClaim(ClaimExpiry)
}

// timeClaim decodes a numeric-date claim. JSON numbers arrive as float64.
func (c ClaimSet) timeClaim(name string) (time.Time, bool) {
	switch v := c[name].(type) {
	case float64:
		return time.Unix(int64(v), 0).UTC(), true
	case int64:
		return time.Unix(v, 0).UTC(), true
	default:
		return time.Time{}, false
	}
}
