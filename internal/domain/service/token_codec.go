// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate rules that don't naturally fit within a single entity.
package service

import (
	"time"
)

// TokenClaims are the fields the gateway understands from a bearer token.
// Claims are decoded without signature verification: the upstream API is
// the security boundary, this side only needs a freshness check and the
// subject identifier.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenCodec encrypts bearer tokens for at-rest cookie storage and
// inspects their embedded claims. All methods are pure functions over
// strings; construction fails when no secret is configured.
type TokenCodec interface {
	// Encrypt seals a raw bearer token. The output is not deterministic:
	// two encryptions of the same token differ.
	Encrypt(rawToken string) (string, error)

	// Decrypt opens a sealed token. It returns the empty string on any
	// failure (wrong key, corrupt input, truncated payload) so callers
	// treat decode failure identically to "no credential".
	Decrypt(ciphertext string) string

	// Claims decodes the token's claims without verifying its signature.
	Claims(rawToken string) (*TokenClaims, error)

	// IsExpired reports whether the token's claimed expiry has passed.
	// A token whose claims cannot be decoded counts as expired.
	IsExpired(rawToken string) bool
}
