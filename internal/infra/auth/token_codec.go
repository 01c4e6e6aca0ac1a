// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"

	"backoffice/config"
	"backoffice/internal/domain/service"
)

const (
	keyIterations = 4096
	keyLength     = 32
)

// keySalt is a fixed application salt for PBKDF2. The encryption here is
// obfuscation of the cookie payload, not a security boundary; the upstream
// API still verifies every token signature.
var keySalt = []byte("backoffice.session.v1")

// tokenCodec implements service.TokenCodec with AES-256-GCM over a key
// derived from the configured session secret.
type tokenCodec struct {
	aead cipher.AEAD
}

// NewTokenCodec is the constructor for tokenCodec. It fails when the
// session secret is missing, which indicates a broken deployment.
func NewTokenCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	key := pbkdf2.Key([]byte(cfg.Session.Secret), keySalt, keyIterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "create cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "create AEAD")
	}

	return &tokenCodec{aead: aead}, nil
}

// Encrypt seals the raw token with a fresh random nonce, so repeated
// encryptions of the same token never produce the same ciphertext.
func (c *tokenCodec) Encrypt(rawToken string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "generate nonce")
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(rawToken), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a sealed token. Any failure collapses to the empty string:
// a corrupt or foreign ciphertext is indistinguishable from no credential.
func (c *tokenCodec) Decrypt(ciphertext string) string {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return ""
	}

	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize {
		return ""
	}

	plain, err := c.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return ""
	}
	if !utf8.Valid(plain) {
		return ""
	}

	return string(plain)
}

// Claims decodes the token's claims without signature verification. This
// is a freshness check only; the upstream API is the security boundary.
func (c *tokenCodec) Claims(rawToken string) (*service.TokenClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(rawToken, jwt.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(err, "parse token claims")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("token has no usable expiry claim")
	}

	return &service.TokenClaims{
		Subject:   subjectClaim(mapClaims),
		ExpiresAt: exp.Time,
	}, nil
}

// IsExpired fails closed: a token whose claims cannot be decoded counts
// as expired.
func (c *tokenCodec) IsExpired(rawToken string) bool {
	claims, err := c.Claims(rawToken)
	if err != nil {
		return true
	}

	return claims.ExpiresAt.Before(time.Now())
}

// subjectClaim prefers the platform's "id" claim and falls back to the
// registered "sub" claim.
func subjectClaim(claims jwt.MapClaims) string {
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}

	sub, _ := claims.GetSubject()

	return sub
}
