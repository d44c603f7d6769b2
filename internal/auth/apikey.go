package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid principal or api key")
	ErrWeakKey            = errors.New("api key must be at least 16 characters")
)

const minKeyLength = 16

// KeyAuthenticator implements API key authentication using bcrypt hashes
// configured per principal.
type KeyAuthenticator struct {
	hashes map[string][]byte
}

// NewKeyAuthenticator creates an authenticator from principal to bcrypt hash.
func NewKeyAuthenticator(hashes map[string]string) *KeyAuthenticator {
	a := &KeyAuthenticator{hashes: make(map[string][]byte, len(hashes))}
	for p, h := range hashes {
		a.hashes[p] = []byte(h)
	}
	return a
}

// HashKey returns the bcrypt hash to configure for an API key.
func HashKey(key string) (string, error) {
	if len(key) < minKeyLength {
		return "", ErrWeakKey
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash api key: %w", err)
	}
	return string(hashed), nil
}

// ValidateCredential checks if the key meets minimum requirements.
func (a *KeyAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < minKeyLength {
		return ErrWeakKey
	}
	return nil
}

// Authenticate compares the key against the principal's configured hash.
func (a *KeyAuthenticator) Authenticate(ctx context.Context, principal, credential string) error {
	hash, ok := a.hashes[principal]
	if !ok {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(credential)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
