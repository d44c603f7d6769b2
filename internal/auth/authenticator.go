package auth

import (
	"context"
)

// Authenticator verifies that a caller controls a principal before a session
// token is issued for it. This abstraction allows swapping between API keys
// and signed challenges without changing the service layer code.
type Authenticator interface {
	// Authenticate returns nil if credential proves control of principal.
	Authenticate(ctx context.Context, principal, credential string) error

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
