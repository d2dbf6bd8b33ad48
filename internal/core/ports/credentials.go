// internal/core/ports/credentials.go
package ports

import "context"

// CredentialVerifier checks a username/password pair before a session is opened.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}
