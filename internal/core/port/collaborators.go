package port

import "context"

//go:generate mockgen -source=collaborators.go -destination=mock/collaborators.go -package=mock

// CredentialCipher reversibly encodes account passwords. The scheme itself is
// opaque to the core.
type CredentialCipher interface {
	Encrypt(plain string) (string, error)
	Decrypt(encoded string) (string, error)
}

// AuditLog is a fire-and-forget diagnostic sink. Implementations must never
// surface their own failures to the caller.
type AuditLog interface {
	Record(ctx context.Context, severity string, message string, context map[string]any)
}
