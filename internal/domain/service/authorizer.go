package service

import (
	"context"
	"time"
)

// RejectionHandler is called when the backend rejects a credential. token is
// the credential the rejected request carried, which may already be stale.
type RejectionHandler func(ctx context.Context, token string, statusCode int)

// RequestAuthorizer holds the process-wide bearer credential attached to
// every outgoing request while armed.
type RequestAuthorizer interface {
	// Arm makes subsequent requests carry token.
	Arm(token string)
	// Disarm stops attaching a credential.
	Disarm()
	// Token returns the armed token and whether one is armed.
	Token() (string, bool)
	// OnRejected registers the handler for 401/403 responses to credentialed requests.
	OnRejected(handler RejectionHandler)
	// Reject notifies the registered handlers. Transports call it.
	Reject(ctx context.Context, token string, statusCode int)
}

// TokenInspector reads claims from an opaque token without verifying it.
type TokenInspector interface {
	// ExpiresAt returns the expiry and true when the token carries one.
	ExpiresAt(token string) (time.Time, bool)
}

// Navigator is the routing side effect triggered by logout.
type Navigator interface {
	ToLogin(ctx context.Context)
}
