package api

import (
	"context"
	"sync"

	"storefront/internal/domain/service"
)

// bearerAuthorizer is the process-wide credential shared by every backend call.
type bearerAuthorizer struct {
	mu       sync.RWMutex
	token    string
	handlers []service.RejectionHandler
}

// NewRequestAuthorizer returns a disarmed authorizer.
func NewRequestAuthorizer() service.RequestAuthorizer {
	return &bearerAuthorizer{}
}

func (a *bearerAuthorizer) Arm(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

func (a *bearerAuthorizer) Disarm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
}

func (a *bearerAuthorizer) Token() (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.token, a.token != ""
}

func (a *bearerAuthorizer) OnRejected(handler service.RejectionHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handlers = append(a.handlers, handler)
}

func (a *bearerAuthorizer) Reject(ctx context.Context, token string, statusCode int) {
	a.mu.RLock()
	handlers := make([]service.RejectionHandler, len(a.handlers))
	copy(handlers, a.handlers)
	a.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, token, statusCode)
	}
}
