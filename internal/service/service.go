package service

import (
	"context"
	"time"

	"github.com/brightforge/agency-backend/internal/integration"
)

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

// EventDispatcher fans a business event out to the configured integrations.
type EventDispatcher interface {
	Dispatch(ctx context.Context, ev integration.Event) integration.Results
}

// detach keeps request-scoped values but drops cancellation, so side effects
// started by a request finish even if the client disconnects.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
