// Package notify places the voice-call alert when the watched option appears.
package notify

import (
	"context"
	"errors"
)

// ErrCallFailed wraps every failure to place a call.
var ErrCallFailed = errors.New("voice call failed")

// Notifier delivers a one-shot alert message.
//
// Implementations do not retry. Callers treat a returned error as
// informational: it is logged and never changes the outcome of a poll.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Nop is a notifier that does nothing. A poll cycle built without a
// notifier falls back to it.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(context.Context, string) error { return nil }
