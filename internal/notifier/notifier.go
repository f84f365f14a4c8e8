// internal/notifier/notifier.go
package notifier

import (
	"context"
	"errors"
)

var ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")

// Notifier delivers an HR alert over one channel. Calls are attempted once.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
	Channel() string
}

// Noop is used when no channel is configured.
type Noop struct{}

func (Noop) Notify(ctx context.Context, msg Message) error { return nil }

func (Noop) Channel() string { return "none" }
