package messaging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Sender delivers a plain text message to a recipient handle on one
// platform. Each platform has its own wire shape behind this one capability.
type Sender interface {
	SendText(ctx context.Context, recipientHandle, text string) error
}

// Dispatcher routes outbound messages to the right platform sender.
type Dispatcher struct {
	senders map[string]Sender
	logger  *zap.Logger
}

// NewDispatcher builds a dispatcher over the given platform senders.
func NewDispatcher(senders map[string]Sender, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{senders: senders, logger: logger}
}

// Send dispatches text to handle on platform.
func (d *Dispatcher) Send(ctx context.Context, platform, handle, text string) error {
	sender, ok := d.senders[platform]
	if !ok {
		return fmt.Errorf("no sender registered for platform %q", platform)
	}
	if err := sender.SendText(ctx, handle, text); err != nil {
		d.logger.Warn("outbound message failed",
			zap.String("platform", platform), zap.Error(err))
		return err
	}
	return nil
}
