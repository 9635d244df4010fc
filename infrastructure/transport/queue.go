package transport

import (
	"context"
	"fmt"
	"log/slog"
	"player-lab/contract"
	"player-lab/errors"
	"time"

	"github.com/samber/lo"
)

// DefaultSendTimeout bounds how long Send waits for room in the outbound queue.
const DefaultSendTimeout = 1 * time.Second

// QueueChannel binds the channel contract to two bounded Go channels shared
// with a peer living in the same process.
type QueueChannel struct {
	log         *slog.Logger
	incoming    <-chan string
	outgoing    chan<- string
	sendTimeout time.Duration
}

// NewQueuePair builds two crossed channels: what one sends, the other receives.
func NewQueuePair(log *slog.Logger, capacity int, sendTimeout time.Duration) (*QueueChannel, *QueueChannel) {
	a := make(chan string, capacity)
	b := make(chan string, capacity)
	return NewQueueChannel(log, b, a, sendTimeout), NewQueueChannel(log, a, b, sendTimeout)
}

func NewQueueChannel(log *slog.Logger, incoming <-chan string, outgoing chan<- string, sendTimeout time.Duration) *QueueChannel {
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}
	return &QueueChannel{
		log:         log,
		incoming:    incoming,
		outgoing:    outgoing,
		sendTimeout: sendTimeout,
	}
}

// Send offers the message to the outbound queue. A full queue past the send
// timeout drops the message. A cancelled ctx is reported as ErrSendInterrupted.
func (c *QueueChannel) Send(ctx context.Context, message *string) error {
	if message == nil {
		return nil
	}
	if ctx.Err() != nil {
		return c.interrupted(ctx)
	}

	timer := time.NewTimer(c.sendTimeout)
	defer timer.Stop()

	select {
	case c.outgoing <- *message:
		return nil
	case <-timer.C:
		c.log.Warn("Failed to send message within timeout",
			"message", *message, "timeout", c.sendTimeout)
		return nil
	case <-ctx.Done():
		return c.interrupted(ctx)
	}
}

// Receive blocks until a message is queued. A cancelled ctx returns nil and
// stays cancelled for the caller.
func (c *QueueChannel) Receive(ctx context.Context) *string {
	if ctx.Err() != nil {
		c.log.Debug("Receive interrupted", "err", context.Cause(ctx))
		return nil
	}
	select {
	case message, ok := <-c.incoming:
		if !ok {
			return nil
		}
		return lo.ToPtr(message)
	case <-ctx.Done():
		c.log.Debug("Receive interrupted", "err", context.Cause(ctx))
		return nil
	}
}

// Close has nothing to release.
func (c *QueueChannel) Close() error {
	return nil
}

func (c *QueueChannel) interrupted(ctx context.Context) error {
	c.log.Debug("Send interrupted", "err", context.Cause(ctx))
	return fmt.Errorf("%w: %w", errors.ErrSendInterrupted, context.Cause(ctx))
}

var _ contract.Channel = (*QueueChannel)(nil)
