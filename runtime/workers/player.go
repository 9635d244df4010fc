package workers

import (
	"context"
	"fmt"
	"log/slog"
	"player-lab/contract"
	"player-lab/domain"
	"player-lab/errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
)

const DefaultPaceInterval = 100 * time.Millisecond

type PlayerSettings struct {
	// MaxMessages caps both the sent and the received counters.
	MaxMessages int
	// PaceInterval is the pause between two rounds.
	PaceInterval time.Duration
}

// Player drives the turn-taking exchange over any channel.
// It runs exactly once; a second Run does nothing.
type Player struct {
	id       string
	role     domain.Role
	channel  contract.Channel
	seed     string
	settings PlayerSettings
	log      *slog.Logger

	sent     atomic.Int64
	received atomic.Int64
	started  atomic.Bool
	done     chan struct{}

	mu       sync.Mutex
	cancel   context.CancelFunc
	shutdown bool
	outcome  domain.Outcome
	cause    error
}

func NewPlayer(
	log *slog.Logger,
	id string,
	channel contract.Channel,
	role domain.Role,
	seed string,
	settings PlayerSettings,
) *Player {
	return &Player{
		id:       id,
		role:     role,
		channel:  channel,
		seed:     seed,
		settings: settings,
		log:      log.With("player", id, "role", role.String()),
		done:     make(chan struct{}),
	}
}

func (p *Player) Name() string      { return p.id }
func (p *Player) ID() string        { return p.id }
func (p *Player) Role() domain.Role { return p.role }

// Done is closed once Run has returned.
func (p *Player) Done() <-chan struct{} { return p.done }

func (p *Player) Stats() domain.Stats {
	return domain.Stats{Sent: int(p.sent.Load()), Received: int(p.received.Load())}
}

func (p *Player) Outcome() domain.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outcome
}

func (p *Player) Result() domain.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return domain.Result{
		PlayerID: p.id,
		Role:     p.role,
		Stats:    p.Stats(),
		Outcome:  p.outcome,
		Cause:    p.cause,
	}
}

// Shutdown asks a running or future Run to stop at its next blocking point.
func (p *Player) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shutdown = true
	if p.cancel != nil {
		p.cancel()
	}
}

// Run never fails: every way out of the exchange is a terminal state logged
// with the final counters.
func (p *Player) Run(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		p.log.Warn("Player already ran, ignoring")
		return nil
	}
	ctx, release := p.bind(ctx)
	defer release()
	defer close(p.done)
	defer func() {
		if r := recover(); r != nil {
			p.conclude(domain.Stopped, fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r))
		}
	}()

	p.log.Info("Started", "initiator", p.role == domain.Initiator, "max", p.settings.MaxMessages)
	outcome, err := p.exchange(ctx)
	p.conclude(outcome, err)
	return nil
}

func (p *Player) exchange(ctx context.Context) (domain.Outcome, error) {
	limit := int64(p.settings.MaxMessages)

	if p.role == domain.Initiator {
		if err := p.send(ctx, p.seed); err != nil {
			return domain.Stopped, err
		}
	}

	for p.sent.Load() <= limit && p.received.Load() <= limit {
		message := p.channel.Receive(ctx)
		received := p.received.Add(1)
		if message == nil {
			p.log.Info("Received end of stream", "received", received)
			return domain.EndOfStream, context.Cause(ctx)
		}
		p.log.Info("Received", "message", *message, "received", received)

		// The initiator closes the exchange without answering the last message.
		if p.role == domain.Initiator && received >= limit {
			return domain.Completed, nil
		}

		payload := domain.NextPayload(*message, int(p.sent.Load()+1))
		if err := p.send(ctx, payload); err != nil {
			return domain.Stopped, err
		}
		if err := pause(ctx, p.settings.PaceInterval); err != nil {
			// Nothing is in flight during the pause, so a shutdown there ends the stream cleanly.
			if errors.Is(err, errors.ErrPlayerShutdown) {
				p.log.Info("Shut down between rounds", "received", p.received.Load())
				return domain.EndOfStream, err
			}
			return domain.Stopped, err
		}
	}
	return domain.Completed, nil
}

// send counts the message before handing it over; a dropped message still counts.
func (p *Player) send(ctx context.Context, payload string) error {
	sent := p.sent.Add(1)
	if err := p.channel.Send(ctx, lo.ToPtr(payload)); err != nil {
		return err
	}
	p.log.Info("Sent", "message", payload, "sent", sent)
	return nil
}

func (p *Player) conclude(outcome domain.Outcome, cause error) {
	p.mu.Lock()
	p.outcome = outcome
	p.cause = cause
	p.mu.Unlock()

	stats := p.Stats()
	if outcome == domain.Stopped {
		p.log.Warn("Stopped", "cause", cause, "sent", stats.Sent, "received", stats.Received)
		return
	}
	p.log.Info("Completed", "outcome", outcome.String(), "sent", stats.Sent, "received", stats.Received)
}

// bind derives the run context and lets Shutdown cancel it.
func (p *Player) bind(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	p.mu.Lock()
	p.cancel = func() { cancel(errors.ErrPlayerShutdown) }
	if p.shutdown {
		cancel(errors.ErrPlayerShutdown)
	}
	p.mu.Unlock()
	return ctx, func() { cancel(nil) }
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}

var _ contract.Worker = (*Player)(nil)
