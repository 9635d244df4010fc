// Package runtime wires channels, players and the supervisor for one session.
// It owns lifecycles only; the exchange rules live in workers.Player.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"player-lab/contract"
	"player-lab/domain"
	"player-lab/infrastructure/transport"
	"player-lab/internal"
	"player-lab/runtime/workers"
	"time"

	"github.com/google/uuid"
)

const (
	InitiatorID = "Player1"
	ResponderID = "Player2"
)

type Orchestrator struct {
	log    *slog.Logger
	config internal.Config
}

func NewOrchestrator(log *slog.Logger, config internal.Config) *Orchestrator {
	return &Orchestrator{log: log, config: config}
}

// RunSameProcess plays both roles in this process over a queue pair.
// The responder is given the grace period once the initiator is done, then
// shut down since nothing else will ever reach it.
func (o *Orchestrator) RunSameProcess(ctx context.Context, seed string) (domain.Report, error) {
	started := time.Now()
	session := uuid.NewString()
	log := o.log.With("session", session)

	first, second := transport.NewQueuePair(log, o.config.QueueCapacity, o.config.SendTimeout)
	defer closeChannel(log, first)
	defer closeChannel(log, second)

	settings := o.config.PlayerSettings()
	initiator := workers.NewPlayer(log, InitiatorID, first, domain.Initiator, domain.SeedOrDefault(seed), settings)
	responder := workers.NewPlayer(log, ResponderID, second, domain.Responder, "", settings)

	sup := workers.NewSupervisor(log, 0)
	sup.Add(responder, initiator)
	supervised := make(chan struct{})
	go func() {
		defer close(supervised)
		sup.Run(ctx)
	}()

	select {
	case <-initiator.Done():
	case <-ctx.Done():
	}

	grace := time.NewTimer(o.config.ResponderGrace)
	defer grace.Stop()
	select {
	case <-responder.Done():
	case <-grace.C:
		log.Debug("Responder still waiting, shutting it down", "grace", o.config.ResponderGrace)
	case <-ctx.Done():
	}
	responder.Shutdown()
	initiator.Shutdown()
	<-supervised

	report := domain.Report{
		SessionID: session,
		Mode:      domain.SameProcess,
		Results:   []domain.Result{initiator.Result(), responder.Result()},
		Elapsed:   time.Since(started),
	}
	if ctx.Err() != nil {
		return report, fmt.Errorf("exchange interrupted: %w", context.Cause(ctx))
	}
	return report, nil
}

// RunSeparateProcess plays one role over TCP: the responder listens,
// the initiator connects.
func (o *Orchestrator) RunSeparateProcess(ctx context.Context, playerID string, initiator bool, seed string) (domain.Report, error) {
	started := time.Now()
	session := uuid.NewString()
	role := domain.RoleOf(initiator)
	log := o.log.With("session", session)

	channel, err := o.connect(ctx, log, role)
	if err != nil {
		return domain.Report{}, err
	}
	defer closeChannel(log, channel)

	if role == domain.Initiator {
		seed = domain.SeedOrDefault(seed)
	} else {
		seed = ""
	}
	player := workers.NewPlayer(log, playerID, channel, role, seed, o.config.PlayerSettings())
	_ = player.Run(ctx)

	report := domain.Report{
		SessionID: session,
		Mode:      domain.SeparateProcess,
		Results:   []domain.Result{player.Result()},
		Elapsed:   time.Since(started),
	}
	if ctx.Err() != nil {
		return report, fmt.Errorf("exchange interrupted: %w", context.Cause(ctx))
	}
	return report, nil
}

func (o *Orchestrator) connect(ctx context.Context, log *slog.Logger, role domain.Role) (*transport.NetworkChannel, error) {
	if role == domain.Responder {
		channel, err := transport.Listen(ctx, log, o.config.NetworkPort)
		if err != nil {
			return nil, fmt.Errorf("listen on port %d: %w", o.config.NetworkPort, err)
		}
		return channel, nil
	}
	options := o.config.NetworkOptions()
	channel, err := transport.Dial(ctx, log, options)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", options.Address(), err)
	}
	return channel, nil
}

func closeChannel(log *slog.Logger, channel contract.Channel) {
	if err := channel.Close(); err != nil {
		log.Debug("Channel close failed", "error", err)
	}
}
