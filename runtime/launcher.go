package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"player-lab/errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

const DefaultStartDelay = 500 * time.Millisecond

var validate = validator.New()

// LaunchRequest describes the two player processes to start.
type LaunchRequest struct {
	// Binary is the multiprocess entry point.
	Binary      string `validate:"required"`
	InitiatorID string `validate:"required,nefield=ResponderID"`
	ResponderID string `validate:"required"`
	Seed        string
	// StartDelay separates the responder start from the initiator start.
	StartDelay time.Duration `validate:"gte=0"`
}

// Launcher starts the responder then the initiator as child processes and
// waits for both. The first failure kills the other child.
type Launcher struct {
	log *slog.Logger
}

func NewLauncher(log *slog.Logger) *Launcher {
	return &Launcher{log: log}
}

func (l *Launcher) Launch(ctx context.Context, req LaunchRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidArguments, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	responder := l.command(ctx, req.Binary, req.ResponderID, false, "")
	if err := l.start(responder, req.ResponderID); err != nil {
		return err
	}

	select {
	case <-time.After(req.StartDelay):
	case <-ctx.Done():
	}

	initiator := l.command(ctx, req.Binary, req.InitiatorID, true, req.Seed)
	if err := l.start(initiator, req.InitiatorID); err != nil {
		cancel()
		_ = responder.Wait()
		return err
	}

	results := make(chan error, 2)
	wait := func(cmd *exec.Cmd, id string) {
		err := cmd.Wait()
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", errors.ErrLaunchFailed, id, err)
			cancel()
		}
		l.log.Info("Player process exited", "player", id, "code", cmd.ProcessState.ExitCode())
		results <- err
	}
	go wait(responder, req.ResponderID)
	go wait(initiator, req.InitiatorID)

	return errors.Join(<-results, <-results)
}

func (l *Launcher) command(ctx context.Context, binary, id string, initiator bool, seed string) *exec.Cmd {
	args := []string{id, strconv.FormatBool(initiator)}
	if initiator && seed != "" {
		args = append(args, seed)
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &playerLogWriter{logger: l.log, player: id}
	cmd.Stderr = &playerLogWriter{logger: l.log, player: id, isError: true}
	setPlatformSpecificAttrs(cmd)
	return cmd
}

func (l *Launcher) start(cmd *exec.Cmd, id string) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrLaunchFailed, id, err)
	}
	l.log.Info("Player process started", "player", id, "pid", cmd.Process.Pid, "args", cmd.Args[1:])
	return nil
}
