package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"player-lab/domain"
	"player-lab/errors"
	"player-lab/internal"
	"player-lab/observability"
	"player-lab/runtime"
	"strconv"
	"syscall"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const usage = "usage: multiprocess <playerId> <isInitiator> [seed]"

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Player terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run plays a single player over TCP. The responder listens on the
// configured port, the initiator connects to it.
func run(args []string) (int, error) {
	if len(args) < 2 {
		return exitConfig, fmt.Errorf("%w: %s", errors.ErrInvalidArguments, usage)
	}
	playerID := args[0]
	initiator, err := strconv.ParseBool(args[1])
	if err != nil {
		return exitConfig, fmt.Errorf("%w: isInitiator %q: %s", errors.ErrInvalidArguments, args[1], usage)
	}
	seed := ""
	if len(args) > 2 {
		seed = args[2]
	}

	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel).With("player", playerID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	role := domain.RoleOf(initiator)
	address := net.JoinHostPort("", strconv.Itoa(config.NetworkPort))
	if role == domain.Initiator {
		address = config.NetworkOptions().Address()
	}
	printBanner(log, fmt.Sprintf("%s (%s)", playerID, role), "tcp "+address)

	report, err := runtime.NewOrchestrator(log, config).RunSeparateProcess(ctx, playerID, initiator, seed)
	if err != nil && len(report.Results) == 0 {
		return exitRuntime, err
	}
	observability.Summary(os.Stdout, report)
	if err != nil {
		return exitRuntime, err
	}
	if err = report.Err(); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}

func printBanner(log *slog.Logger, title, transport string) {
	stats, err := observability.CollectProcessStats(os.Getpid())
	if err != nil {
		log.Warn("Process stats unavailable", "error", err)
		return
	}
	observability.Banner(os.Stdout, color.SupportColor(), title, transport, stats)
}
