package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"player-lab/internal"
	"player-lab/observability"
	"player-lab/runtime"
	"syscall"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Single process exchange terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run plays both players in this process: usage `singleprocess [seed]`.
func run(args []string) (int, error) {
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	seed := ""
	if len(args) > 0 {
		seed = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printBanner(log, fmt.Sprintf("in-process queues, capacity %d", config.QueueCapacity))

	report, err := runtime.NewOrchestrator(log, config).RunSameProcess(ctx, seed)
	observability.Summary(os.Stdout, report)
	if err != nil {
		return exitRuntime, err
	}
	if err = report.Err(); err != nil {
		return exitRuntime, err
	}
	log.Info("Exchange finished", "session", report.SessionID, "elapsed", report.Elapsed)
	return exitOK, nil
}

func printBanner(log *slog.Logger, transport string) {
	stats, err := observability.CollectProcessStats(os.Getpid())
	if err != nil {
		log.Warn("Process stats unavailable", "error", err)
		return
	}
	observability.Banner(os.Stdout, color.SupportColor(), "Player1 + Player2", transport, stats)
}
