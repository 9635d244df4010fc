package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"player-lab/errors"
	"player-lab/runtime"
	"syscall"

	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Launcher terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run starts the responder and the initiator as two multiprocess children:
// usage `launcher [-binary path] [-delay 500ms] [-log-level INFO] [seed]`.
func run() (int, error) {
	binary := flag.String("binary", siblingBinary("multiprocess"), "Path to the multiprocess player binary")
	delay := flag.Duration("delay", runtime.DefaultStartDelay, "Delay between the responder and the initiator start")
	level := flag.String("log-level", "INFO", "Launcher log level")
	flag.Parse()

	log := logs.GetLoggerFromString(*level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := runtime.NewLauncher(log).Launch(ctx, runtime.LaunchRequest{
		Binary:      *binary,
		InitiatorID: runtime.InitiatorID,
		ResponderID: runtime.ResponderID,
		Seed:        flag.Arg(0),
		StartDelay:  *delay,
	})
	switch {
	case errors.Is(err, errors.ErrInvalidArguments):
		return exitConfig, err
	case err != nil:
		return exitRuntime, err
	}
	log.Info("Both players exited cleanly")
	return exitOK, nil
}

// siblingBinary looks for name next to the launcher executable.
func siblingBinary(name string) string {
	executable, err := os.Executable()
	if err != nil {
		return name
	}
	return filepath.Join(filepath.Dir(executable), name)
}
