package workers

import (
	"context"
	"log/slog"
	"player-lab/contract"
	"player-lab/errors"
	"sync"
	"time"
)

const DefaultRestartInterval = 200 * time.Millisecond

// Supervisor Own a context and a Cancel function
// Run each player in a goroutine
// Recover panics, restart workers returning an error
// A worker returning nil is finished and never restarted
type Supervisor struct {
	Cancel          context.CancelFunc // To stop the players only
	wg              *sync.WaitGroup    // Wait for the end of goroutines
	log             *slog.Logger
	workers         []contract.Worker
	restartInterval time.Duration
}

func NewSupervisor(log *slog.Logger, restartInterval time.Duration) *Supervisor {
	if restartInterval <= 0 {
		restartInterval = DefaultRestartInterval
	}
	return &Supervisor{wg: &sync.WaitGroup{}, log: log, restartInterval: restartInterval}
}

// Run starts every added worker and blocks until all of them returned.
func (s *Supervisor) Run(ctx context.Context) {
	// 1. Local cancellation trigger tied to the parent ctx
	// If the parent (signal, orchestrator) cancels, we Cancel.
	// If WE call s.Cancel(), only our workers Cancel.
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.Cancel = cancel
	defer s.Cancel()

	// 2. One goroutine per worker, then wait for all of them
	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Start runs one worker in a dedicated goroutine. A panic or an error
// restarts it after the restart interval unless ctx is done.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Info("Stopping worker", "name", workerName)
				return
			}

			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = errors.ErrWorkerPanic
					}
				}()
				// Only this run is restarted after a crash,
				// not the whole goroutine
				return worker.Run(ctx)
			}()

			if err == nil {
				// Terminated properly, never restart !
				s.log.Info("Worker finished", "name", workerName)
				return
			}

			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", workerName)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err)
			select {
			case <-ctx.Done():
				// Context canceled: priority stop, no restart delay
				return
			case <-time.After(s.restartInterval):
				// Delay elapsed and context still active: restart
			}
		}
	}()
}

// Stop cancels the workers; Run returns once they all exited.
func (s *Supervisor) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
}

var _ contract.ISupervisor = (*Supervisor)(nil)
