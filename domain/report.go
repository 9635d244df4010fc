package domain

import (
	"fmt"
	"player-lab/errors"
	"strings"
	"time"
)

type Mode string

const (
	SameProcess     Mode = "same-process"
	SeparateProcess Mode = "separate-process"
)

// Report gathers the final status of every player of one session.
type Report struct {
	SessionID string
	Mode      Mode
	Results   []Result
	Elapsed   time.Duration
}

// Failed reports whether a player was stopped by a failure rather than by the protocol.
func (r Report) Failed() bool {
	for _, result := range r.Results {
		if result.Outcome == Stopped {
			return true
		}
	}
	return false
}

// Err is nil unless Failed; it then names every stopped player and its cause.
func (r Report) Err() error {
	if !r.Failed() {
		return nil
	}
	var stopped []string
	for _, result := range r.Results {
		if result.Outcome == Stopped {
			stopped = append(stopped, fmt.Sprintf("%s: %v", result.PlayerID, result.Cause))
		}
	}
	return fmt.Errorf("%w: %s", errors.ErrExchangeFailed, strings.Join(stopped, ", "))
}
