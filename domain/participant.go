// Package domain contains core concepts of the player exchange.
// This file defines Participant roles, counters and outcomes.
// No runtime, network, or UI logic should be added here.
package domain

import "fmt"

type Role int

const (
	Responder Role = iota
	Initiator
)

func RoleOf(initiator bool) Role {
	if initiator {
		return Initiator
	}
	return Responder
}

func (r Role) String() string {
	switch r {
	case Initiator:
		return "initiator"
	case Responder:
		return "responder"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Stats holds the two monotonic counters of a participant.
type Stats struct {
	Sent     int
	Received int
}

// Outcome tells how a run ended. Every outcome is a valid terminal state.
type Outcome int

const (
	Pending Outcome = iota
	// Completed means the loop condition or the initiator limit ended the run.
	Completed
	// EndOfStream means Receive returned nil.
	EndOfStream
	// Stopped means a send failure, a panic or a shutdown ended the run.
	Stopped
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	case EndOfStream:
		return "end of stream"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the final status of a participant run.
type Result struct {
	PlayerID string
	Role     Role
	Stats    Stats
	Outcome  Outcome
	Cause    error
}
