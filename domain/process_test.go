package domain

import (
	"player-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToStatus(t *testing.T) {
	req := require.New(t)
	req.Equal(RUNNING, ToStatus("R"))
	req.Equal(SLEEP, ToStatus("S"))
	req.Equal(ZOMBIE, ToStatus("Z"))
	req.Equal(UNKNOWN, ToStatus(""))
	req.Equal(UNKNOWN, ToStatus("running"))
}

func TestReport_Failed(t *testing.T) {
	req := require.New(t)

	report := Report{Results: []Result{{Outcome: Completed}, {Outcome: EndOfStream}}}
	req.False(report.Failed())

	report.Results = append(report.Results, Result{Outcome: Stopped})
	req.True(report.Failed())
}

func TestReport_Err(t *testing.T) {
	req := require.New(t)

	// Given a session where the responder was shut down and the initiator completed
	report := Report{Results: []Result{
		{PlayerID: "Player1", Outcome: Completed},
		{PlayerID: "Player2", Outcome: EndOfStream, Cause: errors.ErrPlayerShutdown},
	}}
	req.NoError(report.Err())

	// When a player stops on a failure
	report.Results[0] = Result{PlayerID: "Player1", Outcome: Stopped, Cause: errors.ErrChannelClosed}

	// Then the report fails and names it
	err := report.Err()
	req.ErrorIs(err, errors.ErrExchangeFailed)
	req.ErrorContains(err, "Player1: channel closed")
	req.NotContains(err.Error(), "Player2")
}
