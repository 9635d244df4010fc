package observability

import (
	"bytes"
	"os"
	"player-lab/domain"
	"player-lab/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollectProcessStats_CurrentProcess(t *testing.T) {
	req := require.New(t)

	stats, err := CollectProcessStats(os.Getpid())

	req.NoError(err)
	req.Equal(domain.PID(os.Getpid()), stats.PID)
	req.Positive(stats.RSS)
}

func TestBanner_WithoutColours(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	Banner(&buf, false, "Player1 (initiator)", "tcp 127.0.0.1:9090",
		domain.ProcessStats{PID: 42, Status: domain.RUNNING, RSS: 2 << 20, RAM: 0.5})

	req.Equal("  ====== Player1 (initiator) | tcp 127.0.0.1:9090 | pid 42 (RUNNING) | rss 2.0 MiB (0.5%) | cpu 0.0% ======\n", buf.String())
}

func TestSummary_OneRowPerPlayer(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	// Given a finished same-process session
	report := domain.Report{
		SessionID: "4b1c",
		Mode:      domain.SameProcess,
		Elapsed:   1500 * time.Millisecond,
		Results: []domain.Result{
			{PlayerID: "Player1", Role: domain.Initiator, Stats: domain.Stats{Sent: 10, Received: 10}, Outcome: domain.Completed},
			{PlayerID: "Player2", Role: domain.Responder, Stats: domain.Stats{Sent: 10, Received: 11}, Outcome: domain.EndOfStream, Cause: errors.ErrPlayerShutdown},
		},
	}

	// When it is summarised
	Summary(&buf, report)

	// Then every player and the session appear
	out := buf.String()
	req.Contains(out, "Player1")
	req.Contains(out, "initiator")
	req.Contains(out, "completed")
	req.Contains(out, "Player2")
	req.Contains(out, "end of stream")
	req.Contains(out, "player shut down")
	req.Contains(out, "11")
	req.Contains(out, "session 4b1c, same-process, 1.5s")
}
