package test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	"player-lab/domain"
	"player-lab/internal"
	"player-lab/observability"
	"player-lab/runtime"
	"strconv"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type ExchangeSuite struct {
	suite.Suite
	Config Config
	log    *slog.Logger
}

func TestExchangeSuite(t *testing.T) {
	suite.Run(t, new(ExchangeSuite))
}

// SetupSuite loads the environment configuration before running tests
func (s *ExchangeSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.log = logs.GetLoggerFromLevel(slog.LevelDebug)
}

func (s *ExchangeSuite) step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

func (s *ExchangeSuite) summary(report domain.Report) {
	var buf bytes.Buffer
	observability.Summary(&buf, report)
	s.T().Log("\n" + buf.String())
}

func (s *ExchangeSuite) playerConfig() internal.Config {
	ln, err := net.Listen("tcp", ":0")
	s.Require().NoError(err)
	port := ln.Addr().(*net.TCPAddr).Port
	s.Require().NoError(ln.Close())

	return internal.Config{
		QueueCapacity:      s.Config.QueueCapacity,
		NetworkPort:        port,
		NetworkHost:        "127.0.0.1",
		MaxMessages:        s.Config.MaxMessages,
		LogLevel:           "DEBUG",
		SendTimeout:        time.Second,
		ConnectSettleDelay: 10 * time.Millisecond,
		ConnectRetries:     20,
		ConnectRetryDelay:  50 * time.Millisecond,
		PaceInterval:       time.Millisecond,
		ResponderGrace:     100 * time.Millisecond,
	}
}

func (s *ExchangeSuite) TestSameProcess() {
	s.step("Same process exchange")
	max := s.Config.MaxMessages

	report, err := runtime.NewOrchestrator(s.log, s.playerConfig()).RunSameProcess(context.Background(), "")
	s.Require().NoError(err)
	s.summary(report)

	s.Require().Len(report.Results, 2)
	s.Equal(domain.Stats{Sent: max, Received: max}, report.Results[0].Stats)
	s.Equal(domain.Completed, report.Results[0].Outcome)
	s.Equal(domain.Stats{Sent: max, Received: max + 1}, report.Results[1].Stats)
	s.False(report.Failed())
}

func (s *ExchangeSuite) TestSeparateProcessOverLoopback() {
	s.step("Network exchange over loopback")
	max := s.Config.MaxMessages
	config := s.playerConfig()

	responder := make(chan domain.Report, 1)
	go func() {
		report, err := runtime.NewOrchestrator(s.log, config).RunSeparateProcess(context.Background(), runtime.ResponderID, false, "")
		s.NoError(err)
		responder <- report
	}()

	report, err := runtime.NewOrchestrator(s.log, config).RunSeparateProcess(context.Background(), runtime.InitiatorID, true, "ping")
	s.Require().NoError(err)
	s.summary(report)
	s.Equal(domain.Stats{Sent: max, Received: max}, report.Results[0].Stats)

	select {
	case peer := <-responder:
		s.summary(peer)
		s.Equal(domain.EndOfStream, peer.Results[0].Outcome)
		s.Equal(domain.Stats{Sent: max, Received: max + 1}, peer.Results[0].Stats)
	case <-time.After(10 * time.Second):
		s.FailNow("responder did not finish")
	}
}

func (s *ExchangeSuite) TestLauncherWithRealProcesses() {
	if s.Config.MultiprocessBin == "" {
		s.T().Skip("PLAYER_E2E_MULTIPROCESS_BIN not set")
	}
	s.step("Launcher with two player processes")
	config := s.playerConfig()

	// Children inherit the environment
	s.T().Setenv("QUEUE_CAPACITY", strconv.Itoa(config.QueueCapacity))
	s.T().Setenv("NETWORK_PORT", strconv.Itoa(config.NetworkPort))
	s.T().Setenv("NETWORK_HOST", config.NetworkHost)
	s.T().Setenv("MESSAGE_COUNT_MAX", strconv.Itoa(config.MaxMessages))
	s.T().Setenv("CONNECT_SETTLE_DELAY", "50ms")
	s.T().Setenv("CONNECT_RETRY_DELAY", "100ms")
	s.T().Setenv("PACE_INTERVAL", "1ms")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := runtime.NewLauncher(s.log).Launch(ctx, runtime.LaunchRequest{
		Binary:      s.Config.MultiprocessBin,
		InitiatorID: runtime.InitiatorID,
		ResponderID: runtime.ResponderID,
		StartDelay:  100 * time.Millisecond,
	})
	s.Require().NoError(err)
}
