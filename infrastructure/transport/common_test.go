package transport

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const testHost = "127.0.0.1"

func testLogger() *slog.Logger {
	return logs.GetLoggerFromLevel(slog.LevelDebug)
}

// findTcpPort returns a port that was free a moment ago.
func findTcpPort(t *testing.T) int {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func testOptions(port int) NetworkOptions {
	return NetworkOptions{
		Host:        testHost,
		Port:        port,
		SettleDelay: 10 * time.Millisecond,
		MaxRetries:  5,
		RetryDelay:  50 * time.Millisecond,
	}
}

type listenResult struct {
	channel *NetworkChannel
	err     error
}

func listenAsync(ctx context.Context, port int) <-chan listenResult {
	resc := make(chan listenResult, 1)
	go func() {
		ch, err := Listen(ctx, testLogger(), port)
		resc <- listenResult{channel: ch, err: err}
	}()
	return resc
}

// connectPair returns a connected server and client, closed at cleanup.
func connectPair(t *testing.T) (*NetworkChannel, *NetworkChannel) {
	req := require.New(t)
	port := findTcpPort(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	resc := listenAsync(ctx, port)
	client, err := Dial(ctx, testLogger(), testOptions(port))
	req.NoError(err)

	res := <-resc
	req.NoError(res.err)

	t.Cleanup(func() {
		_ = client.Close()
		_ = res.channel.Close()
	})
	return res.channel, client
}

// syncBuffer collects log output written from several goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
