package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"player-lab/errors"
	"strconv"
	"syscall"
	"time"
)

const (
	DefaultSettleDelay = 1 * time.Second
	DefaultMaxRetries  = 5
	DefaultRetryDelay  = 2 * time.Second
)

// NetworkOptions describes where the client connects and how it retries.
type NetworkOptions struct {
	Host string
	Port int
	// SettleDelay lets the server start listening before the first attempt.
	SettleDelay time.Duration
	// MaxRetries is the number of attempts after a refused first attempt.
	MaxRetries int
	// RetryDelay is waited before every retry. It never grows.
	RetryDelay time.Duration
}

func DefaultNetworkOptions(host string, port int) NetworkOptions {
	return NetworkOptions{
		Host:        host,
		Port:        port,
		SettleDelay: DefaultSettleDelay,
		MaxRetries:  DefaultMaxRetries,
		RetryDelay:  DefaultRetryDelay,
	}
}

func (o NetworkOptions) Address() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// Dial connects to the listening peer. A refused first attempt is retried
// MaxRetries times with a fixed delay; exhausting them returns
// ErrConnectRetriesExhausted. Cancelling ctx while waiting returns
// ErrConnectInterrupted.
func Dial(ctx context.Context, log *slog.Logger, opts NetworkOptions) (*NetworkChannel, error) {
	address := opts.Address()

	if err := sleep(ctx, opts.SettleDelay); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConnectInterrupted, err)
	}

	conn, err := dialTCP(ctx, address)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrConnectInterrupted, context.Cause(ctx))
		}
		if !isConnectionRefused(err) {
			return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
		}
		log.Warn("Socket connection failed, retrying", "address", address, "err", err)
		if conn, err = retryConnection(ctx, log, address, opts, err); err != nil {
			return nil, err
		}
	}

	c := &NetworkChannel{log: log}
	if err := c.attach(conn); err != nil {
		_ = c.Close()
		return nil, err
	}
	log.Info("Connected to peer", "address", address)
	return c, nil
}

// retryConnection reports the last refused attempt, the first one included.
func retryConnection(ctx context.Context, log *slog.Logger, address string, opts NetworkOptions, firstErr error) (*net.TCPConn, error) {
	lastErr := firstErr
	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		if err := sleep(ctx, opts.RetryDelay); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrConnectInterrupted, err)
		}

		conn, err := dialTCP(ctx, address)
		if err == nil {
			log.Info("Socket connection created", "attempt", attempt)
			return conn, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrConnectInterrupted, context.Cause(ctx))
		}
		if !isConnectionRefused(err) {
			return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
		}
		lastErr = err
		log.Warn("Connection attempt failed",
			"attempt", attempt, "max", opts.MaxRetries, "retry_in", opts.RetryDelay, "err", err)
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", errors.ErrConnectRetriesExhausted, opts.MaxRetries, lastErr)
}

func dialTCP(ctx context.Context, address string) (*net.TCPConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	return conn.(*net.TCPConn), nil
}

func isConnectionRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}

// sleep waits d unless ctx is cancelled first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return context.Cause(ctx)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}
