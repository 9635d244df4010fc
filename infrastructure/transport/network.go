package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"player-lab/contract"
	"player-lab/errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
)

const (
	// socketBufferSize keeps kernel buffers small so messages are not batched.
	socketBufferSize = 8 * 1024
	// lowDelayTrafficClass is IPTOS_LOWDELAY.
	lowDelayTrafficClass = 0x10
)

// NetworkChannel binds the channel contract to a single TCP connection.
// Messages are UTF-8 lines terminated by '\n'.
//
// The zero value is a closed channel: Send fails with ErrChannelClosed,
// Receive returns nil and Close is a no-op.
type NetworkChannel struct {
	log      *slog.Logger
	listener *net.TCPListener
	conn     *net.TCPConn
	reader   *bufio.Reader
	writer   *bufio.Writer
	wmu      sync.Mutex
	closed   atomic.Bool
	once     sync.Once
}

// Listen binds the port, accepts exactly one peer and returns the connected
// channel. A port already in use is returned as an error. Cancelling ctx
// while waiting for the peer closes the listener.
func Listen(ctx context.Context, log *slog.Logger, port int) (*NetworkChannel, error) {
	lc := net.ListenConfig{Control: listenerControl}
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", port, err)
	}

	c := &NetworkChannel{log: log, listener: ln.(*net.TCPListener)}
	log.Info("Waiting for peer", "address", ln.Addr().String())

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	conn, err := c.listener.AcceptTCP()
	stop()
	if err != nil {
		_ = c.Close()
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrAcceptInterrupted, context.Cause(ctx))
		}
		return nil, fmt.Errorf("failed to accept peer: %w", err)
	}

	if err := c.attach(conn); err != nil {
		_ = c.Close()
		return nil, err
	}
	log.Info("Peer connected", "remote", conn.RemoteAddr().String())
	return c, nil
}

// attach takes ownership of conn, tunes it and builds the line codec.
func (c *NetworkChannel) attach(conn *net.TCPConn) error {
	c.conn = conn
	if err := tune(conn, c.log); err != nil {
		return err
	}
	c.reader = bufio.NewReaderSize(conn, socketBufferSize)
	c.writer = bufio.NewWriterSize(conn, socketBufferSize)
	return nil
}

// tune applies the low latency options identically on both sides.
func tune(conn *net.TCPConn, log *slog.Logger) error {
	if err := conn.SetNoDelay(true); err != nil {
		return fmt.Errorf("failed to set no delay: %w", err)
	}
	if err := conn.SetWriteBuffer(socketBufferSize); err != nil {
		return fmt.Errorf("failed to set send buffer: %w", err)
	}
	if err := conn.SetReadBuffer(socketBufferSize); err != nil {
		return fmt.Errorf("failed to set receive buffer: %w", err)
	}
	if err := conn.SetKeepAlive(true); err != nil {
		return fmt.Errorf("failed to enable keep-alive: %w", err)
	}
	// The traffic class is a hint, some stacks refuse it.
	if err := setTrafficClass(conn, lowDelayTrafficClass); err != nil {
		log.Debug("Traffic class not applied", "err", err)
	}
	return nil
}

// Send writes the message followed by a line terminator and flushes at once.
// Write failures are logged, not returned.
func (c *NetworkChannel) Send(ctx context.Context, message *string) error {
	if message == nil {
		return nil
	}
	if c.closed.Load() || c.writer == nil {
		return errors.ErrChannelClosed
	}

	c.wmu.Lock()
	defer c.wmu.Unlock()

	stop := context.AfterFunc(ctx, func() { _ = c.conn.SetWriteDeadline(time.Now()) })
	defer stop()

	_, err := c.writer.WriteString(*message + "\n")
	if err == nil {
		err = c.writer.Flush()
	}
	if err != nil {
		c.log.Error("Failed to send message", "message", *message, "err", err)
	}
	return nil
}

// Receive reads one line. End of stream and read failures both return nil.
func (c *NetworkChannel) Receive(ctx context.Context) *string {
	if c.closed.Load() || c.reader == nil {
		return nil
	}

	stop := context.AfterFunc(ctx, func() { _ = c.conn.SetReadDeadline(time.Now()) })
	defer stop()

	line, err := c.reader.ReadString('\n')
	if err != nil {
		// A last line without terminator is still a message.
		if line != "" && errors.Is(err, io.EOF) {
			return lo.ToPtr(trimLine(line))
		}
		c.logReadError(ctx, err)
		return nil
	}
	return lo.ToPtr(trimLine(line))
}

func (c *NetworkChannel) logReadError(ctx context.Context, err error) {
	switch {
	case errors.Is(err, io.EOF):
		c.log.Debug("Peer closed the stream")
	case c.closed.Load(), ctx.Err() != nil:
		c.log.Debug("Receive interrupted", "err", err)
	default:
		c.log.Warn("Failed to receive message", "err", err)
	}
}

// Close tears down the read side, the write side, the socket and the
// listener, in that order. Each step tolerates a missing or closed resource.
func (c *NetworkChannel) Close() error {
	c.once.Do(func() {
		c.closed.Store(true)
		if c.conn != nil {
			c.closeStep("read side", c.conn.CloseRead)
			c.closeStep("write side", c.conn.CloseWrite)
			c.closeStep("socket", c.conn.Close)
		}
		if c.listener != nil {
			c.closeStep("listener", c.listener.Close)
		}
	})
	return nil
}

func (c *NetworkChannel) closeStep(step string, closeFn func() error) {
	if err := closeFn(); err != nil && !errors.Is(err, net.ErrClosed) && c.log != nil {
		c.log.Debug("Close step failed", "step", step, "err", err)
	}
}

// LocalAddr returns nil until the channel is connected.
func (c *NetworkChannel) LocalAddr() net.Addr {
	if c.conn == nil {
		return nil
	}
	return c.conn.LocalAddr()
}

func (c *NetworkChannel) RemoteAddr() net.Addr {
	if c.conn == nil {
		return nil
	}
	return c.conn.RemoteAddr()
}

func trimLine(line string) string {
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
}

var _ contract.Channel = (*NetworkChannel)(nil)
