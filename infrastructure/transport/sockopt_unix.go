//go:build linux || darwin || freebsd

package transport

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// listenerControl enables address reuse and shrinks the receive buffer before
// bind, so accepted sockets inherit it.
func listenerControl(_, _ string, rc syscall.RawConn) error {
	var opErr error
	err := rc.Control(func(fd uintptr) {
		if opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); opErr != nil {
			return
		}
		opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, socketBufferSize)
	})
	if err != nil {
		return err
	}
	return opErr
}

// setTrafficClass marks IPv4 TOS, falling back to the IPv6 traffic class.
func setTrafficClass(conn *net.TCPConn, class int) error {
	rc, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var opErr error
	err = rc.Control(func(fd uintptr) {
		opErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_TOS, class)
		if opErr != nil {
			opErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_TCLASS, class)
		}
	})
	if err != nil {
		return err
	}
	return opErr
}
