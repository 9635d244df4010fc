//go:build !linux && !darwin && !freebsd

package transport

import (
	"net"
	"syscall"
)

func listenerControl(_, _ string, _ syscall.RawConn) error {
	return nil
}

func setTrafficClass(_ *net.TCPConn, _ int) error {
	return nil
}
