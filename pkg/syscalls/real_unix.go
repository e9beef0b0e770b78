//go:build linux || darwin

package syscalls

import (
	"net"

	"golang.org/x/sys/unix"
)

// SetNoDelay mirrors setsockopt(TCP_NODELAY). On Linux and Darwin it is
// applied through golang.org/x/sys/unix directly against the connection's
// raw file descriptor rather than net.TCPConn's own (equivalent) SetNoDelay
// wrapper. Non-TCP connections are left untouched: TCP_NODELAY has no
// meaning for a UNIX-domain socket or a test double.
func (r *realNetwork) SetNoDelay(conn net.Conn, enabled bool) error {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}

	raw, err := tc.SyscallConn()
	if err != nil {
		return err
	}

	var sockErr error
	value := 0
	if enabled {
		value = 1
	}
	err = raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, value)
	})
	if err != nil {
		return err
	}
	return sockErr
}
