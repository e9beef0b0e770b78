//go:build !linux && !darwin

package syscalls

import "net"

// SetNoDelay falls back to net.TCPConn's own setsockopt wrapper on
// platforms where direct golang.org/x/sys/unix access isn't wired
// (real_unix.go covers Linux and Darwin).
func (r *realNetwork) SetNoDelay(conn net.Conn, enabled bool) error {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}
	return tc.SetNoDelay(enabled)
}
