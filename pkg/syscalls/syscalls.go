// Package syscalls is the fault-injection seam between the transport layer
// and the operating system: address resolution, dialing, and socket-option
// control go through a replaceable Network interface so DNS failures,
// per-candidate connect failures, and setsockopt failures can all be
// exercised without a real network.
package syscalls

import (
	"context"
	"net"
)

// Network abstracts every operating-system primitive the transport layer
// touches to establish and tune a connection: address resolution, socket
// creation via dialing, and socket-option configuration. read/write/close
// are not part of this interface — once a connection exists, net.Conn
// already supplies a fault-injectable Read/Write/Close (transport tests
// inject failing net.Conn implementations directly; see
// pkg/transport/transport_test.go), so duplicating that seam here would
// just be a second indirection over the same three methods.
type Network interface {
	// LookupIPAddr resolves host into zero or more IP addresses, mirroring
	// getaddrinfo. An empty, error-free result is impossible by contract:
	// implementations return an error when no address is found.
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)

	// DialTCP opens a stream socket to raddr and connects it, mirroring
	// socket()+connect(). The source address is system-assigned.
	DialTCP(ctx context.Context, raddr *net.TCPAddr) (net.Conn, error)

	// DialUnix opens a stream socket to the UNIX-domain path raddr and
	// connects it.
	DialUnix(ctx context.Context, raddr *net.UnixAddr) (net.Conn, error)

	// SetNoDelay mirrors setsockopt(TCP_NODELAY, enabled). Called on every
	// accepted TCP candidate before the first write. Non-TCP connections
	// (e.g. a fake net.Conn in a test, or a UNIX socket) silently ignore
	// this; TCP_NODELAY has no UNIX-domain-socket analogue.
	SetNoDelay(conn net.Conn, enabled bool) error
}

var real Network = newReal()

// Real returns the default Network backed by the actual host's net package.
// Transports constructed without an explicit Network use this singleton.
func Real() Network {
	return real
}
