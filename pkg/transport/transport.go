// Package transport provides the stream-socket abstraction the protocol
// engine drives: connect, write, writev, read, close over either a TCP or a
// UNIX-domain socket. Address resolution, dialing and socket options go
// through an injected syscalls.Network, and read/write/close go through the
// net.Conn it returns, so the failure taxonomy (DNS failure, connect
// failure, write/read failure, orderly close) is testable without a real
// network.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/warrenjitsing/gorawhttp/pkg/rherrors"
	"github.com/warrenjitsing/gorawhttp/pkg/syscalls"
)

// kind selects which connect strategy a Transport uses. It is fixed at
// construction and never changes across reconnects.
type kind int

const (
	kindTCP kind = iota
	kindUnix
)

// Transport owns exactly one stream file descriptor, reached indirectly
// through a net.Conn obtained from the injected syscalls.Network. A zero
// value is not usable; construct one with NewTCP or NewUnix.
type Transport struct {
	kind    kind
	network syscalls.Network
	conn    net.Conn
}

var errNotConnected = errors.New("transport: not connected")

// NewTCP returns a Transport that connects over TCP. A nil network uses
// syscalls.Real().
func NewTCP(network syscalls.Network) *Transport {
	return &Transport{kind: kindTCP, network: resolveNetwork(network)}
}

// NewUnix returns a Transport that connects over a UNIX-domain stream
// socket. A nil network uses syscalls.Real().
func NewUnix(network syscalls.Network) *Transport {
	return &Transport{kind: kindUnix, network: resolveNetwork(network)}
}

func resolveNetwork(network syscalls.Network) syscalls.Network {
	if network == nil {
		return syscalls.Real()
	}
	return network
}

// Connect opens the stream socket. For TCP, host is resolved through the
// injected Network's LookupIPAddr and every candidate address is tried in
// order, with TCP_NODELAY enabled before the transport accepts the
// candidate; a candidate that fails SetNoDelay is skipped rather than used
// half-configured. For UNIX, host is the socket path and port is ignored.
//
// Connect on an already-connected Transport closes the existing connection
// first; a failed Connect leaves the Transport in its pre-connect (closed)
// state.
func (t *Transport) Connect(ctx context.Context, host string, port int) error {
	if t.conn != nil {
		_ = t.Close()
	}
	switch t.kind {
	case kindTCP:
		return t.connectTCP(ctx, host, port)
	case kindUnix:
		return t.connectUnix(ctx, host)
	default:
		return rherrors.NewTransportInitFailure("unknown transport kind", nil)
	}
}

func (t *Transport) connectTCP(ctx context.Context, host string, port int) error {
	addrs, err := t.network.LookupIPAddr(ctx, host)
	if err != nil {
		return rherrors.NewDNSFailure(host, err)
	}

	var lastErr error
	for _, addr := range addrs {
		raddr := &net.TCPAddr{IP: addr.IP, Port: port, Zone: addr.Zone}
		conn, dialErr := t.network.DialTCP(ctx, raddr)
		if dialErr != nil {
			lastErr = dialErr
			continue
		}
		if ndErr := t.network.SetNoDelay(conn, true); ndErr != nil {
			_ = conn.Close()
			lastErr = ndErr
			continue
		}
		t.conn = conn
		return nil
	}
	return rherrors.NewSocketConnectFailure(fmt.Sprintf("%s:%d", host, port), lastErr)
}

func (t *Transport) connectUnix(ctx context.Context, path string) error {
	conn, err := t.network.DialUnix(ctx, &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return rherrors.NewSocketConnectFailure(path, err)
	}
	t.conn = conn
	return nil
}

// Write writes p in full, looping over short writes from the underlying
// connection and only surfacing an error on a true syscall failure.
func (t *Transport) Write(p []byte) (int, error) {
	if t.conn == nil {
		return 0, rherrors.NewSocketWriteFailure(errNotConnected)
	}
	total := 0
	for total < len(p) {
		n, err := t.conn.Write(p[total:])
		total += n
		if err != nil {
			return total, rherrors.NewSocketWriteFailure(err)
		}
	}
	return total, nil
}

// Writev issues a scatter-write of segments without concatenating them,
// avoiding a copy of a large request body. net.Buffers already loops
// internally until every segment is fully written or a real error occurs.
func (t *Transport) Writev(segments [][]byte) (int, error) {
	if t.conn == nil {
		return 0, rherrors.NewSocketWriteFailure(errNotConnected)
	}
	bufs := net.Buffers(segments)
	n, err := bufs.WriteTo(t.conn)
	if err != nil {
		return int(n), rherrors.NewSocketWriteFailure(err)
	}
	return int(n), nil
}

// Read reads up to len(p) bytes. A read of zero bytes, however it is
// surfaced by the underlying connection (io.EOF or a bare zero-length
// success), is reported as the distinguished ConnectionClosed outcome
// rather than success-with-zero.
func (t *Transport) Read(p []byte) (int, error) {
	if t.conn == nil {
		return 0, rherrors.NewSocketReadFailure(errNotConnected)
	}
	n, err := t.conn.Read(p)
	if err != nil {
		if errors.Is(err, io.EOF) {
			if n > 0 {
				return n, nil
			}
			return 0, rherrors.NewConnectionClosed()
		}
		return n, rherrors.NewSocketReadFailure(err)
	}
	if n == 0 {
		return 0, rherrors.NewConnectionClosed()
	}
	return n, nil
}

// Close closes the underlying connection if open and marks the Transport
// closed. Calling Close on an already-closed Transport is a no-op that
// returns nil; only a failing underlying close call returns
// SocketCloseFailure.
func (t *Transport) Close() error {
	if t.conn == nil {
		return nil
	}
	conn := t.conn
	t.conn = nil
	if err := conn.Close(); err != nil {
		return rherrors.NewSocketCloseFailure(err)
	}
	return nil
}

// Connected reports whether the Transport currently owns an open
// connection.
func (t *Transport) Connected() bool {
	return t.conn != nil
}
