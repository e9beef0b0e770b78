package syscalls

import (
	"context"
	"net"
)

// Fake is a test double for Network. Every field is a hook. A nil
// LookupIPAddrFunc resolves to 127.0.0.1 and a nil SetNoDelayFunc succeeds;
// a nil DialTCPFunc or DialUnixFunc makes that dial fail with an error, so a
// test that expects a connection must supply the hook. Tests use it to inject
// "DNS failure", "connect failure on the first candidate but not the
// second", and so on, without touching a real network.
type Fake struct {
	LookupIPAddrFunc func(ctx context.Context, host string) ([]net.IPAddr, error)
	DialTCPFunc      func(ctx context.Context, raddr *net.TCPAddr) (net.Conn, error)
	DialUnixFunc     func(ctx context.Context, raddr *net.UnixAddr) (net.Conn, error)
	SetNoDelayFunc   func(conn net.Conn, enabled bool) error

	// NoDelayCalls records every (conn, enabled) SetNoDelay invocation, in
	// order, for assertions in tests.
	NoDelayCalls []NoDelayCall
}

// NoDelayCall records one SetNoDelay invocation.
type NoDelayCall struct {
	Conn    net.Conn
	Enabled bool
}

func (f *Fake) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	if f.LookupIPAddrFunc != nil {
		return f.LookupIPAddrFunc(ctx, host)
	}
	return []net.IPAddr{{IP: net.ParseIP("127.0.0.1")}}, nil
}

func (f *Fake) DialTCP(ctx context.Context, raddr *net.TCPAddr) (net.Conn, error) {
	if f.DialTCPFunc != nil {
		return f.DialTCPFunc(ctx, raddr)
	}
	return nil, &net.OpError{Op: "dial", Net: "tcp", Err: errNotImplemented}
}

func (f *Fake) DialUnix(ctx context.Context, raddr *net.UnixAddr) (net.Conn, error) {
	if f.DialUnixFunc != nil {
		return f.DialUnixFunc(ctx, raddr)
	}
	return nil, &net.OpError{Op: "dial", Net: "unix", Err: errNotImplemented}
}

func (f *Fake) SetNoDelay(conn net.Conn, enabled bool) error {
	f.NoDelayCalls = append(f.NoDelayCalls, NoDelayCall{Conn: conn, Enabled: enabled})
	if f.SetNoDelayFunc != nil {
		return f.SetNoDelayFunc(conn, enabled)
	}
	return nil
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

var errNotImplemented = fakeErr("syscalls.Fake: no hook configured for this call")
