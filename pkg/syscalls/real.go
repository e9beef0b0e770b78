package syscalls

import (
	"context"
	"net"
)

// realNetwork is the production Network backed by the standard library's
// resolver and dialer.
type realNetwork struct {
	resolver *net.Resolver
	dialer   net.Dialer
}

func newReal() *realNetwork {
	return &realNetwork{resolver: net.DefaultResolver}
}

func (r *realNetwork) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	addrs, err := r.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, &net.DNSError{Err: "no IP addresses found", Name: host}
	}
	return addrs, nil
}

func (r *realNetwork) DialTCP(ctx context.Context, raddr *net.TCPAddr) (net.Conn, error) {
	return r.dialer.DialContext(ctx, "tcp", raddr.String())
}

func (r *realNetwork) DialUnix(ctx context.Context, raddr *net.UnixAddr) (net.Conn, error) {
	return r.dialer.DialContext(ctx, "unix", raddr.Name)
}
