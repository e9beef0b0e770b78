package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/warrenjitsing/gorawhttp/pkg/rherrors"
	"github.com/warrenjitsing/gorawhttp/pkg/syscalls"
)

func TestConnectTCPDNSFailure(t *testing.T) {
	fake := &syscalls.Fake{
		LookupIPAddrFunc: func(ctx context.Context, host string) ([]net.IPAddr, error) {
			return nil, errors.New("no such host")
		},
	}
	tr := NewTCP(fake)
	err := tr.Connect(context.Background(), "nowhere.invalid", 80)
	if err == nil {
		t.Fatal("expected an error")
	}
	code, ok := rherrors.CodeOf(err)
	if !ok || code != rherrors.CodeDNSFailure {
		t.Fatalf("expected CodeDNSFailure, got %v", err)
	}
}

func TestConnectTCPTriesSecondCandidate(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	dialCount := 0
	fake := &syscalls.Fake{
		LookupIPAddrFunc: func(ctx context.Context, host string) ([]net.IPAddr, error) {
			return []net.IPAddr{{IP: net.ParseIP("10.0.0.1")}, {IP: net.ParseIP("10.0.0.2")}}, nil
		},
		DialTCPFunc: func(ctx context.Context, raddr *net.TCPAddr) (net.Conn, error) {
			dialCount++
			if raddr.IP.String() == "10.0.0.1" {
				return nil, errors.New("unreachable")
			}
			return client, nil
		},
	}
	tr := NewTCP(fake)
	if err := tr.Connect(context.Background(), "example.com", 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dialCount != 2 {
		t.Fatalf("expected 2 dial attempts, got %d", dialCount)
	}
	if !tr.Connected() {
		t.Fatal("expected transport to be connected")
	}
}

func TestConnectTCPSkipsCandidateOnNoDelayFailure(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	defer client.Close()

	noDelayCalls := 0
	fake := &syscalls.Fake{
		LookupIPAddrFunc: func(ctx context.Context, host string) ([]net.IPAddr, error) {
			return []net.IPAddr{{IP: net.ParseIP("10.0.0.1")}}, nil
		},
		DialTCPFunc: func(ctx context.Context, raddr *net.TCPAddr) (net.Conn, error) {
			return client, nil
		},
		SetNoDelayFunc: func(conn net.Conn, enabled bool) error {
			noDelayCalls++
			return errors.New("setsockopt failed")
		},
	}
	tr := NewTCP(fake)
	err := tr.Connect(context.Background(), "example.com", 80)
	if err == nil {
		t.Fatal("expected connect failure when every candidate fails SetNoDelay")
	}
	if noDelayCalls != 1 {
		t.Fatalf("expected exactly one SetNoDelay call, got %d", noDelayCalls)
	}
	code, ok := rherrors.CodeOf(err)
	if !ok || code != rherrors.CodeSocketConnectFailure {
		t.Fatalf("expected CodeSocketConnectFailure, got %v", err)
	}
}

func TestConnectUnixIgnoresPort(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	var seenPath string
	fake := &syscalls.Fake{
		DialUnixFunc: func(ctx context.Context, raddr *net.UnixAddr) (net.Conn, error) {
			seenPath = raddr.Name
			return client, nil
		},
	}
	tr := NewUnix(fake)
	if err := tr.Connect(context.Background(), "/tmp/sock.sock", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenPath != "/tmp/sock.sock" {
		t.Fatalf("expected socket path to be forwarded, got %q", seenPath)
	}
}

func TestWriteAndReadRoundtrip(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	fake := &syscalls.Fake{DialTCPFunc: func(ctx context.Context, raddr *net.TCPAddr) (net.Conn, error) {
		return client, nil
	}, LookupIPAddrFunc: func(ctx context.Context, host string) ([]net.IPAddr, error) {
		return []net.IPAddr{{IP: net.ParseIP("127.0.0.1")}}, nil
	}}
	tr := NewTCP(fake)
	if err := tr.Connect(context.Background(), "example.com", 80); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	go func() {
		buf := make([]byte, 5)
		server.Read(buf)
		server.Write(buf)
	}()

	if _, err := tr.Write([]byte("hello")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	buf := make([]byte, 5)
	n, err := tr.Read(buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if n != 5 || string(buf) != "hello" {
		t.Fatalf("unexpected read result: %d %q", n, buf)
	}
}

func TestWritevSendsTwoSegments(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	fake := &syscalls.Fake{DialTCPFunc: func(ctx context.Context, raddr *net.TCPAddr) (net.Conn, error) {
		return client, nil
	}, LookupIPAddrFunc: func(ctx context.Context, host string) ([]net.IPAddr, error) {
		return []net.IPAddr{{IP: net.ParseIP("127.0.0.1")}}, nil
	}}
	tr := NewTCP(fake)
	if err := tr.Connect(context.Background(), "example.com", 80); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	received := make([]byte, 0, 11)
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		buf := make([]byte, 11)
		n, _ := io.ReadFull(server, buf)
		received = append(received, buf[:n]...)
	}()

	if _, err := tr.Writev([][]byte{[]byte("hello "), []byte("world")}); err != nil {
		t.Fatalf("writev failed: %v", err)
	}
	<-readDone
	if string(received) != "hello world" {
		t.Fatalf("unexpected writev result: %q", received)
	}
}

func TestReadReportsConnectionClosed(t *testing.T) {
	client, server := net.Pipe()

	fake := &syscalls.Fake{DialTCPFunc: func(ctx context.Context, raddr *net.TCPAddr) (net.Conn, error) {
		return client, nil
	}, LookupIPAddrFunc: func(ctx context.Context, host string) ([]net.IPAddr, error) {
		return []net.IPAddr{{IP: net.ParseIP("127.0.0.1")}}, nil
	}}
	tr := NewTCP(fake)
	if err := tr.Connect(context.Background(), "example.com", 80); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	server.Close()

	buf := make([]byte, 4)
	_, err := tr.Read(buf)
	if !rherrors.IsConnectionClosed(err) {
		t.Fatalf("expected ConnectionClosed, got %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	fake := &syscalls.Fake{DialTCPFunc: func(ctx context.Context, raddr *net.TCPAddr) (net.Conn, error) {
		return client, nil
	}, LookupIPAddrFunc: func(ctx context.Context, host string) ([]net.IPAddr, error) {
		return []net.IPAddr{{IP: net.ParseIP("127.0.0.1")}}, nil
	}}
	tr := NewTCP(fake)
	if err := tr.Connect(context.Background(), "example.com", 80); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("first close failed: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got: %v", err)
	}
}

func TestWriteAfterCloseFails(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	fake := &syscalls.Fake{DialTCPFunc: func(ctx context.Context, raddr *net.TCPAddr) (net.Conn, error) {
		return client, nil
	}, LookupIPAddrFunc: func(ctx context.Context, host string) ([]net.IPAddr, error) {
		return []net.IPAddr{{IP: net.ParseIP("127.0.0.1")}}, nil
	}}
	tr := NewTCP(fake)
	tr.Connect(context.Background(), "example.com", 80)
	tr.Close()

	if _, err := tr.Write([]byte("x")); err == nil {
		t.Fatal("expected write after close to fail")
	}
	if _, err := tr.Read(make([]byte, 1)); err == nil {
		t.Fatal("expected read after close to fail")
	}
}
