// Package client provides the Client facade: a small, type-checked surface
// over the protocol engine that enforces the method-level preconditions
// (GET without body, POST with body and Content-Length) before a request
// ever reaches the wire.
package client

import (
	"context"

	"github.com/warrenjitsing/gorawhttp/pkg/protocol"
	"github.com/warrenjitsing/gorawhttp/pkg/rherrors"
	"github.com/warrenjitsing/gorawhttp/pkg/syscalls"
	"github.com/warrenjitsing/gorawhttp/pkg/transport"
)

// Options configures a Client's transport and protocol engine.
type Options struct {
	// Network overrides the syscalls.Network used by the transport. A nil
	// value uses syscalls.Real().
	Network syscalls.Network

	// IOPolicy selects the engine's request-write strategy. The default is
	// protocol.IOPolicyCopyWrite.
	IOPolicy protocol.IOPolicy

	// InitialCapacity overrides the engine buffer's starting capacity. Zero
	// uses the engine's default.
	InitialCapacity int
}

func (o Options) engineOptions() []protocol.Option {
	var opts []protocol.Option
	opts = append(opts, protocol.WithIOPolicy(o.IOPolicy))
	if o.InitialCapacity > 0 {
		opts = append(opts, protocol.WithInitialCapacity(o.InitialCapacity))
	}
	return opts
}

// Client owns exactly one protocol engine, which in turn owns exactly one
// transport. It is not safe for concurrent use: callers wanting parallelism
// must create independent Clients.
type Client struct {
	transport *transport.Transport
	engine    *protocol.Engine
}

// NewTCP returns a Client that connects over TCP.
func NewTCP(opts Options) *Client {
	t := transport.NewTCP(opts.Network)
	return &Client{transport: t, engine: protocol.NewEngine(t, opts.engineOptions()...)}
}

// NewUnix returns a Client that connects over a UNIX-domain stream socket.
func NewUnix(opts Options) *Client {
	t := transport.NewUnix(opts.Network)
	return &Client{transport: t, engine: protocol.NewEngine(t, opts.engineOptions()...)}
}

// Connect opens the underlying transport.
func (c *Client) Connect(ctx context.Context, host string, port int) error {
	if c == nil {
		return rherrors.NewInvalidRequest("client is nil")
	}
	return c.transport.Connect(ctx, host, port)
}

// Disconnect closes the underlying transport.
func (c *Client) Disconnect() error {
	if c == nil {
		return rherrors.NewInvalidRequest("client is nil")
	}
	return c.transport.Close()
}

func validateGet(req *protocol.Request) error {
	if req == nil {
		return rherrors.NewInvalidRequest("request is nil")
	}
	if len(req.Body) != 0 {
		return rherrors.NewInvalidRequest("GET request must not carry a body")
	}
	return req.Validate()
}

func validatePost(req *protocol.Request) error {
	if req == nil {
		return rherrors.NewInvalidRequest("request is nil")
	}
	if len(req.Body) == 0 {
		return rherrors.NewInvalidRequest("POST request must carry a non-empty body")
	}
	if _, ok := req.HeaderValue("Content-Length"); !ok {
		return rherrors.NewInvalidRequest("POST request must carry a Content-Length header")
	}
	return req.Validate()
}

// GetUnsafe issues req as a GET and returns the unsafe (borrowed) response.
// req.Body must be empty; req is rejected with InvalidRequest otherwise and
// no bytes are written to the transport.
func (c *Client) GetUnsafe(req *protocol.Request) (*protocol.Response, error) {
	if c == nil {
		return nil, rherrors.NewInvalidRequest("client is nil")
	}
	if err := validateGet(req); err != nil {
		return nil, err
	}
	req.Method = protocol.MethodGET
	return c.engine.PerformUnsafe(req)
}

// GetSafe issues req as a GET and returns the safe (owning) response.
func (c *Client) GetSafe(req *protocol.Request) (*protocol.SafeResponse, error) {
	if c == nil {
		return nil, rherrors.NewInvalidRequest("client is nil")
	}
	if err := validateGet(req); err != nil {
		return nil, err
	}
	req.Method = protocol.MethodGET
	return c.engine.PerformSafe(req)
}

// PostUnsafe issues req as a POST and returns the unsafe (borrowed)
// response. req.Body must be non-empty and req must carry a header whose
// key matches Content-Length case-insensitively; req is rejected with
// InvalidRequest otherwise and no bytes are written to the transport.
func (c *Client) PostUnsafe(req *protocol.Request) (*protocol.Response, error) {
	if c == nil {
		return nil, rherrors.NewInvalidRequest("client is nil")
	}
	if err := validatePost(req); err != nil {
		return nil, err
	}
	req.Method = protocol.MethodPOST
	return c.engine.PerformUnsafe(req)
}

// PostSafe issues req as a POST and returns the safe (owning) response.
func (c *Client) PostSafe(req *protocol.Request) (*protocol.SafeResponse, error) {
	if c == nil {
		return nil, rherrors.NewInvalidRequest("client is nil")
	}
	if err := validatePost(req); err != nil {
		return nil, err
	}
	req.Method = protocol.MethodPOST
	return c.engine.PerformSafe(req)
}
