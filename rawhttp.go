// Package rawhttp is a synchronous, client-side HTTP/1.1 engine for
// low-latency request/response over a single TCP or UNIX-domain
// connection. It opens one connection, issues one request at a time, and
// exposes the parsed response as either a zero-copy view into the engine's
// internal buffer or a self-contained, deep-copied value.
//
// There is no pipelining, no connection pooling, no TLS termination, and no
// chunked-transfer decoding: responses are sized by Content-Length or read
// until the peer closes. See pkg/protocol for the engine and pkg/client for
// the facade most callers want.
package rawhttp

import (
	"github.com/warrenjitsing/gorawhttp/pkg/client"
	"github.com/warrenjitsing/gorawhttp/pkg/protocol"
	"github.com/warrenjitsing/gorawhttp/pkg/rherrors"
)

// Re-exported so callers who only need the facade don't have to import the
// component packages directly.
type (
	// Client is the facade over one connection's protocol engine.
	Client = client.Client

	// Options configures a Client's transport and protocol engine.
	Options = client.Options

	// Request describes one HTTP/1.1 GET or POST request.
	Request = protocol.Request

	// Header is a single request header pair.
	Header = protocol.Header

	// Method is the HTTP request method (GET or POST).
	Method = protocol.Method

	// Response is the unsafe (borrowed) response form.
	Response = protocol.Response

	// SafeResponse is the safe (owning) response form.
	SafeResponse = protocol.SafeResponse

	// IOPolicy selects the copy-write or vectored-write request framing
	// strategy.
	IOPolicy = protocol.IOPolicy

	// Error is the tagged Category/Code error every fallible operation in
	// this module returns.
	Error = rherrors.Error
)

const (
	MethodGET  = protocol.MethodGET
	MethodPOST = protocol.MethodPOST

	IOPolicyCopyWrite     = protocol.IOPolicyCopyWrite
	IOPolicyVectoredWrite = protocol.IOPolicyVectoredWrite
)

// NewTCPClient returns a Client that connects over TCP.
func NewTCPClient(opts Options) *Client {
	return client.NewTCP(opts)
}

// NewUnixClient returns a Client that connects over a UNIX-domain stream
// socket.
func NewUnixClient(opts Options) *Client {
	return client.NewUnix(opts)
}
