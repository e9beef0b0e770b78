// Package protocol implements the HTTP/1.1 protocol engine: request
// serialization, incremental response reading with content-length framing,
// single-pass-per-phase parsing, and the unsafe (borrowed) and safe
// (owning) response memory policies.
package protocol

import (
	"github.com/warrenjitsing/gorawhttp/pkg/buffer"
	"github.com/warrenjitsing/gorawhttp/pkg/constants"
	"github.com/warrenjitsing/gorawhttp/pkg/rherrors"
)

// IOPolicy selects how the engine writes a request with a body to the wire.
type IOPolicy int

const (
	// IOPolicyCopyWrite concatenates headers and body into one buffer and
	// issues a single write.
	IOPolicyCopyWrite IOPolicy = iota
	// IOPolicyVectoredWrite issues one writev of two segments (headers,
	// body), avoiding a copy of the body into the engine's buffer.
	IOPolicyVectoredWrite
)

// Transport is the subset of transport.Transport the engine depends on.
// Declaring it here (rather than importing the transport package's
// concrete type) keeps the engine testable against a hand-written fake
// without going through a real socket or even a net.Pipe.
type Transport interface {
	Write(p []byte) (int, error)
	Writev(segments [][]byte) (int, error)
	Read(p []byte) (int, error)
}

// Engine owns a transport and one growable buffer, and drives a single
// request/response cycle at a time: Idle -> Serializing -> Writing ->
// Reading -> Parsing -> Idle. It is not safe for concurrent use.
type Engine struct {
	transport Transport
	buf       *buffer.Buffer
	ioPolicy  IOPolicy

	headerSize       int
	contentLength    int
	hasContentLength bool
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithIOPolicy selects the copy-write or vectored-write request framing
// policy. The default is IOPolicyCopyWrite.
func WithIOPolicy(policy IOPolicy) Option {
	return func(e *Engine) { e.ioPolicy = policy }
}

// WithInitialCapacity overrides the engine buffer's starting capacity.
func WithInitialCapacity(capacity int) Option {
	return func(e *Engine) { e.buf = buffer.NewWithCapacity(capacity) }
}

// NewEngine returns an Engine driving transport, with buf defaulted to
// constants.InitialBufferCapacity and ioPolicy defaulted to copy-write.
func NewEngine(transport Transport, opts ...Option) *Engine {
	e := &Engine{
		transport: transport,
		buf:       buffer.New(),
		ioPolicy:  IOPolicyCopyWrite,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// serialize writes the request line, headers, and blank line into the
// engine's buffer. Under the copy-write policy the body is appended to the
// same buffer and the returned body slice is nil; under the vectored
// policy the body is left out of the buffer and returned separately so the
// caller can writev it by reference.
func (e *Engine) serialize(req *Request) (head []byte, body []byte) {
	e.buf.Reset()
	e.buf.WriteString(string(req.Method))
	e.buf.WriteString(" ")
	e.buf.WriteString(req.Path)
	e.buf.WriteString(" HTTP/1.1" + crlf)
	for _, h := range req.Headers {
		e.buf.WriteString(h.Key)
		e.buf.WriteString(": ")
		e.buf.WriteString(h.Value)
		e.buf.WriteString(crlf)
	}
	e.buf.WriteString(crlf)

	if e.ioPolicy == IOPolicyCopyWrite && len(req.Body) > 0 {
		e.buf.Write(req.Body)
		return e.buf.Bytes(), nil
	}
	return e.buf.Bytes(), req.Body
}

// writeRequest serializes req and writes it to the transport: a single
// write under the copy-write policy (or when there's no body), or a
// two-segment writev under the vectored policy with a non-empty body.
func (e *Engine) writeRequest(req *Request) error {
	head, body := e.serialize(req)
	if e.ioPolicy == IOPolicyVectoredWrite && len(body) > 0 {
		_, err := e.transport.Writev([][]byte{head, body})
		return err
	}
	_, err := e.transport.Write(head)
	return err
}

// readResponse reads into the engine's buffer until the header boundary has
// been found and, if Content-Length is known, until enough body bytes have
// accumulated, or until the peer closes the connection. A peer close before
// a declared Content-Length is satisfied is a framing violation
// (HttpParseFailure), not a transport error.
func (e *Engine) readResponse() error {
	e.buf.Reset()
	e.headerSize = 0
	e.contentLength = 0
	e.hasContentLength = false
	headerFound := false

	for {
		spare := e.buf.Spare(constants.MinReadSpare)
		n, err := e.transport.Read(spare)
		if err != nil {
			if rherrors.IsConnectionClosed(err) {
				if e.hasContentLength && e.buf.Len() < e.headerSize+e.contentLength {
					return rherrors.NewHTTPParseFailure("peer closed before declared body length was satisfied", err)
				}
				break
			}
			return err
		}
		e.buf.Commit(n)

		if !e.hasContentLength && e.buf.Len() > constants.MaxResponseSize {
			return rherrors.NewHTTPParseFailure("response exceeds maximum size", nil)
		}

		if !headerFound {
			size, ok := findHeaderBoundary(e.buf.Bytes())
			if !ok {
				if e.buf.Len() > constants.MaxHeaderBytes {
					return rherrors.NewHTTPParseFailure("header block exceeds maximum size", nil)
				}
				continue
			}
			if size > constants.MaxHeaderBytes {
				return rherrors.NewHTTPParseFailure("header block exceeds maximum size", nil)
			}
			e.headerSize = size
			headerFound = true

			lines := splitHeaderBlockLines(e.buf.Bytes()[:e.headerSize])
			if len(lines) == 0 {
				return rherrors.NewHTTPParseFailure("empty response", nil)
			}
			headers, err := parseHeaderLines(lines[1:])
			if err != nil {
				return err
			}
			cl, has, err := findContentLength(headers)
			if err != nil {
				return err
			}
			e.contentLength, e.hasContentLength = cl, has
		}

		if headerFound && e.hasContentLength && e.buf.Len() >= e.headerSize+e.contentLength {
			break
		}
	}
	return nil
}

// parse performs the full status-line/header/body parse once reading has
// completed and the buffer is final. Deferring slice construction to this
// point (rather than interleaving it with reading) sidesteps any concern
// about a buffer reallocation moving previously recorded slices.
func (e *Engine) parse() (*Response, error) {
	block := e.buf.Bytes()[:e.headerSize]
	lines := splitHeaderBlockLines(block)
	if len(lines) == 0 {
		return nil, rherrors.NewHTTPParseFailure("empty response", nil)
	}

	code, message, err := parseStatusLine(lines[0])
	if err != nil {
		return nil, err
	}
	headers, err := parseHeaderLines(lines[1:])
	if err != nil {
		return nil, err
	}
	cl, has, err := findContentLength(headers)
	if err != nil {
		return nil, err
	}

	total := e.buf.Len()
	var body []byte
	if has {
		end := e.headerSize + cl
		if end > total {
			end = total
		}
		body = e.buf.Bytes()[e.headerSize:end]
	} else {
		body = e.buf.Bytes()[e.headerSize:total]
	}

	return &Response{
		StatusCode:       code,
		Message:          message,
		Headers:          headers,
		Body:             body,
		ContentLength:    cl,
		HasContentLength: has,
	}, nil
}

// PerformUnsafe writes req, reads and parses the response, and returns it
// under the unsafe (borrowed) memory policy: every slice in the returned
// Response points into the engine's internal buffer and is invalidated by
// the engine's next call or destruction.
func (e *Engine) PerformUnsafe(req *Request) (*Response, error) {
	if err := e.writeRequest(req); err != nil {
		return nil, err
	}
	if err := e.readResponse(); err != nil {
		return nil, err
	}
	return e.parse()
}

// PerformSafe writes req, reads and parses the response, and returns it
// under the safe (owning) memory policy: every field of the returned
// SafeResponse is an independent deep copy, valid after the engine is
// reused or destroyed.
func (e *Engine) PerformSafe(req *Request) (*SafeResponse, error) {
	resp, err := e.PerformUnsafe(req)
	if err != nil {
		return nil, err
	}
	return resp.ToSafe(), nil
}
