// Package rherrors provides the structured error taxonomy shared by every
// layer of the engine: transport, protocol, and client.
package rherrors

import (
	"fmt"
)

// Category is the broad class of failure: transport-level or protocol-level.
// A nil error is the implicit "None" category — there is no zero-value
// Category constant for it because the taxonomy only needs to name failures.
type Category string

const (
	CategoryTransport Category = "transport"
	CategoryProtocol  Category = "protocol"
)

// Code is the fine-grained failure reason within a Category.
type Code string

const (
	// Transport codes.
	CodeDNSFailure            Code = "dns_failure"
	CodeSocketCreateFailure   Code = "socket_create_failure"
	CodeSocketConnectFailure  Code = "socket_connect_failure"
	CodeSocketWriteFailure    Code = "socket_write_failure"
	CodeSocketReadFailure     Code = "socket_read_failure"
	CodeConnectionClosed      Code = "connection_closed"
	CodeSocketCloseFailure    Code = "socket_close_failure"
	CodeTransportInitFailure  Code = "transport_init_failure"

	// Protocol codes.
	CodeURLParseFailure      Code = "url_parse_failure"
	CodeHTTPParseFailure     Code = "http_parse_failure"
	CodeInvalidRequest       Code = "invalid_request"
	CodeProtocolInitFailure  Code = "protocol_init_failure"
)

// Error is a tagged value carrying a Category and a fine-grained Code, with
// an optional human-readable message and underlying cause. Every fallible
// operation across a transport/engine/client boundary returns one of these
// (or nil) instead of relying on panics or sentinel errors.
type Error struct {
	Category Category
	Code     Code
	Message  string
	Cause    error
}

// Error implements the error interface. Format: [category/code] message: cause
func (e *Error) Error() string {
	s := fmt.Sprintf("[%s/%s]", e.Category, e.Code)
	if e.Message != "" {
		s += " " + e.Message
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Category and Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

func newTransport(code Code, message string, cause error) *Error {
	return &Error{Category: CategoryTransport, Code: code, Message: message, Cause: cause}
}

func newProtocol(code Code, message string, cause error) *Error {
	return &Error{Category: CategoryProtocol, Code: code, Message: message, Cause: cause}
}

// NewDNSFailure reports that address resolution failed for host.
func NewDNSFailure(host string, cause error) *Error {
	return newTransport(CodeDNSFailure, fmt.Sprintf("DNS resolution failed for %s", host), cause)
}

// NewSocketCreateFailure reports that a socket could not be created.
func NewSocketCreateFailure(cause error) *Error {
	return newTransport(CodeSocketCreateFailure, "socket creation failed", cause)
}

// NewSocketConnectFailure reports that every candidate address was
// unreachable.
func NewSocketConnectFailure(addr string, cause error) *Error {
	return newTransport(CodeSocketConnectFailure, fmt.Sprintf("connect failed for %s", addr), cause)
}

// NewSocketWriteFailure reports a write-side transport failure.
func NewSocketWriteFailure(cause error) *Error {
	return newTransport(CodeSocketWriteFailure, "write failed", cause)
}

// NewSocketReadFailure reports a read-side transport failure.
func NewSocketReadFailure(cause error) *Error {
	return newTransport(CodeSocketReadFailure, "read failed", cause)
}

// NewConnectionClosed reports that the peer closed the connection (a
// successful read of zero bytes), distinguished from success-with-zero and
// from read-side syscall failures.
func NewConnectionClosed() *Error {
	return newTransport(CodeConnectionClosed, "connection closed by peer", nil)
}

// NewSocketCloseFailure reports that the underlying close syscall failed.
func NewSocketCloseFailure(cause error) *Error {
	return newTransport(CodeSocketCloseFailure, "close failed", cause)
}

// NewTransportInitFailure reports that a transport could not be constructed.
func NewTransportInitFailure(message string, cause error) *Error {
	return newTransport(CodeTransportInitFailure, message, cause)
}

// NewURLParseFailure reports that a path/URL could not be parsed.
func NewURLParseFailure(message string, cause error) *Error {
	return newProtocol(CodeURLParseFailure, message, cause)
}

// NewHTTPParseFailure reports a framing or parse violation in the response.
func NewHTTPParseFailure(message string, cause error) *Error {
	return newProtocol(CodeHTTPParseFailure, message, cause)
}

// NewInvalidRequest reports that the client facade rejected a request before
// it reached the engine (missing Content-Length, GET with a body, etc.).
func NewInvalidRequest(message string) *Error {
	return newProtocol(CodeInvalidRequest, message, nil)
}

// NewProtocolInitFailure reports that the protocol engine could not be
// constructed.
func NewProtocolInitFailure(message string, cause error) *Error {
	return newProtocol(CodeProtocolInitFailure, message, cause)
}

// CategoryOf returns the Category of err if it is a *Error, and ok=false
// otherwise.
func CategoryOf(err error) (Category, bool) {
	e, ok := err.(*Error)
	if !ok {
		return "", false
	}
	return e.Category, true
}

// CodeOf returns the Code of err if it is a *Error, and ok=false otherwise.
func CodeOf(err error) (Code, bool) {
	e, ok := err.(*Error)
	if !ok {
		return "", false
	}
	return e.Code, true
}

// IsConnectionClosed reports whether err is the distinguished
// connection-closed outcome.
func IsConnectionClosed(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeConnectionClosed
}
