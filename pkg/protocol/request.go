package protocol

import (
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/warrenjitsing/gorawhttp/pkg/rherrors"
)

// Method is the HTTP request method. Only GET and POST are supported;
// HEAD, PUT, DELETE, and other verbs are out of scope.
type Method string

const (
	MethodGET  Method = "GET"
	MethodPOST Method = "POST"
)

// Header is one request header key/value pair. Headers are written to the
// wire in slice order. Response headers use HeaderView (unsafe form) and
// SafeHeader (safe form) instead.
type Header struct {
	Key   string
	Value string
}

// Request is a caller-constructed value describing one HTTP/1.1 request.
// It borrows Path, Body, and every header's Key/Value from the caller; the
// caller must keep them alive for the duration of the call that consumes
// this Request.
type Request struct {
	Method  Method
	Path    string
	Body    []byte
	Headers []Header
}

// HeaderValue returns the value of the first header whose key matches key
// case-insensitively.
func (r *Request) HeaderValue(key string) (string, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Key, key) {
			return h.Value, true
		}
	}
	return "", false
}

// Validate checks that every header key and value is a syntactically valid
// HTTP field, per RFC 7230.
func (r *Request) Validate() error {
	for _, h := range r.Headers {
		if !httpguts.ValidHeaderFieldName(h.Key) {
			return rherrors.NewInvalidRequest(fmt.Sprintf("invalid header field name %q", h.Key))
		}
		if !httpguts.ValidHeaderFieldValue(h.Value) {
			return rherrors.NewInvalidRequest(fmt.Sprintf("invalid header field value for %q", h.Key))
		}
	}
	return nil
}
