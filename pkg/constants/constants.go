// Package constants defines the magic numbers shared by the buffer,
// transport, and protocol layers.
package constants

const (
	// InitialBufferCapacity is the starting capacity for both the outgoing
	// request buffer and the incoming response buffer.
	InitialBufferCapacity = 2048

	// MinReadSpare is the minimum spare capacity the protocol engine
	// guarantees before issuing a read into the response buffer's tail.
	MinReadSpare = 1024

	// MaxHeaderBytes bounds the size of the status-line-plus-headers block.
	// A response whose header boundary has not been found by the time the
	// buffer exceeds this size is treated as a resource-exhaustion attempt,
	// not a slow server.
	MaxHeaderBytes = 64 * 1024

	// MaxResponseSize bounds the read-to-close path, where no Content-Length
	// exists to size the transfer in advance. Content-Length-framed
	// responses are not subject to this cap.
	MaxResponseSize = 100 * 1024 * 1024

	// MaxContentLength bounds the value accepted from a Content-Length
	// header. A value beyond this is treated as malformed rather than
	// trusted verbatim.
	MaxContentLength = 1024 * 1024 * 1024 * 1024 // 1TB
)
