package protocol

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/warrenjitsing/gorawhttp/pkg/constants"
	"github.com/warrenjitsing/gorawhttp/pkg/rherrors"
)

const (
	crlf           = "\r\n"
	headerBoundary = "\r\n\r\n"
)

func headerEqualFold(key []byte, want string) bool {
	return strings.EqualFold(string(key), want)
}

// findHeaderBoundary searches buf for the CRLF CRLF that terminates the
// header block and returns the offset of the first body byte, or ok=false
// if the boundary hasn't appeared yet.
func findHeaderBoundary(buf []byte) (int, bool) {
	idx := bytes.Index(buf, []byte(headerBoundary))
	if idx < 0 {
		return 0, false
	}
	return idx + len(headerBoundary), true
}

// splitHeaderBlockLines splits a header block (status line + header lines +
// the terminating blank line, as delimited by findHeaderBoundary) into its
// constituent lines, with the terminating blank line removed.
func splitHeaderBlockLines(block []byte) [][]byte {
	trimmed := bytes.TrimSuffix(block, []byte(headerBoundary))
	if len(trimmed) == 0 {
		return nil
	}
	return bytes.Split(trimmed, []byte(crlf))
}

// parseStatusLine parses "HTTP/1.1 <code> <message>".
func parseStatusLine(line []byte) (int, []byte, error) {
	parts := bytes.SplitN(line, []byte(" "), 3)
	if len(parts) < 2 || !bytes.Equal(parts[0], []byte("HTTP/1.1")) {
		return 0, nil, rherrors.NewHTTPParseFailure("malformed status line", nil)
	}
	code, err := strconv.Atoi(string(parts[1]))
	if err != nil {
		return 0, nil, rherrors.NewHTTPParseFailure("malformed status code", err)
	}
	var message []byte
	if len(parts) == 3 {
		message = parts[2]
	}
	return code, message, nil
}

// parseHeaderLine splits a single header line on the first colon and trims
// leading whitespace from the value.
func parseHeaderLine(line []byte) ([]byte, []byte, error) {
	idx := bytes.IndexByte(line, ':')
	if idx < 0 {
		return nil, nil, rherrors.NewHTTPParseFailure("header line missing ':'", nil)
	}
	key := line[:idx]
	value := bytes.TrimLeft(line[idx+1:], " \t")
	return key, value, nil
}

// parseHeaderLines parses every header line following the status line.
func parseHeaderLines(lines [][]byte) ([]HeaderView, error) {
	headers := make([]HeaderView, 0, len(lines))
	for _, line := range lines {
		key, value, err := parseHeaderLine(line)
		if err != nil {
			return nil, err
		}
		headers = append(headers, HeaderView{Key: key, Value: value})
	}
	return headers, nil
}

// findContentLength scans headers for a case-insensitive Content-Length
// match. Multiple occurrences with differing values are a framing hazard
// (RFC 9110 §8.6) and fail; multiple occurrences that agree collapse to a
// single value. The value must be a non-negative integer not exceeding
// constants.MaxContentLength.
func findContentLength(headers []HeaderView) (int, bool, error) {
	found := false
	value := 0
	for _, h := range headers {
		if !headerEqualFold(h.Key, "Content-Length") {
			continue
		}
		n, err := strconv.Atoi(string(bytes.TrimSpace(h.Value)))
		if err != nil || n < 0 || n > constants.MaxContentLength {
			return 0, false, rherrors.NewHTTPParseFailure("invalid Content-Length header", err)
		}
		if found && n != value {
			return 0, false, rherrors.NewHTTPParseFailure("conflicting Content-Length headers", nil)
		}
		found = true
		value = n
	}
	return value, found, nil
}
