// Package responder turns an inbound request into the response that
// mirrors it. It performs no I/O and holds no state, so it is safe to
// call from any number of goroutines.
package responder

import (
	"net/http"
	"strconv"
)

const (
	// HeaderStatusCode overrides the status code of the response.
	HeaderStatusCode = "internal.status-code"

	// HeaderResponseBody overrides the body of the response.
	HeaderResponseBody = "internal.response-body"

	// HeaderHost is never echoed.
	HeaderHost = "host"
)

// DefaultStatusCode is used when no valid override is present.
const DefaultStatusCode = http.StatusOK

const (
	minStatusCode = 100
	maxStatusCode = 599
)

// ReservedHeaders lists the request headers that never appear in a response.
var ReservedHeaders = []string{
	HeaderStatusCode,
	HeaderResponseBody,
	HeaderHost,
}

// Request is an inbound request as seen by the responder.
type Request struct {
	// Method is the request method, e.g. "POST".
	Method string

	// Path is the request URI including the raw query string.
	Path string

	Header Header
	Body   []byte
}

// Response is the response produced for a Request.
type Response struct {
	StatusCode int
	Header     Header
	Body       []byte
}

// Responder produces a response for a request.
type Responder interface {
	Respond(req Request) Response
}

// Echo is the Responder that mirrors requests.
type Echo struct{}

var _ Responder = Echo{}

// Respond implements Responder.
func (Echo) Respond(req Request) Response {
	return Respond(req)
}

// Respond mirrors req into a response. Reserved headers are stripped,
// internal.status-code and internal.response-body override the status
// and the body. Invalid overrides fall back to the defaults.
func Respond(req Request) Response {
	return Response{
		StatusCode: resolveStatusCode(req.Header),
		Header:     req.Header.Without(ReservedHeaders...),
		Body:       resolveBody(req.Header, req.Body),
	}
}

func resolveStatusCode(h Header) int {
	raw, ok := h.Get(HeaderStatusCode)
	if !ok {
		return DefaultStatusCode
	}

	code, ok := ParseStatusCode(raw)
	if !ok {
		return DefaultStatusCode
	}

	return code
}

func resolveBody(h Header, body []byte) []byte {
	if override, ok := h.Get(HeaderResponseBody); ok {
		return []byte(override)
	}

	return body
}

// ParseStatusCode parses s as an unsigned decimal status code in the
// range 100-599.
func ParseStatusCode(s string) (int, bool) {
	// ParseUint accepts neither signs nor whitespace
	code, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, false
	}

	if code < minStatusCode || code > maxStatusCode {
		return 0, false
	}

	return int(code), true
}
