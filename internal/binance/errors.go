package binance

import "fmt"

// The client fails with exactly one of three error kinds and never recovers:
// TransportError when the request could not reach the venue, UpstreamError
// when the venue answered with a non-2xx status, ParseError when the body
// does not match the expected wire shape. Callers pick them apart with
// errors.As and decide the fallback policy themselves.

// TransportError means the network request itself failed.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("binance: %s: transport error: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError means the venue rejected the request with a non-2xx status.
type UpstreamError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("binance: %s: upstream status %d: %s", e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("binance: %s: upstream status %d", e.Endpoint, e.Status)
}

// ParseError means the response body did not match the expected shape.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("binance: %s: parse error: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
