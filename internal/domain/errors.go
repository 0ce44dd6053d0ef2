package domain

import "errors"

// Fetch errors classify why a fetch fell back to its default value.
// Callers never see them directly; they are wrapped and logged.
var (
	// ErrTransport covers unreachable hosts, timeouts, invalid URLs and non-2xx responses.
	ErrTransport = errors.New("transport failure")
	// ErrDecode means the response body did not match the expected shape.
	ErrDecode = errors.New("decode failure")
)
