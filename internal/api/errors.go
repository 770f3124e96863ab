package api

import "fmt"

// NetworkError wraps a transport-level failure (DNS, connection, timeout,
// cancellation). No response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError is a completed request that the service answered with a
// non-2xx status.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: service returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: service returned status %d: %s", e.Op, e.Status, e.Body)
}
