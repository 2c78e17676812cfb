package conn

import "fmt"

// NotConnectedError reports a store operation or model binding
// attempted against a manager that is not Connected.
type NotConnectedError struct {
	State State
}

func (e *NotConnectedError) Error() string {
	return fmt.Sprintf("store is not connected (state %s)", e.State)
}

// ClosedError reports a store operation that failed because the
// connection began closing while it was in flight.
type ClosedError struct {
	Err error
}

func (e *ClosedError) Error() string {
	return fmt.Sprintf("connection closed during operation: %s", e.Err)
}

func (e *ClosedError) Unwrap() error {
	return e.Err
}
