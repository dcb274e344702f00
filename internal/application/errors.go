package application

import (
	"errors"
	"fmt"
)

// TransportError is a network or protocol-level failure reaching the
// gateway. It is surfaced to the caller, never retried here; callers decide
// retry policy. Business-level declines are not transport errors.
type TransportError struct {
	Protocol   Protocol
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("gateway transport [%s] %s failed", e.Protocol, e.Op)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status: %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError unwraps err into a TransportError if it is one.
func IsTransportError(err error) (*TransportError, bool) {
	var transportErr *TransportError
	ok := errors.As(err, &transportErr)
	return transportErr, ok
}
