package domain

import (
	"errors"
	"fmt"
)

// InvalidCardError is a local validation failure. The request never reaches
// the gateway when one of these is returned.
type InvalidCardError struct {
	Reason string
}

func (e *InvalidCardError) Error() string {
	if e.Reason == "" {
		return "invalid credit card"
	}
	return fmt.Sprintf("invalid credit card: %s", e.Reason)
}

// IsInvalidCardError unwraps err into an InvalidCardError if it is one.
func IsInvalidCardError(err error) (*InvalidCardError, bool) {
	var cardErr *InvalidCardError
	ok := errors.As(err, &cardErr)
	return cardErr, ok
}
