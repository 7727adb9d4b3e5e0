package user

import (
	"errors"

	"fn7-backend/internal/sdk"
)

var ErrNotInitialized = sdk.ErrNotInitialized

// Fault is a collaborator failure for one request. Only its message survives;
// the collaborator's own error type never leaves this package.
type Fault struct {
	Op      string
	Message string
}

func (f *Fault) Error() string { return f.Message }

func newFault(op string, err error) *Fault {
	return &Fault{Op: op, Message: err.Error()}
}

func IsErrNotInitialized(err error) bool { return errors.Is(err, ErrNotInitialized) }

// AsFault reports whether err is a Fault and returns it.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	ok := errors.As(err, &f)
	return f, ok
}
