// internal/app/store/dashapi/errors.go
package dashapi

import (
	"errors"
	"fmt"
)

// Failure kinds. Match with errors.Is.
var (
	// ErrTransport covers dial failures, timeouts and non-2xx statuses.
	ErrTransport = errors.New("dashapi: transport failure")
	// ErrPayload covers success:false, undecodable JSON and oversized bodies.
	ErrPayload = errors.New("dashapi: payload failure")
)

// Failure is the concrete error returned by Client calls.
type Failure struct {
	Kind   error  // ErrTransport or ErrPayload
	Op     string // "manager", "worker", "ping"
	Status int    // HTTP status, 0 when no response arrived
	Err    error
}

func (f *Failure) Error() string {
	msg := f.Kind.Error()
	if f.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, f.Status)
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return f.Op + ": " + msg
}

// Is reports whether target is the failure kind.
func (f *Failure) Is(target error) bool { return target == f.Kind }

func (f *Failure) Unwrap() error { return f.Err }

func transportFailure(op string, status int, err error) *Failure {
	return &Failure{Kind: ErrTransport, Op: op, Status: status, Err: err}
}

func payloadFailure(op string, status int, err error) *Failure {
	return &Failure{Kind: ErrPayload, Op: op, Status: status, Err: err}
}
