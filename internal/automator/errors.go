// File: internal/automator/errors.go
package automator

import "errors"

// ErrStepBudget is returned when the loop exhausts agent.max_steps without
// the model concluding the run.
var ErrStepBudget = errors.New("step budget exhausted before the model concluded")

// ErrAlreadyRun is returned when Run is called on a consumed Automator. The
// terminated state is absorbing; a fresh run needs a fresh Automator.
var ErrAlreadyRun = errors.New("automator has already run")

// ResponseError reports a model response that could not be interpreted as a
// decision: not JSON, or JSON without a command field. It is terminal for the
// current run and is never retried.
type ResponseError struct {
	Err error
}

func (e *ResponseError) Error() string {
	return "malformed model response: " + e.Err.Error()
}

func (e *ResponseError) Unwrap() error { return e.Err }
