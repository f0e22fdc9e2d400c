package purge

import (
	"errors"
	"fmt"
)

// ErrAborted is returned when the operator does not confirm. Nothing was deleted.
var ErrAborted = errors.New("aborted: nothing was deleted")

// StepError represents a failure in one step of a purge
type StepError struct {
	Step  string
	Table string
	Cause error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Step, e.Table, e.Cause)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}
