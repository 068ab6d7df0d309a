package pipeline

import (
	"errors"
	"fmt"
)

// Stage names a step of a pipeline run.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageDecode    Stage = "decode"
	StageAggregate Stage = "aggregate"
	StageRender    Stage = "render"
	StageMetrics   Stage = "metrics"
)

// StageError wraps an error together with the [Stage] that produced it.
// Every failure of [Runner.Run] is a StageError, so callers can tell a
// missing object from a malformed file.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IsStageError reports whether err (or any error in its chain) is a [*StageError].
func IsStageError(err error) bool {
	if err == nil {
		return false
	}
	var se *StageError
	return errors.As(err, &se)
}

// StageOf extracts the [Stage] from the first [*StageError] in err's chain.
// Returns false if no StageError is found.
func StageOf(err error) (Stage, bool) {
	if err == nil {
		return "", false
	}

	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

// CauseOf unwraps the first [*StageError] in err's chain and returns its
// underlying cause. If err is not a StageError, it is returned as-is.
// Returns nil if err is nil.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}

	var se *StageError
	if errors.As(err, &se) {
		return se.Err
	}

	return err
}

// AllStageErrors recursively collects every [*StageError] from err's chain,
// including errors joined via [errors.Join]. Returns nil if none are found.
func AllStageErrors(err error) []*StageError {
	if err == nil {
		return nil
	}

	var out []*StageError
	collectStageErrors(err, &out)
	return out
}

func collectStageErrors(err error, out *[]*StageError) {
	switch e := err.(type) {
	case *StageError:
		*out = append(*out, e)

	case interface{ Unwrap() []error }:
		for _, sub := range e.Unwrap() {
			collectStageErrors(sub, out)
		}

	case interface{ Unwrap() error }:
		collectStageErrors(e.Unwrap(), out)
	}
}
