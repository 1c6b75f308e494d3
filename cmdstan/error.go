package cmdstan

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var executionError = &tracer.Error{
	Kind: "executionError",
}

// IsExecution reports whether a CmdStan child process, compiling or sampling,
// could not be run to completion.
func IsExecution(err error) bool {
	return errors.Is(err, executionError)
}

var invalidOutputError = &tracer.Error{
	Kind: "invalidOutputError",
}

// IsInvalidOutput reports whether the Stan CSV written by the model binary
// could not be interpreted for the model being sampled.
func IsInvalidOutput(err error) bool {
	return errors.Is(err, invalidOutputError)
}
