package runner

import (
	"errors"

	"github.com/xh3b4sd/titanic/model"
	"github.com/xh3b4sd/tracer"
)

var engineFailedError = &tracer.Error{
	Kind: "engineFailedError",
}

// IsEngineFailed reports whether the sampling engine itself failed to
// produce draws. Such errors are fatal for the fit.
func IsEngineFailed(err error) bool {
	return errors.Is(err, engineFailedError)
}

// IsData reports whether the inputs of a fit were malformed or misaligned.
func IsData(err error) bool {
	return model.IsData(err)
}
