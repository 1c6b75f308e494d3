package sampler

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var samplingError = &tracer.Error{
	Kind: "samplingError",
}

// IsSampling reports whether the sampler failed to produce draws at all, for
// instance because no initial point with a finite log posterior was found.
func IsSampling(err error) bool {
	return errors.Is(err, samplingError)
}
