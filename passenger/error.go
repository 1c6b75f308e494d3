package passenger

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var invalidClassError = &tracer.Error{
	Kind: "invalidClassError",
}

func IsInvalidClass(err error) bool {
	return errors.Is(err, invalidClassError)
}

var invalidRatioError = &tracer.Error{
	Kind: "invalidRatioError",
}

func IsInvalidRatio(err error) bool {
	return errors.Is(err, invalidRatioError)
}

var invalidSexError = &tracer.Error{
	Kind: "invalidSexError",
}

func IsInvalidSex(err error) bool {
	return errors.Is(err, invalidSexError)
}
