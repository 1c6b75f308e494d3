package model

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var dataError = &tracer.Error{
	Kind: "dataError",
}

// IsData reports whether err was caused by malformed or misaligned input
// records or arrays.
func IsData(err error) bool {
	return errors.Is(err, dataError)
}

var invalidVariantError = &tracer.Error{
	Kind: "invalidVariantError",
}

func IsInvalidVariant(err error) bool {
	return errors.Is(err, invalidVariantError)
}
