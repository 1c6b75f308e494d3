package imputer

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var imputationExhaustedError = &tracer.Error{
	Kind: "imputationExhaustedError",
}

// IsImputationExhausted reports whether no statistic was available at any
// level of the fallback chain and no fixed default was configured.
func IsImputationExhausted(err error) bool {
	return errors.Is(err, imputationExhaustedError)
}

var invalidAgeError = &tracer.Error{
	Kind: "invalidAgeError",
}

func IsInvalidAge(err error) bool {
	return errors.Is(err, invalidAgeError)
}

var invalidPolicyError = &tracer.Error{
	Kind: "invalidPolicyError",
}

func IsInvalidPolicy(err error) bool {
	return errors.Is(err, invalidPolicyError)
}
