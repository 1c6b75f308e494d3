package loader

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var invalidHeaderError = &tracer.Error{
	Kind: "invalidHeaderError",
}

func IsInvalidHeader(err error) bool {
	return errors.Is(err, invalidHeaderError)
}

var invalidRecordError = &tracer.Error{
	Kind: "invalidRecordError",
}

func IsInvalidRecord(err error) bool {
	return errors.Is(err, invalidRecordError)
}
