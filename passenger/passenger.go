package passenger

import (
	"strings"

	"github.com/xh3b4sd/tracer"
)

// Sex is the two level categorical of a passenger. The numeric value doubles
// as the zero based intercept index used by the model variants.
type Sex int

const (
	Female Sex = iota
	Male
)

func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female", "f":
		return Female, nil
	case "male", "m":
		return Male, nil
	}

	return 0, tracer.Maskf(invalidSexError, "%q", s)
}

func (s Sex) String() string {
	switch s {
	case Female:
		return "female"
	case Male:
		return "male"
	}

	return "unknown"
}

func (s Sex) Valid() bool {
	return s == Female || s == Male
}

// Class is the ordinal ticket class of a passenger. The numeric value is the
// zero based class index, so First is 0 while the manifest calls it 1.
type Class int

const (
	First Class = iota
	Second
	Third
)

// ParseClass maps the manifest's one based class number onto Class.
func ParseClass(n int) (Class, error) {
	if n < 1 || n > 3 {
		return 0, tracer.Maskf(invalidClassError, "%d", n)
	}

	return Class(n - 1), nil
}

func (c Class) Number() int {
	return int(c) + 1
}

func (c Class) String() string {
	switch c {
	case First:
		return "first"
	case Second:
		return "second"
	case Third:
		return "third"
	}

	return "unknown"
}

func (c Class) Valid() bool {
	return c >= First && c <= Third
}

// Record is a single row of the passenger manifest. Age and Survived are
// optional. Age may be missing in both tables and Survived is always missing
// for the held out test table.
type Record struct {
	Id       int
	Age      *float64
	Sex      Sex
	Class    Class
	Survived *int
	Name     string
}

// WithAge returns a copy of r carrying the given age. The receiver is not
// modified.
func (r Record) WithAge(age float64) Record {
	r.Age = Float(age)
	return r
}

func (r Record) HasAge() bool {
	return r.Age != nil
}

func (r Record) HasOutcome() bool {
	return r.Survived != nil
}

func Float(f float64) *float64 {
	return &f
}

func Int(i int) *int {
	return &i
}
