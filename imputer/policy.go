package imputer

import (
	"fmt"

	"github.com/xh3b4sd/titanic/passenger"
	"github.com/xh3b4sd/tracer"
)

// Policy decides which subgroup a missing age is estimated from first.
type Policy int

const (
	// Group uses the passengers sharing sex and class.
	Group Policy = iota
	// Title uses the passengers sharing the normalized honorific of the name.
	Title
)

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "group":
		return Group, nil
	case "title":
		return Title, nil
	}

	return 0, tracer.Maskf(invalidPolicyError, "%q", s)
}

func (p Policy) String() string {
	switch p {
	case Group:
		return "group"
	case Title:
		return "title"
	}

	return "unknown"
}

// key returns the finest grouping key of r under the policy, or an empty
// string if r has no such group, as with names lacking an honorific.
func (p Policy) key(r passenger.Record) string {
	if p == Title {
		tit := passenger.Title(r.Name)
		if tit == "" {
			return ""
		}

		return "tit/" + tit
	}

	return fmt.Sprintf("grp/%d/%d", r.Sex, r.Class)
}

// Statistic is the summary computed over the known ages of a group.
type Statistic int

const (
	Mean Statistic = iota
	Median
)

func ParseStatistic(s string) (Statistic, error) {
	switch s {
	case "", "mean":
		return Mean, nil
	case "median":
		return Median, nil
	}

	return 0, tracer.Maskf(invalidPolicyError, "statistic %q", s)
}

func (s Statistic) String() string {
	switch s {
	case Mean:
		return "mean"
	case Median:
		return "median"
	}

	return "unknown"
}
