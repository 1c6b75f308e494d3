package model

import (
	"math"

	"github.com/xh3b4sd/titanic/passenger"
	"github.com/xh3b4sd/tracer"
)

const (
	NumSex = 2
	NumCla = 3
)

// Covariates is the fixed arity covariate tuple of a partition, aligned by
// row. Sex holds the zero based sex index and Cla the zero based class index.
// Cla may be nil for variants not using class.
type Covariates struct {
	Age []float64
	Sex []int
	Cla []int
}

func (c Covariates) Len() int {
	return len(c.Age)
}

// Verify checks that all arrays are aligned and every value is in range. The
// class array is only required if cla is true.
func (c Covariates) Verify(cla bool) error {
	if len(c.Sex) != len(c.Age) {
		return tracer.Maskf(dataError, "sex has %d rows, age has %d", len(c.Sex), len(c.Age))
	}

	if cla && c.Cla == nil {
		return tracer.Maskf(dataError, "class required but missing")
	}

	if c.Cla != nil && len(c.Cla) != len(c.Age) {
		return tracer.Maskf(dataError, "class has %d rows, age has %d", len(c.Cla), len(c.Age))
	}

	for i := range c.Age {
		if math.IsNaN(c.Age[i]) || math.IsInf(c.Age[i], 0) || c.Age[i] < 0 {
			return tracer.Maskf(dataError, "row %d has age %f", i, c.Age[i])
		}

		if c.Sex[i] < 0 || c.Sex[i] >= NumSex {
			return tracer.Maskf(dataError, "row %d has sex index %d", i, c.Sex[i])
		}

		if c.Cla != nil && (c.Cla[i] < 0 || c.Cla[i] >= NumCla) {
			return tracer.Maskf(dataError, "row %d has class index %d", i, c.Cla[i])
		}
	}

	return nil
}

// VerifyOutcome checks that out carries exactly n binary values.
func VerifyOutcome(out []int, n int) error {
	if len(out) != n {
		return tracer.Maskf(dataError, "outcome has %d rows, covariates have %d", len(out), n)
	}

	for i, o := range out {
		if o != 0 && o != 1 {
			return tracer.Maskf(dataError, "row %d has outcome %d", i, o)
		}
	}

	return nil
}

// Encode turns imputed records into covariates and outcome. Every record must
// carry an age. The outcome is nil if no record carries one, which is the
// case for the held out test table, and mixing records with and without
// outcome is a data error.
func Encode(rec []passenger.Record) (Covariates, []int, error) {
	cov := Covariates{
		Age: make([]float64, len(rec)),
		Sex: make([]int, len(rec)),
		Cla: make([]int, len(rec)),
	}

	var out []int
	for i, r := range rec {
		if !r.HasAge() {
			return Covariates{}, nil, tracer.Maskf(dataError, "passenger %d has no age", r.Id)
		}

		if !r.Sex.Valid() || !r.Class.Valid() {
			return Covariates{}, nil, tracer.Maskf(dataError, "passenger %d has invalid sex or class", r.Id)
		}

		if r.HasOutcome() != rec[0].HasOutcome() {
			return Covariates{}, nil, tracer.Maskf(dataError, "passenger %d disagrees on outcome presence", r.Id)
		}

		cov.Age[i] = *r.Age
		cov.Sex[i] = int(r.Sex)
		cov.Cla[i] = int(r.Class)

		if r.HasOutcome() {
			out = append(out, *r.Survived)
		}
	}

	return cov, out, nil
}
