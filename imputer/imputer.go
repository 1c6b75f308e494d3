package imputer

import (
	"math"
	"sort"

	"github.com/xh3b4sd/titanic/passenger"
	"github.com/xh3b4sd/tracer"
	"gonum.org/v1/gonum/stat"
)

// Imputer fills missing ages deterministically. The statistic for a missing
// age is taken from the first non empty group of the fallback chain.
//
//     policy group:  sex and class -> sex -> global -> Def
//     policy title:  honorific     -> sex -> global -> Def
//
// Groups are built from the known ages of the input only, never from imputed
// values. Imputing an already imputed record set is therefore a no-op.
type Imputer struct {
	// Def is the optional fixed age used when no group at all carries a known
	// age. Without it such record sets fail with an imputation exhausted error.
	Def *float64
	Pol Policy
	Sta Statistic
}

// Impute returns a copy of rec in which every missing age is populated.
// Records with a known age are returned unchanged. The input slice is not
// modified.
func (i *Imputer) Impute(rec []passenger.Record) ([]passenger.Record, error) {
	for _, r := range rec {
		if !r.HasAge() {
			continue
		}

		age := *r.Age
		if math.IsNaN(age) || math.IsInf(age, 0) || age < 0 {
			return nil, tracer.Maskf(invalidAgeError, "passenger %d has age %f", r.Id, age)
		}
	}

	out, err := i.ImputeWith(rec, i.Stats(rec))
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return out, nil
}

// Stats computes the statistic of every group that carries a known age in rec.
// It is the table Impute resolves missing ages against and lets callers impute
// a held out table with the statistics of the training table.
func (i *Imputer) Stats(rec []passenger.Record) map[string]float64 {
	ref := map[string][]float64{}
	for _, r := range rec {
		if !r.HasAge() {
			continue
		}

		for _, k := range i.keys(r) {
			ref[k] = append(ref[k], *r.Age)
		}
	}

	sta := map[string]float64{}
	for k, v := range ref {
		sta[k] = i.statistic(v)
	}

	return sta
}

// ImputeWith fills the missing ages of rec from a statistics table computed
// beforehand via Stats, typically from another record set.
func (i *Imputer) ImputeWith(rec []passenger.Record, sta map[string]float64) ([]passenger.Record, error) {
	{
		i.configs()
	}

	out := make([]passenger.Record, len(rec))
	for j, r := range rec {
		if r.HasAge() {
			out[j] = r
			continue
		}

		age, ok := i.lookup(r, sta)
		if !ok {
			return nil, tracer.Maskf(imputationExhaustedError, "passenger %d", r.Id)
		}

		out[j] = r.WithAge(age)
	}

	return out, nil
}

func (i *Imputer) configs() {
	if i.Def != nil {
		if math.IsNaN(*i.Def) || math.IsInf(*i.Def, 0) || *i.Def < 0 {
			panic("Imputer.Def must be a finite non-negative age")
		}
	}
}

// keys returns the grouping keys of r from the finest to the coarsest level.
func (i *Imputer) keys(r passenger.Record) []string {
	var key []string

	if k := i.Pol.key(r); k != "" {
		key = append(key, k)
	}

	return append(key, "sex/"+r.Sex.String(), "all")
}

func (i *Imputer) lookup(r passenger.Record, sta map[string]float64) (float64, bool) {
	for _, k := range i.keys(r) {
		if v, ok := sta[k]; ok {
			return v, true
		}
	}

	if i.Def != nil {
		return *i.Def, true
	}

	return 0, false
}

func (i *Imputer) statistic(x []float64) float64 {
	if i.Sta == Median {
		return median(x)
	}

	return stat.Mean(x, nil)
}

func median(x []float64) float64 {
	cop := make([]float64, len(x))
	copy(cop, x)
	sort.Float64s(cop)

	mid := len(cop) / 2
	if len(cop)%2 == 0 {
		return (cop[mid-1] + cop[mid]) / 2
	}

	return cop[mid]
}
