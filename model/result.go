package model

import (
	"fmt"

	"github.com/xh3b4sd/titanic/diagnostic"
	"github.com/xh3b4sd/tracer"
)

// Sample is one posterior draw together with one posterior predictive outcome
// draw in {0,1} per held out row.
type Sample struct {
	Coe Coefficients
	Pre []int
}

// Warning is a convergence concern about a fit. Warnings never invalidate the
// draws but the draws should be treated with care.
type Warning struct {
	// Kin is one of "rhat", "ess" or "divergence".
	Kin string
	// Par is the affected parameter, empty for run wide warnings.
	Par string
	Val float64
	Lim float64
}

func (w Warning) String() string {
	if w.Par == "" {
		return fmt.Sprintf("%s %g exceeds %g", w.Kin, w.Val, w.Lim)
	}

	return fmt.Sprintf("%s of %s is %g, limit %g", w.Kin, w.Par, w.Val, w.Lim)
}

// Result is the outcome of fitting a model and predicting a held out
// partition.
type Result struct {
	Sam []Sample
	War []Warning
	Dia diagnostic.Report
}

// Rows returns the number of held out rows predicted.
func (r *Result) Rows() int {
	if len(r.Sam) == 0 {
		return 0
	}

	return len(r.Sam[0].Pre)
}

// Predict returns the rounded median of the posterior predictive draws per
// held out row. A tie rounds up to survival.
func (r *Result) Predict() []int {
	pre := make([]int, r.Rows())
	for i := range pre {
		var one int
		for _, s := range r.Sam {
			one += s.Pre[i]
		}

		if 2*one >= len(r.Sam) {
			pre[i] = 1
		}
	}

	return pre
}

// Prob returns the share of posterior predictive draws predicting survival
// per held out row.
func (r *Result) Prob() []float64 {
	pro := make([]float64, r.Rows())
	for i := range pro {
		var one int
		for _, s := range r.Sam {
			one += s.Pre[i]
		}

		pro[i] = float64(one) / float64(len(r.Sam))
	}

	return pro
}

// Accuracy returns the posterior predictive accuracy against the true
// outcomes of the held out rows, the share of correct predictive draws
// averaged over all samples.
func (r *Result) Accuracy(tru []int) (float64, error) {
	{
		err := VerifyOutcome(tru, r.Rows())
		if err != nil {
			return 0, tracer.Mask(err)
		}
	}

	if len(r.Sam) == 0 || len(tru) == 0 {
		return 0, tracer.Maskf(dataError, "nothing to score")
	}

	var hit int
	for _, s := range r.Sam {
		for i, p := range s.Pre {
			if p == tru[i] {
				hit++
			}
		}
	}

	return float64(hit) / float64(len(r.Sam)*len(tru)), nil
}
