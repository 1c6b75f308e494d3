package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Model is the logistic regression of survival for one Variant.
//
//     P(survived=1) = sigmoid(alpha[sex] + beta*age + sum_k beta_class[k]*class_k + off[sex][class])
//
// Every intercept and slope has a standard normal prior. The class slopes
// only exist for the Class variant. The offsets only exist for the
// Hierarchical variant, where off[s][c] = tau*z[s][c] with z standard normal
// and tau half normal.
//
// Parameter vectors are laid out in the order of Names. Vectors handed to
// LogPost are unconstrained, meaning tau is given on the log scale. Vectors
// handed to Coefficients are constrained, as produced by Constrain or read
// from an external engine.
type Model struct {
	Var Variant
}

// Class reports whether the variant needs the class covariate.
func (m Model) Class() bool {
	return m.Var == Class || m.Var == Hierarchical
}

func (m Model) Dim() int {
	return len(m.Names())
}

// Names returns the parameter names in the Stan output convention, which is
// how external engines report columns.
func (m Model) Names() []string {
	nam := []string{"alpha.1", "alpha.2", "beta"}

	switch m.Var {
	case Class:
		nam = append(nam, "beta_class.1", "beta_class.2")
	case Hierarchical:
		nam = append(nam, "tau")
		for s := 1; s <= NumSex; s++ {
			for c := 1; c <= NumCla; c++ {
				nam = append(nam, fmt.Sprintf("z.%d.%d", s, c))
			}
		}
	}

	return nam
}

// Constrain maps an unconstrained parameter vector onto its constrained form.
// The input is not modified.
func (m Model) Constrain(par []float64) []float64 {
	cop := make([]float64, len(par))
	copy(cop, par)

	if m.Var == Hierarchical {
		cop[idxTau] = math.Exp(cop[idxTau])
	}

	return cop
}

// Coefficients interprets a constrained parameter vector.
func (m Model) Coefficients(par []float64) Coefficients {
	coe := Coefficients{
		Alp: []float64{par[0], par[1]},
		Bet: par[2],
	}

	switch m.Var {
	case Class:
		coe.Cla = []float64{par[3], par[4]}
	case Hierarchical:
		coe.Tau = par[idxTau]
		coe.Off = make([][]float64, NumSex)
		for s := 0; s < NumSex; s++ {
			coe.Off[s] = make([]float64, NumCla)
			for c := 0; c < NumCla; c++ {
				coe.Off[s][c] = coe.Tau * par[idxTau+1+s*NumCla+c]
			}
		}
	}

	return coe
}

// LogPost returns the unnormalized log posterior density of the unconstrained
// parameter vector par given the training covariates and outcome.
func (m Model) LogPost(par []float64, cov Covariates, out []int) float64 {
	var lpr float64
	{
		for i, p := range par {
			if m.Var == Hierarchical && i == idxTau {
				// half normal prior on tau plus the log Jacobian of exp
				lpr += math.Ln2 + distuv.UnitNormal.LogProb(math.Exp(p)) + p
			} else {
				lpr += distuv.UnitNormal.LogProb(p)
			}
		}
	}

	var lli float64
	{
		coe := m.Coefficients(m.Constrain(par))
		for i := range out {
			eta := coe.Eta(cov, i)
			if out[i] == 1 {
				lli -= log1pexp(-eta)
			} else {
				lli -= log1pexp(eta)
			}
		}
	}

	return lpr + lli
}

const (
	idxTau = 3
)

// log1pexp computes log(1+exp(x)) without overflowing for large x.
func log1pexp(x float64) float64 {
	if x > 0 {
		return x + math.Log1p(math.Exp(-x))
	}

	return math.Log1p(math.Exp(x))
}

func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}

	e := math.Exp(x)

	return e / (1 + e)
}
