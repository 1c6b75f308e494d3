// Package diagnostic computes convergence statistics of MCMC output the way
// Stan reports them, split R-hat and effective sample size per parameter.
package diagnostic

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Report carries the convergence diagnostics of a posterior. Rha and Ess are
// aligned with Nam.
type Report struct {
	Nam []string
	Rha []float64
	Ess []float64
	// Div is the number of divergent transitions reported by the engine.
	// Engines without the concept report zero.
	Div int
	// Acc is the mean acceptance statistic over all post warmup iterations.
	Acc float64
}

// Compute builds the R-hat and ESS part of a report from chain output laid out
// as chain, draw, parameter. All chains must have the same number of draws.
func Compute(nam []string, cha [][][]float64) Report {
	rep := Report{
		Nam: nam,
		Rha: make([]float64, len(nam)),
		Ess: make([]float64, len(nam)),
	}

	for p := range nam {
		var spl [][]float64
		for _, c := range cha {
			col := make([]float64, len(c))
			for d := range c {
				col[d] = c[d][p]
			}

			h := len(col) / 2
			spl = append(spl, col[:h], col[len(col)-h:])
		}

		rep.Rha[p] = Rhat(spl)
		rep.Ess[p] = Ess(spl)
	}

	return rep
}

// Rhat returns the potential scale reduction factor of the given chains. The
// caller splits chains beforehand to get the split variant. Constant chains
// that agree with each other yield 1, constant chains that disagree yield
// +Inf.
func Rhat(cha [][]float64) float64 {
	m, n := len(cha), minLen(cha)
	if m < 2 || n < 2 {
		return math.NaN()
	}

	w, b := withinBetween(cha, n)
	if w == 0 {
		if b == 0 {
			return 1
		}
		return math.Inf(1)
	}

	vap := (float64(n-1)/float64(n))*w + b/float64(n)

	return math.Sqrt(vap / w)
}

// Ess returns the effective sample size of the given chains using the
// initial monotone positive sequence estimator of Geyer on the autocorrelation
// combined across chains.
func Ess(cha [][]float64) float64 {
	m, n := len(cha), minLen(cha)
	if m < 1 || n < 4 {
		return math.NaN()
	}

	w, b := withinBetween(cha, n)

	vap := (float64(n-1)/float64(n))*w
	if m > 1 {
		vap += b / float64(n)
	}
	if vap == 0 {
		return float64(m * n)
	}

	mea := make([]float64, m)
	for i, c := range cha {
		mea[i] = stat.Mean(c[:n], nil)
	}

	rho := func(lag int) float64 {
		var acv float64
		for i, c := range cha {
			var s float64
			for t := 0; t+lag < n; t++ {
				s += (c[t] - mea[i]) * (c[t+lag] - mea[i])
			}
			acv += s / float64(n)
		}
		acv /= float64(m)

		return 1 - (w*float64(n-1)/float64(n)-acv)/vap
	}

	var sum float64
	{
		pre := math.Inf(1)
		for t := 0; t+1 < n; t += 2 {
			p := rho(t) + rho(t+1)
			if p <= 0 {
				break
			}
			if p > pre {
				p = pre
			}
			sum += p
			pre = p
		}
	}

	// sum covers lag 0, whose autocorrelation is 1, hence tau = 2*sum - 1.
	tau := 2*sum - 1
	if tau <= 0 {
		tau = 1 / math.Log10(float64(m*n))
	}

	return float64(m*n) / tau
}

func minLen(cha [][]float64) int {
	if len(cha) == 0 {
		return 0
	}

	n := len(cha[0])
	for _, c := range cha[1:] {
		if len(c) < n {
			n = len(c)
		}
	}

	return n
}

// withinBetween returns the mean within chain variance and the between chain
// variance scaled by n, using the first n draws of every chain.
func withinBetween(cha [][]float64, n int) (float64, float64) {
	mea := make([]float64, len(cha))
	var w float64
	for i, c := range cha {
		var v float64
		mea[i], v = stat.MeanVariance(c[:n], nil)
		w += v
	}
	w /= float64(len(cha))

	var b float64
	if len(cha) > 1 {
		b = float64(n) * stat.Variance(mea, nil)
	}

	return w, b
}
