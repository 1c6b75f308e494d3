package model

import "github.com/xh3b4sd/titanic/diagnostic"

// Problem is what an engine is asked to sample, the model together with the
// training partition and the seed controlling the sampler.
type Problem struct {
	Mod Model
	Cov Covariates
	Out []int
	See int64
}

// Posterior is the output of an engine. Coe holds the ordered posterior draws,
// chain after chain, and Dia the convergence diagnostics of the run.
type Posterior struct {
	Coe []Coefficients
	Dia diagnostic.Report
}
