package titanic

import (
	"github.com/xh3b4sd/titanic/model"
	"github.com/xh3b4sd/titanic/passenger"
)

// Imputer describes how missing passenger ages get filled in before any model
// is fitted. Creating a new imputer might be as simple as shown below.
//
//     imp := &imputer.Imputer{}
//
type Imputer interface {
	// Impute returns a copy of the given records in which every missing age is
	// populated. Records with a known age come back unchanged and the input is
	// never modified. Impute must be deterministic, two calls on the same input
	// return the same output, and applying it to its own output is a no-op.
	Impute([]passenger.Record) ([]passenger.Record, error)
}

// Engine describes a probabilistic programming engine able to draw from the
// posterior of a model given a training partition. The in process engine is
// the default.
//
//     eng := &sampler.Sampler{}
//
// An engine executing a compiled Stan program can be used instead, given the
// path to the binary compiled once from the versioned program.
//
//     eng := &cmdstan.Stan{Bin: "/opt/titanic/class"}
//
type Engine interface {
	// Sample draws from the posterior of the given problem. Given an identical
	// problem, including the seed, an engine must return identical draws.
	// Convergence diagnostics are reported alongside the draws and never turn
	// into an error.
	Sample(model.Problem) (*model.Posterior, error)
}

// Runner describes the fit then predict workflow shared by all model
// variants.
//
//     run := &runner.Runner{Eng: eng, Mod: model.Model{Var: model.Class}}
//
type Runner interface {
	// FitPredict fits the model on the training covariates and outcome and
	// draws one posterior predictive outcome per held out row for every
	// posterior draw. The arguments are the training covariates, the training
	// outcome, the held out covariates and the seed.
	//
	//     res, err := run.FitPredict(tra, out, tes, 42)
	//
	// Misaligned or out of range inputs fail with a data error, a failing
	// engine fails with an engine error and poor convergence is reported as
	// warnings on the result.
	FitPredict(model.Covariates, []int, model.Covariates, int64) (*model.Result, error)
}
