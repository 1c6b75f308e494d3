package sampler

import (
	"math"

	"github.com/xh3b4sd/titanic/diagnostic"
	"github.com/xh3b4sd/titanic/model"
	"github.com/xh3b4sd/tracer"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const (
	// tar is the acceptance rate the proposal scales adapt towards, optimal
	// for one dimensional Gaussian proposals.
	tar = 0.44
	// ini is the half width of the uniform interval initial points are drawn
	// from on the unconstrained scale.
	ini = 1.0
	// try is the number of initial points tried per chain before giving up.
	try = 100
)

// Sampler is the in process engine. It runs adaptive Metropolis within Gibbs
// chains, updating one coordinate at a time with a Gaussian proposal whose
// scale adapts towards an acceptance rate of 0.44 during warmup and stays
// fixed afterwards.
//
// Chain c draws from a source seeded with Problem.See+c. Chains run
// concurrently but never share state, and their draws are concatenated in
// chain order, so the same problem always yields the same posterior.
type Sampler struct {
	// Cha is the number of chains, defaulting to 4.
	Cha int
	// Dra is the number of post warmup draws per chain, defaulting to 1000.
	Dra int
	Log *zap.Logger
	// War is the number of warmup iterations per chain, defaulting to 1000.
	War int
}

func (s *Sampler) Sample(pro model.Problem) (*model.Posterior, error) {
	{
		s = s.configs()
	}

	cha := make([][][]float64, s.Cha)
	acc := make([]float64, s.Cha)
	{
		var grp errgroup.Group

		for c := 0; c < s.Cha; c++ {
			c := c
			grp.Go(func() error {
				dra, rat, err := s.chain(pro, uint64(pro.See)+uint64(c))
				if err != nil {
					return tracer.Mask(err)
				}

				cha[c] = dra
				acc[c] = rat

				s.Log.Debug("chain finished",
					zap.String("variant", pro.Mod.Var.String()),
					zap.Int("chain", c),
					zap.Float64("acceptance", rat),
				)

				return nil
			})
		}

		err := grp.Wait()
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var pos model.Posterior
	{
		pos.Dia = diagnostic.Compute(pro.Mod.Names(), cha)

		for _, a := range acc {
			pos.Dia.Acc += a / float64(len(acc))
		}

		for _, dra := range cha {
			for _, par := range dra {
				pos.Coe = append(pos.Coe, pro.Mod.Coefficients(par))
			}
		}
	}

	return &pos, nil
}

// chain runs a single chain and returns its constrained post warmup draws
// together with the post warmup acceptance rate.
func (s *Sampler) chain(pro model.Problem, see uint64) ([][]float64, float64, error) {
	rng := rand.New(rand.NewSource(see))

	lpo := func(par []float64) float64 {
		return pro.Mod.LogPost(par, pro.Cov, pro.Out)
	}

	dim := pro.Mod.Dim()

	var par []float64
	var cur float64
	{
		par = make([]float64, dim)

		for i := 0; ; i++ {
			if i == try {
				return nil, 0, tracer.Maskf(samplingError, "no finite log posterior after %d initial points", try)
			}

			for j := range par {
				par[j] = (2*rng.Float64() - 1) * ini
			}

			cur = lpo(par)
			if !math.IsNaN(cur) && !math.IsInf(cur, 0) {
				break
			}
		}
	}

	sca := make([]float64, dim)
	for j := range sca {
		sca[j] = 1
	}

	var dra [][]float64
	var hit int
	for it := 0; it < s.War+s.Dra; it++ {
		war := it < s.War

		for j := range par {
			old := par[j]
			par[j] = old + sca[j]*rng.NormFloat64()

			prp := lpo(par)

			a := 0.0
			if !math.IsNaN(prp) {
				a = math.Min(1, math.Exp(prp-cur))
			}

			if rng.Float64() < a {
				cur = prp
				if !war {
					hit++
				}
			} else {
				par[j] = old
			}

			if war {
				sca[j] *= math.Exp(math.Pow(float64(it+1), -0.6) * (a - tar))
			}
		}

		if !war {
			dra = append(dra, pro.Mod.Constrain(par))
		}
	}

	return dra, float64(hit) / float64(s.Dra*dim), nil
}

// configs returns a copy of s with defaults applied, leaving s untouched so
// that a single Sampler can serve concurrent calls.
func (s *Sampler) configs() *Sampler {
	c := *s

	if c.Cha < 0 || c.Dra < 0 || c.War < 0 {
		panic("Sampler.Cha, Sampler.Dra and Sampler.War must not be negative")
	}

	if c.Cha == 0 {
		c.Cha = 4
	}

	if c.Dra == 0 {
		c.Dra = 1000
	}

	if c.Log == nil {
		c.Log = zap.NewNop()
	}

	if c.War == 0 {
		c.War = 1000
	}

	return &c
}
