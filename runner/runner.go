package runner

import (
	"math"

	"github.com/xh3b4sd/titanic"
	"github.com/xh3b4sd/titanic/model"
	"github.com/xh3b4sd/tracer"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// pps offsets the seed of the posterior predictive source from the seeds
	// the engine derives for its chains.
	pps = 0x5851f42d4c957f2d
)

// Runner fits one model variant through an engine and predicts a held out
// partition. A Runner holds no state between calls.
type Runner struct {
	// Eng is the required engine drawing from the posterior.
	Eng titanic.Engine
	// Ess is the minimum effective sample size per parameter below which a
	// warning is reported, defaulting to 100.
	Ess float64
	Log *zap.Logger
	Mod model.Model
	// Rha is the maximum split R-hat per parameter above which a warning is
	// reported, defaulting to 1.05.
	Rha float64
}

func (r *Runner) FitPredict(tra model.Covariates, out []int, tes model.Covariates, see int64) (*model.Result, error) {
	{
		r = r.configs()
	}

	{
		err := r.verify(tra, out, tes)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var pos *model.Posterior
	{
		pro := model.Problem{
			Mod: r.Mod,
			Cov: tra,
			Out: out,
			See: see,
		}

		p, err := r.Eng.Sample(pro)
		if err != nil {
			return nil, tracer.Maskf(engineFailedError, "%s", err.Error())
		}

		if p == nil || len(p.Coe) == 0 {
			return nil, tracer.Maskf(engineFailedError, "engine returned no draws")
		}

		pos = p
	}

	res := &model.Result{
		Dia: pos.Dia,
		War: r.warnings(pos),
	}

	for _, w := range res.War {
		r.Log.Warn("convergence warning",
			zap.String("variant", r.Mod.Var.String()),
			zap.String("warning", w.String()),
		)
	}

	{
		src := rand.NewSource(uint64(see) ^ pps)

		res.Sam = make([]model.Sample, len(pos.Coe))
		for i, c := range pos.Coe {
			pre := make([]int, tes.Len())
			for j := range pre {
				ber := distuv.Bernoulli{P: c.Prob(tes, j), Src: src}
				pre[j] = int(ber.Rand())
			}

			res.Sam[i] = model.Sample{Coe: c, Pre: pre}
		}
	}

	r.Log.Info("model fitted",
		zap.String("variant", r.Mod.Var.String()),
		zap.Int("train", tra.Len()),
		zap.Int("test", tes.Len()),
		zap.Int("draws", len(res.Sam)),
		zap.Int("warnings", len(res.War)),
	)

	return res, nil
}

// configs returns a copy of r with defaults applied, leaving r untouched so
// that a single Runner can serve concurrent calls.
func (r *Runner) configs() *Runner {
	c := *r

	if c.Eng == nil {
		panic("Runner.Eng must not be empty")
	}

	if c.Ess == 0 {
		c.Ess = 100
	}

	if c.Log == nil {
		c.Log = zap.NewNop()
	}

	if c.Rha == 0 {
		c.Rha = 1.05
	}

	return &c
}

func (r *Runner) verify(tra model.Covariates, out []int, tes model.Covariates) error {
	{
		err := tra.Verify(r.Mod.Class())
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		err := model.VerifyOutcome(out, tra.Len())
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		err := tes.Verify(r.Mod.Class())
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}

func (r *Runner) warnings(pos *model.Posterior) []model.Warning {
	var war []model.Warning

	dia := pos.Dia
	for i, n := range dia.Nam {
		if i < len(dia.Rha) && (math.IsNaN(dia.Rha[i]) || dia.Rha[i] > r.Rha) {
			war = append(war, model.Warning{Kin: "rhat", Par: n, Val: dia.Rha[i], Lim: r.Rha})
		}

		if i < len(dia.Ess) && (math.IsNaN(dia.Ess[i]) || dia.Ess[i] < r.Ess) {
			war = append(war, model.Warning{Kin: "ess", Par: n, Val: dia.Ess[i], Lim: r.Ess})
		}
	}

	if dia.Div > 0 {
		war = append(war, model.Warning{Kin: "divergence", Val: float64(dia.Div), Lim: 0})
	}

	return war
}
