package main

import (
	"github.com/xh3b4sd/titanic"
	"github.com/xh3b4sd/titanic/cmdstan"
	"github.com/xh3b4sd/titanic/config"
	"github.com/xh3b4sd/titanic/loader"
	"github.com/xh3b4sd/titanic/model"
	"github.com/xh3b4sd/titanic/passenger"
	"github.com/xh3b4sd/titanic/runner"
	"github.com/xh3b4sd/titanic/sampler"
	"github.com/xh3b4sd/tracer"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// workflow fits the configured variants to imputed records. The configuration
// must have been verified.
type workflow struct {
	cfg config.Config
	log *zap.Logger
}

// Score fits every configured variant on the training partition of tra and
// returns the variant with the best posterior predictive accuracy on the
// validation partition. Ties keep the variant configured first.
func (w *workflow) Score(tra []passenger.Record) (model.Variant, error) {
	var err error

	var var_ []model.Variant
	{
		var_, err = w.cfg.Variants()
		if err != nil {
			return 0, tracer.Mask(err)
		}
	}

	var fit passenger.Dataset
	var val passenger.Dataset
	{
		fit, val, err = passenger.New(tra).Split(w.cfg.Spl, w.cfg.See)
		if err != nil {
			return 0, tracer.Mask(err)
		}
	}

	if val.Len() == 0 {
		w.log.Warn("validation partition empty, keeping first variant", zap.String("variant", var_[0].String()))
		return var_[0], nil
	}

	var cov model.Covariates
	var out []int
	{
		cov, out, err = model.Encode(fit.Records())
		if err != nil {
			return 0, tracer.Mask(err)
		}
	}

	var vco model.Covariates
	var vou []int
	{
		vco, vou, err = model.Encode(val.Records())
		if err != nil {
			return 0, tracer.Mask(err)
		}
	}

	acc := make([]float64, len(var_))
	{
		var g errgroup.Group

		for i, v := range var_ {
			i, v := i, v

			g.Go(func() error {
				res, err := w.fitPredict(v, cov, out, vco)
				if err != nil {
					return tracer.Mask(err)
				}

				acc[i], err = res.Accuracy(vou)
				if err != nil {
					return tracer.Mask(err)
				}

				w.log.Info("variant scored",
					zap.String("variant", v.String()),
					zap.Float64("accuracy", acc[i]),
					zap.Int("warnings", len(res.War)),
				)

				return nil
			})
		}

		err = g.Wait()
		if err != nil {
			return 0, tracer.Mask(err)
		}
	}

	var bes int
	for i := range acc {
		if acc[i] > acc[bes] {
			bes = i
		}
	}

	return var_[bes], nil
}

// Predict refits v on all of tra and returns the rounded median posterior
// predictive outcome of every record in tes.
func (w *workflow) Predict(v model.Variant, tra []passenger.Record, tes []passenger.Record) ([]loader.Submission, error) {
	cov, out, err := model.Encode(tra)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	tco, _, err := model.Encode(tes)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	res, err := w.fitPredict(v, cov, out, tco)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	var sub []loader.Submission
	for i, p := range res.Predict() {
		sub = append(sub, loader.Submission{Id: tes[i].Id, Sur: p})
	}

	return sub, nil
}

func (w *workflow) fitPredict(v model.Variant, tra model.Covariates, out []int, tes model.Covariates) (*model.Result, error) {
	eng, err := w.engine(v)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	run := &runner.Runner{
		Eng: eng,
		Ess: w.cfg.Dia.Ess,
		Log: w.log.With(zap.String("variant", v.String())),
		Mod: model.Model{Var: v},
		Rha: w.cfg.Dia.Rha,
	}

	res, err := run.FitPredict(tra, out, tes, w.cfg.See)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return res, nil
}

func (w *workflow) engine(v model.Variant) (titanic.Engine, error) {
	eng := w.cfg.Eng

	if eng.Kin == config.KindNative {
		return &sampler.Sampler{Cha: eng.Cha, Dra: eng.Dra, Log: w.log, War: eng.War}, nil
	}

	com := &cmdstan.Compiler{
		Dir: eng.Cmd.Dir,
		Hom: eng.Cmd.Hom,
		Log: w.log,
		Var: v,
	}

	bin, err := com.Compile()
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return &cmdstan.Stan{Bin: bin, Cha: eng.Cha, Dra: eng.Dra, Log: w.log, War: eng.War}, nil
}
