package main

import (
	"github.com/spf13/cobra"
	"github.com/xh3b4sd/titanic/config"
	"github.com/xh3b4sd/titanic/loader"
	"github.com/xh3b4sd/titanic/passenger"
	"github.com/xh3b4sd/tracer"
	"go.uber.org/zap"
)

type runFlag struct {
	// Con is the optional path of the YAML configuration.
	Con string
	// Out is the path the submission is written to.
	Out string
	// Tes is the path of the held out test table.
	Tes string
	// Tra is the path of the training table.
	Tra string
	Ver bool
}

func (f *runFlag) Verify() error {
	if f.Tra == "" {
		return tracer.Maskf(invalidFlagError, "--train must not be empty")
	}

	if (f.Tes == "") != (f.Out == "") {
		return tracer.Maskf(invalidFlagError, "--test and --output must be given together")
	}

	return nil
}

type run struct {
	fla *runFlag
}

func newRun() *cobra.Command {
	r := &run{fla: &runFlag{}}

	var c *cobra.Command
	{
		c = &cobra.Command{
			Use:   "run",
			Short: "Score every configured variant and predict the test table.",
			Long: `Score every configured variant and predict the test table.

    titanic run --train train.csv
    titanic run --config titanic.yaml --train train.csv --test test.csv --output submission.csv

Without --test only the validation accuracy of every variant is reported.`,
			RunE: r.runE,
		}
	}

	{
		c.Flags().StringVar(&r.fla.Con, "config", "", "Path of the YAML configuration, defaults apply without it.")
		c.Flags().StringVar(&r.fla.Out, "output", "", "Path the submission CSV is written to.")
		c.Flags().StringVar(&r.fla.Tes, "test", "", "Path of the test table, the manifest without the Survived column.")
		c.Flags().StringVar(&r.fla.Tra, "train", "", "Path of the training table.")
		c.Flags().BoolVar(&r.fla.Ver, "verbose", false, "Log at debug level.")
	}

	return c
}

func (r *run) runE(cmd *cobra.Command, args []string) error {
	var err error

	{
		err = r.fla.Verify()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var log *zap.Logger
	{
		log, err = logger(r.fla.Ver)
		if err != nil {
			return tracer.Mask(err)
		}
		defer log.Sync() // nolint:errcheck
	}

	var cfg config.Config
	if r.fla.Con == "" {
		cfg = config.Default()
	} else {
		cfg, err = config.Load(r.fla.Con)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var tra []passenger.Record
	var tes []passenger.Record
	{
		tra, err = loader.ReadFile(r.fla.Tra)
		if err != nil {
			return tracer.Mask(err)
		}

		if r.fla.Tes != "" {
			tes, err = loader.ReadFile(r.fla.Tes)
			if err != nil {
				return tracer.Mask(err)
			}
		}
	}

	log.Info("manifest loaded", zap.Int("train", len(tra)), zap.Int("test", len(tes)))

	{
		imp := cfg.Imputer()

		// The test table is imputed from the statistics of the training table.
		sta := imp.Stats(tra)

		tra, err = imp.Impute(tra)
		if err != nil {
			return tracer.Mask(err)
		}

		if r.fla.Tes != "" {
			tes, err = imp.ImputeWith(tes, sta)
			if err != nil {
				return tracer.Mask(err)
			}
		}
	}

	wor := &workflow{cfg: cfg, log: log}

	best, err := wor.Score(tra)
	if err != nil {
		return tracer.Mask(err)
	}

	if r.fla.Tes == "" {
		return nil
	}

	sub, err := wor.Predict(best, tra, tes)
	if err != nil {
		return tracer.Mask(err)
	}

	{
		err = loader.WriteFile(r.fla.Out, sub)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	log.Info("submission written", zap.String("path", r.fla.Out), zap.Int("rows", len(sub)), zap.String("variant", best.String()))

	return nil
}
