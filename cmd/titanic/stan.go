package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xh3b4sd/titanic/model"
	"github.com/xh3b4sd/tracer"
)

type stanFlag struct {
	// Out is the optional path the program is written to, stdout without it.
	Out string
	Var string
}

type stan struct {
	fla *stanFlag
}

func newStan() *cobra.Command {
	s := &stan{fla: &stanFlag{}}

	var c *cobra.Command
	{
		c = &cobra.Command{
			Use:   "stan",
			Short: "Print the versioned Stan program of a variant.",
			Long: `Print the versioned Stan program of a variant, the program the cmdstan
engine compiles.

    titanic stan --variant hierarchical --output titanic_hierarchical.stan`,
			RunE: s.runE,
		}
	}

	{
		c.Flags().StringVar(&s.fla.Out, "output", "", "Path the program is written to, stdout if empty.")
		c.Flags().StringVar(&s.fla.Var, "variant", model.Gender.String(), "Model variant, one of gender, class or hierarchical.")
	}

	return c
}

func (s *stan) runE(cmd *cobra.Command, args []string) error {
	v, err := model.ParseVariant(s.fla.Var)
	if err != nil {
		return tracer.Maskf(invalidFlagError, "--variant: %s", err.Error())
	}

	byt, err := (&model.Program{Var: v}).Execute()
	if err != nil {
		return tracer.Mask(err)
	}

	if s.fla.Out == "" {
		_, err = cmd.OutOrStdout().Write(byt)
		if err != nil {
			return tracer.Mask(err)
		}

		return nil
	}

	err = os.WriteFile(s.fla.Out, byt, 0644)
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}
