package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	err := newRoot().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	var c *cobra.Command
	{
		c = &cobra.Command{
			Use:   "titanic",
			Short: "Fit Bayesian survival models to the Titanic passenger manifest.",
			Long: `Fit Bayesian logistic regression variants to the Titanic passenger manifest.

Missing ages are imputed deterministically, every configured variant is scored
by its posterior predictive accuracy on a held out validation partition and the
best variant predicts the test table.`,
			SilenceUsage: true,
		}
	}

	{
		c.AddCommand(newRun())
		c.AddCommand(newStan())
	}

	return c
}
