package cmdstan

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/xh3b4sd/tracer"
)

const (
	colAcc = "accept_stat__"
	colDiv = "divergent__"
)

// chain is the parsed Stan CSV output of a single chain.
type chain struct {
	// acc is the sum of the acceptance statistic over all draws.
	acc float64
	div int
	// dra holds the draws with parameters in the order requested from parse.
	dra [][]float64
}

// parse reads the Stan CSV written by a model binary. Comment lines starting
// with '#' carry configuration, adaptation and timing information and are
// skipped. The first remaining line is the header.
//
//     # model = titanic_gender
//     lp__,accept_stat__,stepsize__,treedepth__,n_leapfrog__,divergent__,energy__,alpha.1,alpha.2,beta
//     -1.5,0.9,0.8,2,3,0,2.1,0.5,-0.5,-0.01
//
// Parameters are picked by name, so their column order does not matter. This
// matters for matrices, which Stan writes in column major order.
func parse(r io.Reader, nam []string) (chain, error) {
	var err error

	rea := csv.NewReader(r)
	rea.Comment = '#'
	rea.FieldsPerRecord = -1

	var hea []string
	{
		hea, err = rea.Read()
		if err == io.EOF {
			return chain{}, tracer.Maskf(invalidOutputError, "no header")
		} else if err != nil {
			return chain{}, tracer.Mask(err)
		}
	}

	idx := map[string]int{}
	for i, h := range hea {
		idx[strings.TrimSpace(h)] = i
	}

	var col []int
	for _, n := range nam {
		i, ok := idx[n]
		if !ok {
			return chain{}, tracer.Maskf(invalidOutputError, "column %s missing", n)
		}

		col = append(col, i)
	}

	var cha chain
	for {
		row, err := rea.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return chain{}, tracer.Mask(err)
		}

		if len(row) != len(hea) {
			return chain{}, tracer.Maskf(invalidOutputError, "row has %d columns, header has %d", len(row), len(hea))
		}

		par := make([]float64, len(col))
		for j, i := range col {
			par[j], err = strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil {
				return chain{}, tracer.Maskf(invalidOutputError, "%s: %s", nam[j], err.Error())
			}
		}

		if i, ok := idx[colDiv]; ok {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil {
				return chain{}, tracer.Maskf(invalidOutputError, "%s: %s", colDiv, err.Error())
			}
			if v != 0 {
				cha.div++
			}
		}

		if i, ok := idx[colAcc]; ok {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil {
				return chain{}, tracer.Maskf(invalidOutputError, "%s: %s", colAcc, err.Error())
			}
			cha.acc += v
		}

		cha.dra = append(cha.dra, par)
	}

	if len(cha.dra) == 0 {
		return chain{}, tracer.Maskf(invalidOutputError, "no draws")
	}

	return cha, nil
}
