package model

import (
	"fmt"
	"strings"
	"testing"
)

func Test_Model_Program_Execute(t *testing.T) {
	testCases := []struct {
		pro *Program
		con []string
		not []string
	}{
		// Case 000
		{
			pro: &Program{Var: Gender},
			con: []string{
				"// version: " + Version,
				"vector[2] alpha;",
				"eta[n] = alpha[sex[n]] + beta * age[n];",
				"survived ~ bernoulli_logit(eta);",
			},
			not: []string{"beta_class", "tau", "cla"},
		},
		// Case 001
		{
			pro: &Program{Var: Class},
			con: []string{
				"array[N] int<lower=1, upper=3> cla;",
				"vector[3 - 1] beta_class;",
				"eta[n] += beta_class[cla[n] - 1];",
			},
			not: []string{"tau"},
		},
		// Case 002
		{
			pro: &Program{Var: Hierarchical},
			con: []string{
				"real<lower=0> tau;",
				"matrix[2, 3] z;",
				"eta[n] += tau * z[sex[n], cla[n]];",
			},
			not: []string{"beta_class"},
		},
		// Case 003
		{
			pro: &Program{Var: Class, Tem: "{{ .Var }}/{{ .Ver }}"},
			con: []string{"class/" + Version},
		},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%03d", i), func(t *testing.T) {
			byt, err := tc.pro.Execute()
			if err != nil {
				t.Fatal(err)
			}

			str := string(byt)
			for _, c := range tc.con {
				if !strings.Contains(str, c) {
					t.Fatalf("expected program to contain %q\n\n%s", c, str)
				}
			}
			for _, n := range tc.not {
				if strings.Contains(str, n) {
					t.Fatalf("expected program not to contain %q\n\n%s", n, str)
				}
			}
		})
	}
}
