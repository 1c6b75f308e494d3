package model

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/stat/distuv"
)

func Test_Model_Names(t *testing.T) {
	testCases := []struct {
		mod Model
		nam []string
	}{
		// Case 000
		{
			mod: Model{Var: Gender},
			nam: []string{"alpha.1", "alpha.2", "beta"},
		},
		// Case 001
		{
			mod: Model{Var: Class},
			nam: []string{"alpha.1", "alpha.2", "beta", "beta_class.1", "beta_class.2"},
		},
		// Case 002
		{
			mod: Model{Var: Hierarchical},
			nam: []string{"alpha.1", "alpha.2", "beta", "tau", "z.1.1", "z.1.2", "z.1.3", "z.2.1", "z.2.2", "z.2.3"},
		},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%03d", i), func(t *testing.T) {
			if dif := cmp.Diff(tc.nam, tc.mod.Names()); dif != "" {
				t.Fatalf("\n\n%s\n", dif)
			}
			if tc.mod.Dim() != len(tc.nam) {
				t.Fatalf("expected %d got %d", len(tc.nam), tc.mod.Dim())
			}
		})
	}
}

func Test_Model_Coefficients_Eta(t *testing.T) {
	cov := Covariates{
		Age: []float64{10, 20, 30},
		Sex: []int{0, 1, 1},
		Cla: []int{0, 1, 2},
	}

	testCases := []struct {
		mod Model
		par []float64
		eta []float64
	}{
		// Case 000
		{
			mod: Model{Var: Gender},
			par: []float64{1, -1, 0.1},
			eta: []float64{2, 1, 2},
		},
		// Case 001
		{
			mod: Model{Var: Class},
			par: []float64{1, -1, 0.1, -0.5, -2},
			eta: []float64{2, 0.5, 0},
		},
		// Case 002
		{
			mod: Model{Var: Hierarchical},
			par: []float64{1, -1, 0.1, 2, 1, 0, 0, 0, 0.5, -1},
			eta: []float64{4, 2, 0},
		},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%03d", i), func(t *testing.T) {
			coe := tc.mod.Coefficients(tc.par)

			var eta []float64
			for j := 0; j < cov.Len(); j++ {
				eta = append(eta, coe.Eta(cov, j))
			}

			if dif := cmp.Diff(tc.eta, eta, cmpApprox()); dif != "" {
				t.Fatalf("\n\n%s\n", dif)
			}
		})
	}
}

func Test_Model_LogPost(t *testing.T) {
	cov := Covariates{
		Age: []float64{22, 35},
		Sex: []int{0, 1},
		Cla: []int{0, 2},
	}
	out := []int{1, 0}

	par := []float64{0.5, -0.5, -0.01}

	var exp float64
	{
		for _, p := range par {
			exp += distuv.UnitNormal.LogProb(p)
		}

		exp += math.Log(Sigmoid(0.5 - 0.22))
		exp += math.Log(1 - Sigmoid(-0.5-0.35))
	}

	act := Model{Var: Gender}.LogPost(par, cov, out)
	if math.Abs(exp-act) > 1e-12 {
		t.Fatalf("expected %f got %f", exp, act)
	}
}

func Test_Model_LogPost_Finite(t *testing.T) {
	cov := Covariates{
		Age: []float64{80, 0.5},
		Sex: []int{0, 1},
		Cla: []int{2, 0},
	}
	out := []int{0, 1}

	for _, v := range Variants() {
		m := Model{Var: v}

		par := make([]float64, m.Dim())
		for i := range par {
			par[i] = 30
		}

		lpo := m.LogPost(par, cov, out)
		if math.IsNaN(lpo) || math.IsInf(lpo, 0) {
			t.Fatalf("expected finite log posterior for %s got %f", v, lpo)
		}
	}
}

func Test_Model_Constrain(t *testing.T) {
	m := Model{Var: Hierarchical}

	par := make([]float64, m.Dim())
	par[idxTau] = math.Log(2)

	con := m.Constrain(par)
	if math.Abs(con[idxTau]-2) > 1e-12 {
		t.Fatalf("expected 2 got %f", con[idxTau])
	}
	if par[idxTau] != math.Log(2) {
		t.Fatal("input must not be modified")
	}

	gen := Model{Var: Gender}.Constrain([]float64{1, 2, 3})
	if dif := cmp.Diff([]float64{1, 2, 3}, gen); dif != "" {
		t.Fatalf("\n\n%s\n", dif)
	}
}

func Test_Model_ParseVariant(t *testing.T) {
	for _, v := range Variants() {
		p, err := ParseVariant(v.String())
		if err != nil {
			t.Fatal(err)
		}
		if p != v {
			t.Fatalf("expected %s got %s", v, p)
		}
	}

	_, err := ParseVariant("forest")
	if !IsInvalidVariant(err) {
		t.Fatalf("expected invalid variant error got %#v", err)
	}
}

func cmpApprox() cmp.Option {
	return cmp.Comparer(func(a, b float64) bool {
		return math.Abs(a-b) < 1e-9
	})
}
