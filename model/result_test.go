package model

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testResult() *Result {
	return &Result{
		Sam: []Sample{
			{Pre: []int{1, 0, 1}},
			{Pre: []int{1, 0, 0}},
			{Pre: []int{0, 0, 1}},
			{Pre: []int{1, 1, 0}},
		},
	}
}

func Test_Model_Result_Predict(t *testing.T) {
	res := testResult()

	if res.Rows() != 3 {
		t.Fatalf("expected 3 got %d", res.Rows())
	}
	if dif := cmp.Diff([]int{1, 0, 1}, res.Predict()); dif != "" {
		t.Fatalf("\n\n%s\n", dif)
	}
	if dif := cmp.Diff([]float64{0.75, 0.25, 0.5}, res.Prob()); dif != "" {
		t.Fatalf("\n\n%s\n", dif)
	}
}

func Test_Model_Result_Accuracy(t *testing.T) {
	res := testResult()

	acc, err := res.Accuracy([]int{1, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(acc-8.0/12.0) > 1e-12 {
		t.Fatalf("expected %f got %f", 8.0/12.0, acc)
	}

	_, err = res.Accuracy([]int{1, 0})
	if !IsData(err) {
		t.Fatalf("expected data error got %#v", err)
	}

	_, err = (&Result{}).Accuracy(nil)
	if !IsData(err) {
		t.Fatalf("expected data error got %#v", err)
	}
}

func Test_Model_Warning_String(t *testing.T) {
	w := Warning{Kin: "rhat", Par: "beta", Val: 1.2, Lim: 1.05}
	if w.String() != "rhat of beta is 1.2, limit 1.05" {
		t.Fatalf("unexpected %q", w.String())
	}

	w = Warning{Kin: "divergence", Val: 3, Lim: 0}
	if w.String() != "divergence 3 exceeds 0" {
		t.Fatalf("unexpected %q", w.String())
	}
}
