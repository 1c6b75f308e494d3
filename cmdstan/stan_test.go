package cmdstan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xh3b4sd/titanic"
	"github.com/xh3b4sd/titanic/model"
)

var _ titanic.Engine = &Stan{}

const testOutput = `# model = titanic_gender
# method = sample (Default)
lp__,accept_stat__,stepsize__,treedepth__,n_leapfrog__,divergent__,energy__,alpha.1,alpha.2,beta
# Adaptation terminated
# Step size = 0.8
-1.5,0.9,0.8,2,3,0,2.1,0.5,-0.5,-0.01
-1.6,0.8,0.8,2,3,1,2.2,0.6,-0.4,-0.02
-1.4,0.95,0.8,2,3,0,2.0,0.4,-0.6,-0.015
-1.5,0.85,0.8,2,3,0,2.1,0.55,-0.45,-0.012

# Elapsed Time: 0.01 seconds (Warm-up)
`

// testBinary writes a shell script behaving like a CmdStan model binary. It
// checks that the data file exists and writes testOutput for every chain
// using the CmdStan file naming.
func testBinary(t *testing.T, cod int) string {
	if runtime.GOOS == "windows" {
		t.Skip("shell script model binary requires a unix shell")
	}

	scr := `#!/bin/sh
out=""
dat=""
cha=1
prv=""
for a in "$@"; do
  case "$a" in
    num_chains=*) cha="${a#num_chains=}" ;;
  esac
  if [ "$prv" = "output" ]; then out="${a#file=}"; fi
  if [ "$prv" = "data" ]; then dat="${a#file=}"; fi
  prv="$a"
done
if [ ! -f "$dat" ]; then echo "data file missing" >&2; exit 2; fi
if [ "` + fmt.Sprint(cod) + `" -ne 0 ]; then echo "sampling failed" >&2; exit ` + fmt.Sprint(cod) + `; fi
i=1
while [ "$i" -le "$cha" ]; do
  if [ "$cha" -eq 1 ]; then f="$out"; else f="${out%.csv}_${i}.csv"; fi
  cat > "$f" <<'CSV'
` + testOutput + `CSV
  i=$((i+1))
done
`

	bin := filepath.Join(t.TempDir(), "titanic_gender")

	err := os.WriteFile(bin, []byte(scr), 0755)
	if err != nil {
		t.Fatal(err)
	}

	return bin
}

func testProblem() model.Problem {
	return model.Problem{
		Mod: model.Model{Var: model.Gender},
		Cov: model.Covariates{
			Age: []float64{22, 35},
			Sex: []int{0, 1},
			Cla: []int{0, 2},
		},
		Out: []int{1, 0},
		See: 42,
	}
}

func Test_Stan_Sample(t *testing.T) {
	testCases := []struct {
		cha int
	}{
		// Case 000
		{
			cha: 1,
		},
		// Case 001
		{
			cha: 3,
		},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%03d", i), func(t *testing.T) {
			tmp := t.TempDir()

			s := &Stan{Bin: testBinary(t, 0), Cha: tc.cha, Dra: 4, War: 4, Tmp: tmp}

			pos, err := s.Sample(testProblem())
			if err != nil {
				t.Fatal(err)
			}

			if len(pos.Coe) != 4*tc.cha {
				t.Fatalf("expected %d draws got %d", 4*tc.cha, len(pos.Coe))
			}

			exp := model.Coefficients{Alp: []float64{0.5, -0.5}, Bet: -0.01}
			if dif := cmp.Diff(exp, pos.Coe[0]); dif != "" {
				t.Fatalf("\n\n%s\n", dif)
			}

			if pos.Dia.Div != tc.cha {
				t.Fatalf("expected %d divergences got %d", tc.cha, pos.Dia.Div)
			}
			if acc := (0.9 + 0.8 + 0.95 + 0.85) / 4; pos.Dia.Acc < acc-1e-9 || pos.Dia.Acc > acc+1e-9 {
				t.Fatalf("expected acceptance %f got %f", acc, pos.Dia.Acc)
			}
			if dif := cmp.Diff(testProblem().Mod.Names(), pos.Dia.Nam); dif != "" {
				t.Fatalf("\n\n%s\n", dif)
			}

			ent, err := os.ReadDir(tmp)
			if err != nil {
				t.Fatal(err)
			}
			if len(ent) != 0 {
				t.Fatalf("expected run directory to be removed, found %d entries", len(ent))
			}
		})
	}
}

func Test_Stan_Sample_Failure(t *testing.T) {
	s := &Stan{Bin: testBinary(t, 3), Cha: 2, Dra: 4, War: 4, Tmp: t.TempDir()}

	_, err := s.Sample(testProblem())
	if !IsExecution(err) {
		t.Fatalf("expected execution error got %#v", err)
	}
	if !strings.Contains(err.Error(), "sampling failed") {
		t.Fatalf("expected child process output in error got %q", err.Error())
	}
}

func Test_Stan_Sample_Missing(t *testing.T) {
	s := &Stan{Bin: filepath.Join(t.TempDir(), "missing"), Tmp: t.TempDir()}

	_, err := s.Sample(testProblem())
	if !IsExecution(err) {
		t.Fatalf("expected execution error got %#v", err)
	}
}

func Test_Stan_Sample_WrongVariant(t *testing.T) {
	s := &Stan{Bin: testBinary(t, 0), Cha: 1, Dra: 4, War: 4, Tmp: t.TempDir()}

	pro := testProblem()
	pro.Mod = model.Model{Var: model.Class}

	_, err := s.Sample(pro)
	if !IsInvalidOutput(err) {
		t.Fatalf("expected invalid output error got %#v", err)
	}
}

func Test_Stan_args(t *testing.T) {
	s := (&Stan{Bin: "bin", Cha: 2, Dra: 500, War: 250}).configs()

	exp := []string{
		"sample",
		"num_samples=500",
		"num_warmup=250",
		"num_chains=2",
		"data",
		"file=" + filepath.Join("run", "data.json"),
		"output",
		"file=" + filepath.Join("run", "output.csv"),
		"random",
		"seed=42",
	}

	if dif := cmp.Diff(exp, s.args("run", 42)); dif != "" {
		t.Fatalf("\n\n%s\n", dif)
	}
}

func Test_Stan_data(t *testing.T) {
	testCases := []struct {
		var_ model.Variant
		exp  string
	}{
		// Case 000
		{
			var_: model.Gender,
			exp:  `{"N":2,"age":[22,35],"sex":[1,2],"survived":[1,0]}`,
		},
		// Case 001
		{
			var_: model.Hierarchical,
			exp:  `{"N":2,"age":[22,35],"cla":[1,3],"sex":[1,2],"survived":[1,0]}`,
		},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%03d", i), func(t *testing.T) {
			pro := testProblem()
			pro.Mod = model.Model{Var: tc.var_}

			byt, err := json.Marshal((&Stan{Bin: "bin"}).data(pro))
			if err != nil {
				t.Fatal(err)
			}

			if dif := cmp.Diff(tc.exp, string(byt)); dif != "" {
				t.Fatalf("\n\n%s\n", dif)
			}
		})
	}
}
