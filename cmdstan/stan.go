package cmdstan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/xh3b4sd/titanic/diagnostic"
	"github.com/xh3b4sd/titanic/model"
	"github.com/xh3b4sd/tracer"
	"go.uber.org/zap"
)

// Stan is the engine executing a model binary compiled by CmdStan from the
// versioned Stan program of a variant. Every call of Sample creates its own
// run directory, writes the training data as JSON, runs the binary as child
// process and reads back the Stan CSV of every chain.
//
//     $ tree /tmp/titanic-cmdstan-3712291923/
//     /tmp/titanic-cmdstan-3712291923/
//     ├── data.json
//     ├── output_1.csv
//     ├── output_2.csv
//     ├── output_3.csv
//     └── output_4.csv
//
// The run directory is removed once the output is read.
type Stan struct {
	// Bin is the required path of the model binary, as returned by
	// Compiler.Compile. It must have been compiled from the program of the
	// variant being sampled.
	Bin string
	// Cha is the number of chains, defaulting to 4.
	Cha int
	// Deb forwards the output of the child process to stdout and stderr.
	Deb bool
	// Dra is the number of post warmup draws per chain, defaulting to 1000.
	Dra int
	Log *zap.Logger
	// Tmp is the optional directory run directories are created in, defaulting
	// to the system's temporary directory.
	Tmp string
	// War is the number of warmup iterations per chain, defaulting to 1000.
	War int
}

func (s *Stan) Sample(pro model.Problem) (*model.Posterior, error) {
	var err error

	{
		s = s.configs()
	}

	var dir string
	{
		dir, err = os.MkdirTemp(s.Tmp, "titanic-cmdstan-*")
		if err != nil {
			return nil, tracer.Mask(err)
		}
		defer s.cleanup(dir)
	}

	{
		byt, err := json.Marshal(s.data(pro))
		if err != nil {
			return nil, tracer.Mask(err)
		}

		err = os.WriteFile(s.datfil(dir), byt, 0600)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var out bytes.Buffer
	var cmd *exec.Cmd
	{
		cmd = exec.Command(s.Bin, s.args(dir, pro.See)...)
	}

	if s.Deb {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &out
		cmd.Stderr = &out
	}

	{
		err := cmd.Start()
		if err != nil {
			return nil, tracer.Maskf(executionError, "%s", err.Error())
		}
	}

	s.Log.Debug("model binary started",
		zap.String("binary", s.Bin),
		zap.String("dir", dir),
		zap.Int("pid", cmd.Process.Pid),
	)

	{
		err := cmd.Wait()
		if err != nil {
			return nil, tracer.Maskf(executionError, "%s: %s", err.Error(), tail(out.String()))
		}
	}

	nam := pro.Mod.Names()

	var cha []chain
	for _, f := range s.outfil(dir) {
		c, err := s.chain(f, nam)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		cha = append(cha, c)
	}

	var pos model.Posterior
	{
		var dra [][][]float64
		var num int
		for _, c := range cha {
			dra = append(dra, c.dra)
			num += len(c.dra)
		}

		pos.Dia = diagnostic.Compute(nam, dra)

		for _, c := range cha {
			pos.Dia.Div += c.div
			pos.Dia.Acc += c.acc / float64(num)

			for _, par := range c.dra {
				pos.Coe = append(pos.Coe, pro.Mod.Coefficients(par))
			}
		}
	}

	s.Log.Debug("model binary finished",
		zap.String("binary", s.Bin),
		zap.Int("draws", len(pos.Coe)),
		zap.Int("divergences", pos.Dia.Div),
	)

	return &pos, nil
}

// args returns the CmdStan command line of a sampling run.
//
//     sample num_samples=1000 num_warmup=1000 num_chains=4 data file=... output file=... random seed=42
//
func (s *Stan) args(dir string, see int64) []string {
	return []string{
		"sample",
		fmt.Sprintf("num_samples=%d", s.Dra),
		fmt.Sprintf("num_warmup=%d", s.War),
		fmt.Sprintf("num_chains=%d", s.Cha),
		"data",
		"file=" + s.datfil(dir),
		"output",
		"file=" + filepath.Join(dir, "output.csv"),
		"random",
		fmt.Sprintf("seed=%d", uint32(see)),
	}
}

func (s *Stan) chain(fil string, nam []string) (chain, error) {
	if !exists(fil) {
		return chain{}, tracer.Maskf(invalidOutputError, "%s missing", filepath.Base(fil))
	}

	f, err := os.Open(fil)
	if err != nil {
		return chain{}, tracer.Mask(err)
	}
	defer f.Close()

	c, err := parse(f, nam)
	if err != nil {
		return chain{}, tracer.Mask(err)
	}

	return c, nil
}

func (s *Stan) cleanup(dir string) {
	err := os.RemoveAll(dir)
	if err != nil {
		s.Log.Warn("run directory not removed", zap.String("dir", dir), zap.Error(err))
	}
}

// configs returns a copy of s with defaults applied, leaving s untouched so
// that a single Stan can serve concurrent calls.
func (s *Stan) configs() *Stan {
	c := *s

	if c.Bin == "" {
		panic("Stan.Bin must not be empty")
	}

	if c.Cha == 0 {
		c.Cha = 4
	}

	if c.Dra == 0 {
		c.Dra = 1000
	}

	if c.Log == nil {
		c.Log = zap.NewNop()
	}

	if c.War == 0 {
		c.War = 1000
	}

	return &c
}

// data returns the data block of the Stan program. Indices are one based in
// Stan.
func (s *Stan) data(pro model.Problem) map[string]interface{} {
	n := pro.Cov.Len()

	age := make([]float64, n)
	sex := make([]int, n)
	sur := make([]int, n)
	for i := 0; i < n; i++ {
		age[i] = pro.Cov.Age[i]
		sex[i] = pro.Cov.Sex[i] + 1
		sur[i] = pro.Out[i]
	}

	dat := map[string]interface{}{
		"N":        n,
		"age":      age,
		"sex":      sex,
		"survived": sur,
	}

	if pro.Mod.Class() {
		cla := make([]int, n)
		for i := 0; i < n; i++ {
			cla[i] = pro.Cov.Cla[i] + 1
		}

		dat["cla"] = cla
	}

	return dat
}

func (s *Stan) datfil(dir string) string {
	return filepath.Join(dir, "data.json")
}

// outfil returns the CSV files CmdStan writes, a single output.csv for one
// chain and output_<chain>.csv for multiple chains.
func (s *Stan) outfil(dir string) []string {
	if s.Cha == 1 {
		return []string{filepath.Join(dir, "output.csv")}
	}

	var fil []string
	for c := 1; c <= s.Cha; c++ {
		fil = append(fil, filepath.Join(dir, fmt.Sprintf("output_%d.csv", c)))
	}

	return fil
}

// tail returns the last lines of a child process output for error messages.
func tail(out string) string {
	lin := strings.Split(strings.TrimSpace(out), "\n")
	if len(lin) > 5 {
		lin = lin[len(lin)-5:]
	}

	return strings.Join(lin, " | ")
}
