package cmdstan

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/xh3b4sd/titanic/model"
	"github.com/xh3b4sd/tracer"
	"go.uber.org/zap"
)

// Compiler turns the versioned Stan program of a variant into a model binary
// using the makefile of a CmdStan installation. Binaries are named after the
// variant and the program version, so a binary is compiled once per version
// and reused by every later call.
//
//     $ tree /var/lib/titanic/
//     /var/lib/titanic/
//     ├── titanic_class_1_2_0
//     └── titanic_class_1_2_0.stan
//
type Compiler struct {
	Deb bool
	// Dir is the required directory the program and the binary are written to.
	Dir string
	// Hom is the required CmdStan home directory, the one containing the
	// makefile.
	Hom string
	Log *zap.Logger
	// Tem is the optional Stan program template, see model.Program.
	Tem string
	Var model.Variant
}

// Compile returns the path of the model binary, compiling it first if it
// does not exist yet.
func (c *Compiler) Compile() (string, error) {
	var err error

	{
		c = c.configs()
	}

	var bin string
	{
		bin, err = filepath.Abs(filepath.Join(c.Dir, c.name()))
		if err != nil {
			return "", tracer.Mask(err)
		}
	}

	if exists(bin) {
		c.Log.Debug("model binary exists", zap.String("binary", bin))
		return bin, nil
	}

	var byt []byte
	{
		byt, err = (&model.Program{Var: c.Var, Tem: c.Tem}).Execute()
		if err != nil {
			return "", tracer.Mask(err)
		}
	}

	{
		err := os.MkdirAll(c.Dir, 0755)
		if err != nil {
			return "", tracer.Mask(err)
		}
	}

	{
		err = os.WriteFile(bin+".stan", byt, 0644)
		if err != nil {
			return "", tracer.Mask(err)
		}
	}

	var out bytes.Buffer
	var cmd *exec.Cmd
	{
		cmd = exec.Command("make", "-C", c.Hom, bin)
	}

	if c.Deb {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &out
		cmd.Stderr = &out
	}

	c.Log.Info("compiling model binary", zap.String("binary", bin), zap.String("cmdstan", c.Hom))

	{
		err := cmd.Start()
		if err != nil {
			return "", tracer.Maskf(executionError, "%s", err.Error())
		}
	}

	{
		err := cmd.Wait()
		if err != nil {
			return "", tracer.Maskf(executionError, "%s: %s", err.Error(), tail(out.String()))
		}
	}

	return bin, nil
}

// configs returns a copy of c with defaults applied.
func (c *Compiler) configs() *Compiler {
	cop := *c

	if cop.Dir == "" {
		panic("Compiler.Dir must not be empty")
	}

	if cop.Hom == "" {
		panic("Compiler.Hom must not be empty")
	}

	if cop.Log == nil {
		cop.Log = zap.NewNop()
	}

	return &cop
}

func (c *Compiler) name() string {
	return fmt.Sprintf("titanic_%s_%s", c.Var, strings.ReplaceAll(model.Version, ".", "_"))
}
