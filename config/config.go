// Package config reads the YAML configuration of the workflow. Every field is
// optional, missing fields keep the values of Default.
//
//     seed: 42
//     split: 0.2
//     imputer:
//       policy: group
//       statistic: mean
//     engine:
//       kind: cmdstan
//       chains: 4
//       warmup: 1000
//       draws: 1000
//       cmdstan:
//         home: /opt/cmdstan
//         dir: /var/lib/titanic
//     diagnostics:
//       max_rhat: 1.05
//       min_ess: 100
//     variants:
//       - gender
//       - class
//       - hierarchical
//
package config

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/xh3b4sd/titanic/imputer"
	"github.com/xh3b4sd/titanic/model"
	"github.com/xh3b4sd/tracer"
	"gopkg.in/yaml.v3"
)

const (
	KindCmdstan = "cmdstan"
	KindNative  = "native"
)

type Config struct {
	Dia Diagnostics `yaml:"diagnostics"`
	Eng Engine      `yaml:"engine"`
	Imp Imputer     `yaml:"imputer"`
	// See seeds the split, the engines and the posterior predictive draws.
	See int64 `yaml:"seed"`
	// Spl is the share of the training table held out for validation.
	Spl float64  `yaml:"split"`
	Var []string `yaml:"variants"`
}

type Diagnostics struct {
	Ess float64 `yaml:"min_ess"`
	Rha float64 `yaml:"max_rhat"`
}

type Engine struct {
	Cha int     `yaml:"chains"`
	Cmd Cmdstan `yaml:"cmdstan"`
	Dra int     `yaml:"draws"`
	Kin string  `yaml:"kind"`
	War int     `yaml:"warmup"`
}

type Cmdstan struct {
	// Dir is where versioned programs and compiled binaries are kept.
	Dir string `yaml:"dir"`
	// Hom is the CmdStan installation used to compile programs.
	Hom string `yaml:"home"`
}

type Imputer struct {
	Def *float64 `yaml:"default"`
	Pol string   `yaml:"policy"`
	Sta string   `yaml:"statistic"`
}

func Default() Config {
	var var_ []string
	for _, v := range model.Variants() {
		var_ = append(var_, v.String())
	}

	return Config{
		Dia: Diagnostics{
			Ess: 100,
			Rha: 1.05,
		},
		Eng: Engine{
			Cha: 4,
			Dra: 1000,
			Kin: KindNative,
			War: 1000,
		},
		Imp: Imputer{
			Pol: imputer.Group.String(),
			Sta: imputer.Mean.String(),
		},
		See: 42,
		Spl: 0.2,
		Var: var_,
	}
}

// Load reads the configuration file at pat on top of Default and verifies the
// result. Unknown keys are rejected.
func Load(pat string) (Config, error) {
	byt, err := os.ReadFile(pat)
	if err != nil {
		return Config{}, tracer.Mask(err)
	}

	cfg, err := Parse(byt)
	if err != nil {
		return Config{}, tracer.Mask(err)
	}

	return cfg, nil
}

func Parse(byt []byte) (Config, error) {
	cfg := Default()

	{
		dec := yaml.NewDecoder(bytes.NewReader(byt))
		dec.KnownFields(true)

		// An empty document keeps the defaults.
		err := dec.Decode(&cfg)
		if err != nil && err != io.EOF {
			return Config{}, tracer.Maskf(invalidConfigError, "%s", err.Error())
		}
	}

	{
		err := cfg.Verify()
		if err != nil {
			return Config{}, tracer.Mask(err)
		}
	}

	return cfg, nil
}

func (c Config) Verify() error {
	if math.IsNaN(c.Spl) || c.Spl < 0 || c.Spl >= 1 {
		return tracer.Maskf(invalidConfigError, "split must be within [0, 1), got %f", c.Spl)
	}

	{
		_, err := imputer.ParsePolicy(c.Imp.Pol)
		if err != nil {
			return tracer.Maskf(invalidConfigError, "imputer.policy: %s", err.Error())
		}
	}

	{
		_, err := imputer.ParseStatistic(c.Imp.Sta)
		if err != nil {
			return tracer.Maskf(invalidConfigError, "imputer.statistic: %s", err.Error())
		}
	}

	if c.Imp.Def != nil {
		d := *c.Imp.Def
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return tracer.Maskf(invalidConfigError, "imputer.default must be a finite non negative age, got %f", d)
		}
	}

	if c.Eng.Kin != KindNative && c.Eng.Kin != KindCmdstan {
		return tracer.Maskf(invalidConfigError, "engine.kind must be %s or %s, got %q", KindNative, KindCmdstan, c.Eng.Kin)
	}

	if c.Eng.Cha <= 0 || c.Eng.Dra <= 0 || c.Eng.War <= 0 {
		return tracer.Maskf(invalidConfigError, "engine.chains, engine.draws and engine.warmup must be positive")
	}

	if c.Eng.Kin == KindCmdstan && (c.Eng.Cmd.Hom == "" || c.Eng.Cmd.Dir == "") {
		return tracer.Maskf(invalidConfigError, "engine.cmdstan.home and engine.cmdstan.dir must not be empty")
	}

	if math.IsNaN(c.Dia.Rha) || c.Dia.Rha < 1 {
		return tracer.Maskf(invalidConfigError, "diagnostics.max_rhat must be at least 1, got %f", c.Dia.Rha)
	}

	if math.IsNaN(c.Dia.Ess) || c.Dia.Ess < 0 {
		return tracer.Maskf(invalidConfigError, "diagnostics.min_ess must not be negative, got %f", c.Dia.Ess)
	}

	{
		_, err := c.Variants()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}

// Variants returns the configured model variants in configuration order.
func (c Config) Variants() ([]model.Variant, error) {
	if len(c.Var) == 0 {
		return nil, tracer.Maskf(invalidConfigError, "variants must not be empty")
	}

	var var_ []model.Variant
	see := map[model.Variant]bool{}
	for _, s := range c.Var {
		v, err := model.ParseVariant(s)
		if err != nil {
			return nil, tracer.Maskf(invalidConfigError, "variants: %s", err.Error())
		}

		if see[v] {
			return nil, tracer.Maskf(invalidConfigError, "variants: %s listed twice", s)
		}
		see[v] = true

		var_ = append(var_, v)
	}

	return var_, nil
}

// Imputer returns the imputer described by the configuration. The
// configuration must have been verified.
func (c Config) Imputer() *imputer.Imputer {
	pol, err := imputer.ParsePolicy(c.Imp.Pol)
	if err != nil {
		panic(err)
	}

	sta, err := imputer.ParseStatistic(c.Imp.Sta)
	if err != nil {
		panic(err)
	}

	return &imputer.Imputer{
		Def: c.Imp.Def,
		Pol: pol,
		Sta: sta,
	}
}
