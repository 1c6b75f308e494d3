package model

import (
	"bytes"
	"text/template"

	"github.com/xh3b4sd/tracer"
)

// Version is the version of the Stan programs rendered by Program. It is
// written into every rendered program and must change whenever the default
// template changes the model.
const Version = "1.2.0"

// Program renders the versioned Stan program of a model variant. External
// engines compile the rendered program once and receive the compiled binary.
//
//     byt, err := (&Program{Var: model.Class}).Execute()
//
type Program struct {
	Var Variant
	// Tem is the optional Stan program template. It defaults to the program
	// matching the Model of this package and is rendered with the variant, the
	// version and the number of sexes and classes.
	Tem string
}

func (p *Program) Execute() ([]byte, error) {
	{
		p.configs()
	}

	var buf bytes.Buffer
	{
		t, err := template.New("program").Parse(p.Tem)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		err = t.Execute(&buf, p.mapping())
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	return buf.Bytes(), nil
}

func (p *Program) configs() {
	if p.Var < Gender || p.Var > Hierarchical {
		panic("Program.Var must be a known variant")
	}

	if p.Tem == "" {
		p.Tem = deftem
	}
}

func (p *Program) mapping() map[string]interface{} {
	return map[string]interface{}{
		"Cla": Model{Var: p.Var}.Class(),
		"Nca": NumCla,
		"Sex": NumSex,
		"Var": p.Var.String(),
		"Ver": Version,
	}
}
