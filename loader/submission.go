package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/xh3b4sd/tracer"
)

// Submission is a single prediction row, the passenger identifier together
// with the predicted outcome in {0,1}.
type Submission struct {
	Id  int
	Sur int
}

func Write(w io.Writer, sub []Submission) error {
	wri := csv.NewWriter(w)

	{
		err := wri.Write([]string{colIde, colSur})
		if err != nil {
			return tracer.Mask(err)
		}
	}

	for _, s := range sub {
		err := wri.Write([]string{strconv.Itoa(s.Id), strconv.Itoa(s.Sur)})
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		wri.Flush()
	}

	{
		err := wri.Error()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}

func WriteFile(pat string, sub []Submission) error {
	fil, err := os.Create(pat)
	if err != nil {
		return tracer.Mask(err)
	}

	{
		err := Write(fil, sub)
		if err != nil {
			fil.Close()
			return tracer.Mask(err)
		}
	}

	{
		err := fil.Close()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}
