package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xh3b4sd/titanic/passenger"
	"github.com/xh3b4sd/tracer"
)

const (
	colAge = "Age"
	colCla = "Pclass"
	colIde = "PassengerId"
	colNam = "Name"
	colSex = "Sex"
	colSur = "Survived"
)

// Read parses a passenger manifest in the Kaggle CSV layout. Columns are
// resolved by header name and unknown columns are ignored. The Survived column
// is optional, which is how the training table and the held out test table are
// told apart.
//
//     PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked
//     1,0,3,"Braund, Mr. Owen Harris",male,22,1,0,A/5 21171,7.25,,S
//
// Empty age and outcome cells become nil.
func Read(r io.Reader) ([]passenger.Record, error) {
	var err error

	rea := csv.NewReader(r)
	rea.FieldsPerRecord = -1

	var hea map[string]int
	{
		row, err := rea.Read()
		if err != nil {
			return nil, tracer.Mask(err)
		}

		hea = map[string]int{}
		for i, c := range row {
			hea[strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))] = i
		}

		for _, c := range []string{colAge, colCla, colIde, colNam, colSex} {
			if _, ok := hea[c]; !ok {
				return nil, tracer.Maskf(invalidHeaderError, "column %s missing", c)
			}
		}
	}

	var rec []passenger.Record
	for lin := 2; ; lin++ {
		var row []string
		{
			row, err = rea.Read()
			if err == io.EOF {
				break
			} else if err != nil {
				return nil, tracer.Mask(err)
			}
		}

		var r passenger.Record
		{
			r, err = record(row, hea)
			if err != nil {
				return nil, tracer.Maskf(invalidRecordError, "line %d: %s", lin, err.Error())
			}
		}

		rec = append(rec, r)
	}

	return rec, nil
}

func ReadFile(pat string) ([]passenger.Record, error) {
	fil, err := os.Open(pat)
	if err != nil {
		return nil, tracer.Mask(err)
	}
	defer fil.Close()

	rec, err := Read(fil)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return rec, nil
}

func record(row []string, hea map[string]int) (passenger.Record, error) {
	var err error

	cel := func(c string) string {
		i, ok := hea[c]
		if !ok || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	var r passenger.Record
	{
		r.Name = cel(colNam)
	}

	{
		r.Id, err = strconv.Atoi(cel(colIde))
		if err != nil {
			return passenger.Record{}, tracer.Mask(err)
		}
	}

	{
		r.Sex, err = passenger.ParseSex(cel(colSex))
		if err != nil {
			return passenger.Record{}, tracer.Mask(err)
		}
	}

	{
		num, err := strconv.Atoi(cel(colCla))
		if err != nil {
			return passenger.Record{}, tracer.Mask(err)
		}

		r.Class, err = passenger.ParseClass(num)
		if err != nil {
			return passenger.Record{}, tracer.Mask(err)
		}
	}

	if s := cel(colAge); s != "" {
		age, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return passenger.Record{}, tracer.Mask(err)
		}

		r.Age = passenger.Float(age)
	}

	if s := cel(colSur); s != "" {
		sur, err := strconv.Atoi(s)
		if err != nil {
			return passenger.Record{}, tracer.Mask(err)
		}

		if sur != 0 && sur != 1 {
			return passenger.Record{}, tracer.Maskf(invalidRecordError, "survived must be 0 or 1, got %d", sur)
		}

		r.Survived = passenger.Int(sur)
	}

	return r, nil
}
