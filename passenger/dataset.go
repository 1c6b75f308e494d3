package passenger

import (
	"sort"

	"github.com/xh3b4sd/tracer"
	"golang.org/x/exp/rand"
)

// Dataset is an ordered and immutable collection of records. All accessors
// hand out copies so that no caller can change what another caller sees.
type Dataset struct {
	rec []Record
}

func New(rec []Record) Dataset {
	cop := make([]Record, len(rec))
	copy(cop, rec)

	return Dataset{rec: cop}
}

func (d Dataset) At(i int) Record {
	return d.rec[i]
}

func (d Dataset) Len() int {
	return len(d.rec)
}

func (d Dataset) Records() []Record {
	cop := make([]Record, len(d.rec))
	copy(cop, d.rec)

	return cop
}

// Split partitions the dataset into a training and a validation set. The
// validation set is a random sample without replacement of size
// floor(Len*rat), drawn from a source seeded with see. Both partitions keep
// the relative order of the original dataset, so the same ratio and seed
// always yield the same partitions.
func (d Dataset) Split(rat float64, see int64) (Dataset, Dataset, error) {
	if rat < 0 || rat >= 1 {
		return Dataset{}, Dataset{}, tracer.Maskf(invalidRatioError, "%f must be within [0, 1)", rat)
	}

	var val []int
	{
		per := rand.New(rand.NewSource(uint64(see))).Perm(len(d.rec))
		val = per[:int(float64(len(d.rec))*rat)]
		sort.Ints(val)
	}

	var tra []Record
	var ver []Record
	{
		j := 0
		for i, r := range d.rec {
			if j < len(val) && val[j] == i {
				ver = append(ver, r)
				j++
			} else {
				tra = append(tra, r)
			}
		}
	}

	return Dataset{rec: tra}, Dataset{rec: ver}, nil
}
