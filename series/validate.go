package series

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/strainkit/datafind/errs"
)

// params is the consistency triple every channel in a Dict must share
// before the dict can be treated as a rectangular array.
type params struct {
	t0   float64
	rate float64
	n    int
}

func (p params) String() string {
	return fmt.Sprintf("(t0=%v, rate=%v, n=%d)", p.t0, p.rate, p.n)
}

// Validate verifies that every channel shares the same start time, sample
// rate and length. It fails with errs.ErrChannelMismatch, naming the number
// of distinct combinations found and their values, unless the dict is
// non-empty and exactly one combination exists. This is a hard precondition
// for ToArray and for writing.
func (d *Dict) Validate() error {
	seen := make(map[params]struct{})
	var distinct []params
	for s := range d.All() {
		p := params{t0: s.T0, rate: s.SampleRate, n: s.Len()}
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			distinct = append(distinct, p)
		}
	}

	if len(distinct) != 1 {
		combos := make([]string, len(distinct))
		for i, p := range distinct {
			combos[i] = p.String()
		}

		return errors.Wrapf(errs.ErrChannelMismatch,
			"channels must share the same t0, sample rate and length; found %d combinations: {%s}",
			len(distinct), strings.Join(combos, ", "))
	}

	return nil
}

// ToArray stacks the dict into a 2-D array with one row per channel in
// insertion order, plus the 1-D time axis taken from the first channel
// (valid because Validate guarantees all channels share the same axis).
// Rows alias the channel buffers; they are not copies.
func (d *Dict) ToArray() (data [][]float64, times []float64, err error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}

	data = make([][]float64, 0, d.Len())
	for s := range d.All() {
		if times == nil {
			times = s.Times()
		}
		data = append(data, s.Values)
	}

	return data, times, nil
}
