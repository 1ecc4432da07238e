package codec

import (
	"fmt"
	"math"
	"os"
	"slices"
	"time"

	"github.com/arloliu/mebo/blob"
	"github.com/arloliu/mebo/format"
	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/strainkit/datafind/archive"
	"github.com/strainkit/datafind/errs"
	"github.com/strainkit/datafind/series"
)

// blobCodec stores each channel as one numeric metric in a mebo blob, with
// microsecond timestamps. Both supported suffixes map to it; the suffix is
// the discovery contract, the payload encoding is the library's.
//
// The sample period is stored at microsecond granularity. Rates whose
// period is not a whole number of microseconds (e.g. 3 Hz -> 333333us)
// decode with the correspondingly rounded rate; channels written together
// round the same way, but mixing them with channels from a source of
// different granularity can fail the exact-equality consistency check.
type blobCodec struct{}

// channelID hashes a channel name to the metric ID used inside the blob.
// Encode and decode must agree on this function; it is the same xxHash64
// the blob library derives from metric names.
func channelID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// micros converts epoch seconds to integer microseconds.
func micros(t float64) int64 {
	return int64(math.Round(t * 1e6))
}

func (blobCodec) Encode(d *series.Dict, path string) error {
	if err := d.Validate(); err != nil {
		return err
	}

	var startMicros, periodMicros int64
	for s := range d.All() {
		// Validate guarantees all channels share these.
		startMicros = micros(s.T0)
		periodMicros = int64(math.Round(1e6 / s.SampleRate))

		break
	}

	enc, err := blob.NewNumericEncoder(time.UnixMicro(startMicros).UTC(),
		blob.WithLittleEndian(),
		blob.WithTagsEnabled(false),
		blob.WithTimestampEncoding(format.TypeDelta),
		blob.WithValueEncoding(format.TypeGorilla),
	)
	if err != nil {
		return errors.Wrap(err, "create archive encoder")
	}

	for s := range d.All() {
		if err := enc.StartMetricID(channelID(s.Name), s.Len()); err != nil {
			return errors.Wrapf(err, "encode channel %q", s.Name)
		}
		for i, v := range s.Values {
			ts := startMicros + int64(i)*periodMicros
			if err := enc.AddDataPoint(ts, v, ""); err != nil {
				return errors.Wrapf(err, "encode channel %q", s.Name)
			}
		}
		if err := enc.EndMetric(); err != nil {
			return errors.Wrapf(err, "encode channel %q", s.Name)
		}
	}

	data, err := enc.Finish()
	if err != nil {
		return errors.Wrap(err, "finish archive encoding")
	}

	return writeAtomic(path, data)
}

// writeAtomic writes through a uniquely named temp file and renames it into
// place, so readers never observe a partially written archive.
func writeAtomic(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "write archive %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)

		return errors.Wrapf(err, "write archive %s", path)
	}

	return nil
}

func (c blobCodec) Decode(paths []string, channels []string, win archive.Window) (*series.Dict, error) {
	bufs := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "read archive %s", p)
		}
		bufs = append(bufs, data)
	}

	return c.DecodeBuffers(bufs, channels, win)
}

func (blobCodec) DecodeBuffers(bufs [][]byte, channels []string, win archive.Window) (*series.Dict, error) {
	if len(bufs) == 0 {
		return nil, errors.Wrap(errs.ErrChannelMissing, "no archive files to decode")
	}

	blobs := make([]blob.NumericBlob, 0, len(bufs))
	for i, data := range bufs {
		dec, err := blob.NewNumericDecoder(data)
		if err != nil {
			return nil, errors.Wrapf(err, "parse archive %d of %d", i+1, len(bufs))
		}
		nb, err := dec.Decode()
		if err != nil {
			return nil, errors.Wrapf(err, "decode archive %d of %d", i+1, len(bufs))
		}
		blobs = append(blobs, nb)
	}

	set, err := blob.NewNumericBlobSet(blobs)
	if err != nil {
		return nil, errors.Wrap(err, "assemble archive set")
	}

	d := series.NewDict()
	for _, name := range channels {
		s, err := decodeChannel(set, blobs, name, win)
		if err != nil {
			return nil, err
		}
		d.Set(s)
	}

	return d, nil
}

// sample is one decoded point before it is split into aligned buffers.
type sample struct {
	ts  int64
	val float64
}

// decodeChannel extracts one channel from the blob set, trims it to the
// window, and enforces the presence, gap and coverage guarantees.
func decodeChannel(set blob.NumericBlobSet, blobs []blob.NumericBlob, name string, win archive.Window) (series.Series, error) {
	id := channelID(name)

	present := false
	for _, b := range blobs {
		if b.HasMetricID(id) {
			present = true

			break
		}
	}
	if !present {
		return series.Series{}, errors.Wrapf(errs.ErrChannelMissing, "channel %q not found in archive set", name)
	}

	var pts []sample
	for _, dp := range set.All(id) {
		pts = append(pts, sample{ts: dp.Ts, val: dp.Val})
	}

	// Overlapping archives may repeat samples; order by time and keep the
	// first of any duplicate timestamp.
	slices.SortStableFunc(pts, func(a, b sample) int {
		switch {
		case a.ts < b.ts:
			return -1
		case a.ts > b.ts:
			return 1
		default:
			return 0
		}
	})
	pts = slices.CompactFunc(pts, func(a, b sample) bool { return a.ts == b.ts })

	if t0, ok := win.Start(); ok {
		lo := micros(t0)
		for len(pts) > 0 && pts[0].ts < lo {
			pts = pts[1:]
		}
	}
	if tf, ok := win.End(); ok {
		hi := micros(tf)
		for len(pts) > 0 && pts[len(pts)-1].ts >= hi {
			pts = pts[:len(pts)-1]
		}
	}

	if len(pts) == 0 {
		return series.Series{}, errors.Wrapf(errs.ErrChannelMissing, "channel %q has no samples in the requested range", name)
	}
	if len(pts) < 2 {
		return series.Series{}, errors.Wrapf(errs.ErrDataGap, "channel %q: cannot derive a sample period from a single sample", name)
	}

	period := pts[1].ts - pts[0].ts
	values := make([]float64, len(pts))
	values[0] = pts[0].val
	for i := 1; i < len(pts); i++ {
		if delta := pts[i].ts - pts[i-1].ts; delta != period {
			return series.Series{}, errors.Wrapf(errs.ErrDataGap,
				"channel %q: expected %dus spacing, got %dus at t=%vs",
				name, period, delta, float64(pts[i-1].ts)/1e6)
		}
		values[i] = pts[i].val
	}

	// A bounded request must be fully covered by the decoded span.
	if t0, ok := win.Start(); ok && micros(t0) < pts[0].ts {
		return series.Series{}, errors.Wrapf(errs.ErrDataGap,
			"channel %q: requested start %v precedes available data at %v",
			name, t0, float64(pts[0].ts)/1e6)
	}
	if tf, ok := win.End(); ok && micros(tf) > pts[len(pts)-1].ts+period {
		return series.Series{}, errors.Wrapf(errs.ErrDataGap,
			"channel %q: requested end %v exceeds available data at %v",
			name, tf, float64(pts[len(pts)-1].ts+period)/1e6)
	}

	return series.Series{
		Name:       name,
		T0:         float64(pts[0].ts) / 1e6,
		SampleRate: 1e6 / float64(period),
		Values:     values,
	}, nil
}
