// Package datafind locates, reads and writes multi-channel time-series
// archive files that follow the naming convention
//
//	<prefix>-<start>-<length>.<suffix>
//
// where start is a 10-digit epoch timestamp, length a 1-4 digit duration in
// seconds, and suffix one of the supported archive formats ("hdf5", "gwf").
// A file named this way covers the half-open interval [start, start+length).
//
// The package answers three questions for a scientific-data pipeline:
// which on-disk archives overlap a requested time window, how to load the
// contained channels into aligned arrays, and how to persist newly computed
// channels back to disk under the same convention.
//
// # Basic Usage
//
// Selecting and reading archives overlapping a window:
//
//	paths, err := datafind.FilterAndSortFiles("/data/archives", archive.Between(t0, tf))
//
//	dict, err := datafind.ReadTimeSeries("/data/archives", channels, archive.Between(t0, tf))
//
//	data, times, err := datafind.ReadTimeSeriesArray("/data/archives", channels, archive.Between(t0, tf))
//
// Writing computed channels:
//
//	path, err := datafind.WriteTimeSeries(dir, times, "H1:STRAIN", archive.FormatHDF5,
//	    series.Column{Name: "H1:GDS-CALIB_STRAIN", Values: strain},
//	)
//
// Fetching from a network-backed archive store:
//
//	provider := remote.NewS3Provider(client, bucket, "archives/", archive.FormatHDF5)
//	dict, err := datafind.FetchTimeSeries(ctx, provider, channels, t0, tf,
//	    remote.WithConcurrency(4),
//	)
//
// This file provides convenient top-level wrappers around the archive,
// series, codec and remote packages; use those packages directly for
// fine-grained control.
package datafind

import (
	"context"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/strainkit/datafind/archive"
	"github.com/strainkit/datafind/codec"
	"github.com/strainkit/datafind/errs"
	"github.com/strainkit/datafind/remote"
	"github.com/strainkit/datafind/series"
)

// FilterAndSortFiles selects the candidate files whose covered interval
// overlaps the window and returns their paths sorted ascending by start
// time. Candidates may be a directory path, a single file path, or a
// homogeneous collection of paths; see archive.FilterAndSort.
func FilterAndSortFiles(fnames any, win archive.Window) ([]string, error) {
	return archive.FilterAndSort(fnames, win)
}

// FilterFileRecords is FilterAndSortFiles returning the parsed filename
// records instead of the raw paths.
func FilterFileRecords(fnames any, win archive.Window) ([]archive.Record, error) {
	return archive.FilterRecords(fnames, win)
}

// ReadTimeSeries reads the named channels from the archive files overlapping
// the window into a Dict.
//
// The selected files must all carry the same archive format. The codec
// enforces that every requested channel is present with no time gaps in the
// requested range; a bounded window must be fully covered by the selected
// files. The returned channels must additionally agree on start time, sample
// rate and length; channels split across disjoint archives fail with
// errs.ErrChannelMismatch.
func ReadTimeSeries(path any, channels []string, win archive.Window) (*series.Dict, error) {
	recs, err := archive.FilterRecords(path, win)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.Wrap(errs.ErrDataGap, "no archive files overlap the requested range")
	}

	f := recs[0].Format
	paths := make([]string, len(recs))
	for i, r := range recs {
		if r.Format != f {
			return nil, errors.Wrapf(errs.ErrUnsupportedFormat,
				"cannot read across mixed archive formats %q and %q", f, r.Format)
		}
		paths[i] = r.Path
	}

	c, err := codec.ForFormat(f)
	if err != nil {
		return nil, err
	}

	d, err := c.Decode(paths, channels, win)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// ReadTimeSeriesArray is ReadTimeSeries returning array form: one row per
// channel in the requested order, plus the shared time axis.
func ReadTimeSeriesArray(path any, channels []string, win archive.Window) (data [][]float64, times []float64, err error) {
	d, err := ReadTimeSeries(path, channels, win)
	if err != nil {
		return nil, nil, err
	}

	return d.ToArray()
}

// FetchTimeSeries fetches the named channels covering [t0, tf) from a
// network-backed provider. Concurrency and logging knobs pass through to
// the provider opaquely via opts. The fetched channels must agree on start
// time, sample rate and length, whatever the provider returned.
func FetchTimeSeries(ctx context.Context, p remote.Provider, channels []string, t0, tf float64, opts ...remote.FetchOption) (*series.Dict, error) {
	d, err := p.Fetch(ctx, channels, t0, tf, opts...)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// FetchTimeSeriesArray is FetchTimeSeries returning array form.
func FetchTimeSeriesArray(ctx context.Context, p remote.Provider, channels []string, t0, tf float64, opts ...remote.FetchOption) (data [][]float64, times []float64, err error) {
	d, err := FetchTimeSeries(ctx, p, channels, t0, tf, opts...)
	if err != nil {
		return nil, nil, err
	}

	return d.ToArray()
}

// WriteTimeSeries writes equal-length channel buffers sharing the time axis
// to one archive file in writeDir, named by the convention.
//
// The start time is times[0] and the encoded duration extrapolates one
// sample period past the last sample: times[last]-times[0] + times[1]-times[0].
// Both are rendered as integers in the filename when integral. The sample
// rate derives from the first two time samples.
//
// Returns the path of the written file.
func WriteTimeSeries(writeDir string, times []float64, prefix string, f archive.Format, columns ...series.Column) (string, error) {
	c, err := codec.ForFormat(f)
	if err != nil {
		return "", err
	}

	if len(times) < 2 {
		return "", errors.Wrapf(errs.ErrShortTimeAxis, "got %d time samples", len(times))
	}

	lengths := make(map[int]struct{})
	for _, col := range columns {
		lengths[len(col.Values)] = struct{}{}
	}
	if len(lengths) != 1 {
		return "", errors.Wrapf(errs.ErrLengthMismatch,
			"channels must all be of the same length, got %d channels with %d distinct lengths",
			len(columns), len(lengths))
	}

	dt := times[1] - times[0]
	t0 := times[0]
	length := times[len(times)-1] - times[0] + dt

	d := series.NewDict()
	for _, col := range columns {
		d.Set(series.Series{Name: col.Name, T0: t0, SampleRate: 1 / dt, Values: col.Values})
	}

	path := filepath.Join(writeDir, archive.FormatName(prefix, t0, length, f))
	if err := c.Encode(d, path); err != nil {
		return "", err
	}

	return path, nil
}
