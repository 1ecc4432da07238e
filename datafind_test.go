package datafind

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strainkit/datafind/archive"
	"github.com/strainkit/datafind/errs"
	"github.com/strainkit/datafind/remote"
	"github.com/strainkit/datafind/series"
)

func TestWriteTimeSeries_Filename(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteTimeSeries(dir, []float64{1000000000.0, 1000000001.0}, "A", archive.FormatHDF5,
		series.Column{Name: "chan.a", Values: []float64{0, 1}},
	)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "A-1000000000-2.hdf5"), path)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	times := []float64{1000000000, 1000000001, 1000000002, 1000000003}

	path, err := WriteTimeSeries(dir, times, "A", archive.FormatHDF5,
		series.Column{Name: "chan.a", Values: []float64{0, 1, 2, 3}},
		series.Column{Name: "chan.b", Values: []float64{10, 11, 12, 13}},
	)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "A-1000000000-4.hdf5"), path)

	d, err := ReadTimeSeries(dir, []string{"chan.a", "chan.b"}, archive.Between(1000000000, 1000000004))
	require.NoError(t, err)

	a, ok := d.Get("chan.a")
	require.True(t, ok)
	require.Equal(t, 1000000000.0, a.T0)
	require.Equal(t, 1.0, a.SampleRate)
	require.Equal(t, []float64{0, 1, 2, 3}, a.Values)

	b, ok := d.Get("chan.b")
	require.True(t, ok)
	require.Equal(t, []float64{10, 11, 12, 13}, b.Values)
}

func TestReadTimeSeries_SpansFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := WriteTimeSeries(dir, []float64{1000000000, 1000000001}, "A", archive.FormatHDF5,
		series.Column{Name: "chan.a", Values: []float64{0, 1}},
	)
	require.NoError(t, err)
	_, err = WriteTimeSeries(dir, []float64{1000000002, 1000000003}, "A", archive.FormatHDF5,
		series.Column{Name: "chan.a", Values: []float64{2, 3}},
	)
	require.NoError(t, err)

	d, err := ReadTimeSeries(dir, []string{"chan.a"}, archive.Between(1000000000, 1000000004))
	require.NoError(t, err)

	s, ok := d.Get("chan.a")
	require.True(t, ok)
	require.Equal(t, []float64{0, 1, 2, 3}, s.Values)
}

func TestReadTimeSeriesArray(t *testing.T) {
	dir := t.TempDir()

	_, err := WriteTimeSeries(dir, []float64{1000000000, 1000000001}, "A", archive.FormatHDF5,
		series.Column{Name: "chan.a", Values: []float64{0, 1}},
		series.Column{Name: "chan.b", Values: []float64{10, 11}},
	)
	require.NoError(t, err)

	data, times, err := ReadTimeSeriesArray(dir, []string{"chan.b", "chan.a"}, archive.Between(1000000000, 1000000002))
	require.NoError(t, err)

	// Rows follow the requested channel order.
	require.Equal(t, [][]float64{{10, 11}, {0, 1}}, data)
	require.Equal(t, []float64{1000000000, 1000000001}, times)
}

func TestReadTimeSeries_Failures(t *testing.T) {
	t.Run("no overlapping files", func(t *testing.T) {
		dir := t.TempDir()
		_, err := ReadTimeSeries(dir, []string{"chan.a"}, archive.Between(1000000000, 1000000004))
		require.ErrorIs(t, err, errs.ErrDataGap)
	})

	t.Run("mixed archive formats", func(t *testing.T) {
		dir := t.TempDir()
		// Format disagreement is rejected before any file is opened, so empty
		// placeholders are enough.
		for _, name := range []string{"A-1000000000-16.hdf5", "A-1000000016-16.gwf"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}

		_, err := ReadTimeSeries(dir, []string{"chan.a"}, archive.Between(1000000000, 1000000032))
		require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
	})

	t.Run("invalid candidate kind", func(t *testing.T) {
		_, err := ReadTimeSeries(42, []string{"chan.a"}, archive.AllTime())
		require.ErrorIs(t, err, errs.ErrInvalidInputKind)
	})

	t.Run("channels split across disjoint archives", func(t *testing.T) {
		dir := t.TempDir()
		// Each channel lives in its own archive with its own span, so both
		// decode cleanly but the resulting dict is not rectangular.
		_, err := WriteTimeSeries(dir, []float64{1000000000, 1000000001}, "A", archive.FormatHDF5,
			series.Column{Name: "chan.a", Values: []float64{0, 1}},
		)
		require.NoError(t, err)
		_, err = WriteTimeSeries(dir, []float64{1000000004, 1000000005, 1000000006}, "B", archive.FormatHDF5,
			series.Column{Name: "chan.b", Values: []float64{4, 5, 6}},
		)
		require.NoError(t, err)

		_, err = ReadTimeSeries(dir, []string{"chan.a", "chan.b"}, archive.AllTime())
		require.ErrorIs(t, err, errs.ErrChannelMismatch)
	})
}

func TestWriteTimeSeries_Failures(t *testing.T) {
	dir := t.TempDir()

	t.Run("unknown format", func(t *testing.T) {
		_, err := WriteTimeSeries(dir, []float64{1000000000, 1000000001}, "A", archive.FormatUnknown,
			series.Column{Name: "chan.a", Values: []float64{0, 1}},
		)
		require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
	})

	t.Run("short time axis", func(t *testing.T) {
		_, err := WriteTimeSeries(dir, []float64{1000000000}, "A", archive.FormatHDF5,
			series.Column{Name: "chan.a", Values: []float64{0}},
		)
		require.ErrorIs(t, err, errs.ErrShortTimeAxis)
	})

	t.Run("mismatched channel lengths", func(t *testing.T) {
		_, err := WriteTimeSeries(dir, []float64{1000000000, 1000000001}, "A", archive.FormatHDF5,
			series.Column{Name: "chan.a", Values: []float64{0, 1}},
			series.Column{Name: "chan.b", Values: []float64{0}},
		)
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})

	t.Run("no channels", func(t *testing.T) {
		_, err := WriteTimeSeries(dir, []float64{1000000000, 1000000001}, "A", archive.FormatHDF5)
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})
}

// stubProvider returns a fixed dict and records the requested range.
type stubProvider struct {
	dict *series.Dict
	t0   float64
	tf   float64
}

func (p *stubProvider) Fetch(_ context.Context, _ []string, t0, tf float64, _ ...remote.FetchOption) (*series.Dict, error) {
	p.t0, p.tf = t0, tf

	return p.dict, nil
}

func TestFetchTimeSeries(t *testing.T) {
	d := series.NewDict()
	d.Set(series.Series{Name: "chan.a", T0: 1000000000, SampleRate: 1, Values: []float64{0, 1}})
	p := &stubProvider{dict: d}

	got, err := FetchTimeSeries(context.Background(), p, []string{"chan.a"}, 1000000000, 1000000002)
	require.NoError(t, err)
	require.Same(t, d, got)
	require.Equal(t, 1000000000.0, p.t0)
	require.Equal(t, 1000000002.0, p.tf)

	data, times, err := FetchTimeSeriesArray(context.Background(), p, []string{"chan.a"}, 1000000000, 1000000002)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 1}}, data)
	require.Equal(t, []float64{1000000000, 1000000001}, times)
}

func TestFetchTimeSeries_ValidatesProviderResult(t *testing.T) {
	d := series.NewDict()
	d.Set(series.Series{Name: "chan.a", T0: 1000000000, SampleRate: 1, Values: []float64{0, 1}})
	d.Set(series.Series{Name: "chan.b", T0: 1000000004, SampleRate: 1, Values: []float64{4, 5, 6}})
	p := &stubProvider{dict: d}

	_, err := FetchTimeSeries(context.Background(), p, []string{"chan.a", "chan.b"}, 1000000000, 1000000008)
	require.ErrorIs(t, err, errs.ErrChannelMismatch)
}

func TestFilterWrappers(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"A-1000000000-16.hdf5", "A-1000000016-16.hdf5"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	paths, err := FilterAndSortFiles(dir, archive.Until(1000000016))
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "A-1000000000-16.hdf5")}, paths)

	recs, err := FilterFileRecords(dir, archive.AllTime())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, int64(1000000000), recs[0].Start)
}
