// Package errs defines the sentinel errors shared across datafind packages.
//
// All errors raised by this module wrap one of these sentinels, so callers
// can classify failures with errors.Is regardless of the wrapping context:
//
//	_, err := datafind.ReadTimeSeries(dir, channels, win)
//	if errors.Is(err, errs.ErrChannelMissing) {
//	    // a requested channel is absent from the archive set
//	}
package errs

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidInputKind is returned when a candidate collection passed to
	// the interval selector is neither a path, a homogeneous path collection,
	// nor a homogeneous record collection.
	ErrInvalidInputKind = errors.New("invalid candidate input kind")

	// ErrChannelMismatch is returned when channels in a Dict do not share the
	// same start time, sample rate and length.
	ErrChannelMismatch = errors.New("channel parameter mismatch")

	// ErrLengthMismatch is returned when write buffers have unequal lengths.
	ErrLengthMismatch = errors.New("channel length mismatch")

	// ErrUnsupportedFormat is returned when no codec is registered for the
	// requested archive format.
	ErrUnsupportedFormat = errors.New("unsupported archive format")

	// ErrChannelMissing is returned when a requested channel is absent from
	// the decoded archive set, or has no samples in the requested range.
	ErrChannelMissing = errors.New("channel missing from archive")

	// ErrDataGap is returned when decoded samples are not uniformly spaced,
	// or when a bounded request is not fully covered by the archive set.
	ErrDataGap = errors.New("gap in archived data")

	// ErrShortTimeAxis is returned when a write request supplies fewer than
	// two time samples, leaving the sample period undefined.
	ErrShortTimeAxis = errors.New("time axis needs at least two samples")
)
