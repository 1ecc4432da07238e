// Package codec maps archive format tags to payload codecs.
//
// The payload encoding itself is an external concern: this package defines
// the call contract the read/write pipeline depends on and registers one
// codec per supported filename suffix. The shipped implementation delegates
// the byte-level work to the mebo blob format; its internals are opaque
// here, the same way the discovery layer treats them.
package codec

import (
	"github.com/cockroachdb/errors"

	"github.com/strainkit/datafind/archive"
	"github.com/strainkit/datafind/errs"
	"github.com/strainkit/datafind/series"
)

// Codec encodes and decodes multi-channel archives.
//
// Decode enforces the collaborator contract: every requested channel must be
// present with no internal time gaps in the requested range, and a bounded
// request must be fully covered by the supplied archives; otherwise it fails
// with errs.ErrChannelMissing or errs.ErrDataGap. Failures are non-partial.
type Codec interface {
	// Decode reads the named channels from the archive files at paths,
	// trimmed to the window.
	Decode(paths []string, channels []string, win archive.Window) (*series.Dict, error)

	// DecodeBuffers is Decode over already-loaded archive bytes, for
	// collaborators that fetch archives from object storage.
	DecodeBuffers(bufs [][]byte, channels []string, win archive.Window) (*series.Dict, error)

	// Encode validates the dict and writes it to path as one archive.
	Encode(d *series.Dict, path string) error
}

// ForFormat returns the codec registered for the format.
// Unsupported formats fail with errs.ErrUnsupportedFormat before any
// encoding or decoding is attempted.
func ForFormat(f archive.Format) (Codec, error) {
	switch f {
	case archive.FormatHDF5, archive.FormatGWF:
		return blobCodec{}, nil
	default:
		return nil, errors.Wrapf(errs.ErrUnsupportedFormat, "no codec registered for %q", f)
	}
}
