package archive

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/strainkit/datafind/errs"
)

// Format identifies the payload format of an archive file, encoded as the
// filename suffix.
type Format uint8

const (
	// FormatUnknown is the zero value; it never matches a registered codec.
	FormatUnknown Format = iota
	// FormatHDF5 represents the "hdf5" suffix.
	FormatHDF5
	// FormatGWF represents the "gwf" suffix.
	FormatGWF
)

// String returns the filename suffix for the format.
func (f Format) String() string {
	switch f {
	case FormatHDF5:
		return "hdf5"
	case FormatGWF:
		return "gwf"
	default:
		return "unknown"
	}
}

// ParseFormat maps a filename suffix to a Format.
// Returns ErrUnsupportedFormat for anything other than the supported tags.
func ParseFormat(suffix string) (Format, error) {
	switch suffix {
	case "hdf5":
		return FormatHDF5, nil
	case "gwf":
		return FormatGWF, nil
	default:
		return FormatUnknown, errors.Wrapf(errs.ErrUnsupportedFormat, "suffix %q", suffix)
	}
}

// nameRe is the one compiled instance of the filename pattern; discovery and
// filtering depend on it bit-exactly. Start is fixed-width 10 digits, so its
// lexicographic order equals its numeric order.
var nameRe = regexp.MustCompile(
	`^(?P<prefix>[a-zA-Z0-9_:-]+)-(?P<t0>[0-9]{10})-(?P<length>[1-9][0-9]{0,3})\.(?P<suffix>hdf5|gwf)$`,
)

// Record is the parsed form of an archive filename. It is derived solely
// from a name matching the convention and covers [Start, Start+Length).
type Record struct {
	Prefix string
	Start  int64
	Length int64
	Format Format

	// Name is the terminal filename the record was parsed from.
	Name string
	// Path is the original candidate the name was reduced from. Selection
	// results return it untouched; it may be a filesystem path or an object
	// key. Empty when the record was constructed rather than matched.
	Path string
}

// ParseName matches a terminal filename against the naming convention.
// The second return value reports whether the name matched; a non-match is
// not an error condition.
func ParseName(name string) (Record, bool) {
	m := nameRe.FindStringSubmatch(name)
	if m == nil {
		return Record{}, false
	}

	// The pattern constrains all three numeric groups, so parsing cannot fail.
	start, _ := strconv.ParseInt(m[2], 10, 64)
	length, _ := strconv.ParseInt(m[3], 10, 64)
	format, _ := ParseFormat(m[4])

	return Record{
		Prefix: m[1],
		Start:  start,
		Length: length,
		Format: format,
		Name:   name,
	}, true
}

// End returns the exclusive end of the covered interval, Start+Length.
func (r Record) End() int64 {
	return r.Start + r.Length
}

// Filename formats the record back into its on-disk name.
// For any matched name, ParseName then Filename yields the name unchanged.
func (r Record) Filename() string {
	return fmt.Sprintf("%s-%d-%d.%s", r.Prefix, r.Start, r.Length, r.Format)
}

// FormatName builds a write-side archive filename from a float start time
// and duration, rendering integral values without a fractional part.
func FormatName(prefix string, t0, length float64, f Format) string {
	return fmt.Sprintf("%s-%s-%s.%s", prefix, intify(t0), intify(length), f)
}

// intify renders x as an integer when it is integral.
func intify(x float64) string {
	if x == math.Trunc(x) && !math.IsInf(x, 0) {
		return strconv.FormatInt(int64(x), 10)
	}

	return strconv.FormatFloat(x, 'f', -1, 64)
}
