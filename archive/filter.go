package archive

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/strainkit/datafind/errs"
)

// FilterAndSort selects the candidate files whose covered interval overlaps
// the window and returns their original paths sorted ascending by start time.
//
// Candidates may be:
//   - a string naming a directory: expanded to its immediate entries
//   - a string naming anything else: treated as a singleton
//   - a []string or []Record collection
//   - a []any collection holding all strings or all Records; a mixed
//     collection fails with errs.ErrInvalidInputKind
//
// Matching runs on each candidate's terminal filename; names that do not
// follow the convention are silently dropped. One deliberate asymmetry is
// preserved from the original behavior: a caller-supplied single
// non-directory path whose name does not match is returned unchanged as a
// singleton when the window is unbounded. Once a bound is supplied the file
// cannot be interval-tested and is excluded like any other non-match.
//
// An empty result is valid and means no candidate overlaps the window.
func FilterAndSort(fnames any, win Window) ([]string, error) {
	paths, single, err := expand(fnames)
	if err != nil {
		return nil, err
	}

	if single && len(paths) == 1 {
		if _, ok := ParseName(filepath.Base(paths[0])); !ok {
			if win.Unbounded() {
				return []string{paths[0]}, nil
			}

			return nil, nil
		}
	}

	recs := selectRecords(paths, win)
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Path
	}

	return out, nil
}

// FilterRecords is FilterAndSort returning the parsed records instead of the
// raw paths. Each record carries the matched Name and the original Path.
// Non-matching candidates never yield a record, including the single-path
// case that FilterAndSort passes through.
func FilterRecords(fnames any, win Window) ([]Record, error) {
	paths, _, err := expand(fnames)
	if err != nil {
		return nil, err
	}

	return selectRecords(paths, win), nil
}

// expand reduces the accepted candidate kinds to a flat path list.
// The second return value reports the caller supplied one direct path
// rather than a directory or collection.
func expand(fnames any) (paths []string, single bool, err error) {
	switch v := fnames.(type) {
	case string:
		info, statErr := os.Stat(v)
		if statErr == nil && info.IsDir() {
			entries, readErr := os.ReadDir(v)
			if readErr != nil {
				return nil, false, errors.Wrapf(readErr, "list directory %s", v)
			}
			paths = make([]string, 0, len(entries))
			for _, e := range entries {
				paths = append(paths, filepath.Join(v, e.Name()))
			}

			return paths, false, nil
		}

		return []string{v}, true, nil

	case []string:
		return v, false, nil

	case []Record:
		paths = make([]string, 0, len(v))
		for _, r := range v {
			paths = append(paths, r.pathOrName())
		}

		return paths, false, nil

	case []any:
		var haveString, haveRecord bool
		paths = make([]string, 0, len(v))
		kinds := make([]string, 0, len(v))
		for _, el := range v {
			kinds = append(kinds, fmt.Sprintf("%T", el))
			switch el := el.(type) {
			case string:
				haveString = true
				paths = append(paths, el)
			case Record:
				haveRecord = true
				paths = append(paths, el.pathOrName())
			default:
				return nil, false, errors.Wrapf(errs.ErrInvalidInputKind,
					"candidate collections must hold all strings or all records, found element of type %T", el)
			}
		}
		if haveString && haveRecord {
			return nil, false, errors.Wrapf(errs.ErrInvalidInputKind,
				"candidate collections must hold all strings or all records, found a mix: %s",
				strings.Join(kinds, ", "))
		}

		return paths, false, nil

	default:
		return nil, false, errors.Wrapf(errs.ErrInvalidInputKind,
			"candidates must be a path, []string, []Record or []any, got %T", fnames)
	}
}

// selectRecords matches, filters and sorts a flat path list.
func selectRecords(paths []string, win Window) []Record {
	recs := make([]Record, 0, len(paths))
	for _, p := range paths {
		r, ok := ParseName(filepath.Base(p))
		if !ok {
			// No timestamp to filter or sort by; dropping is not an error.
			continue
		}
		r.Path = p
		if !win.overlaps(float64(r.Start), float64(r.End())) {
			continue
		}
		recs = append(recs, r)
	}

	slices.SortStableFunc(recs, func(a, b Record) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	return recs
}

func (r Record) pathOrName() string {
	if r.Path != "" {
		return r.Path
	}

	return r.Name
}
