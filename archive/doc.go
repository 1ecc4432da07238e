// Package archive implements the on-disk naming contract for time-series
// archive files and the interval-based selection of archives overlapping a
// query window.
//
// Archive files follow the fixed convention:
//
//	<prefix>-<start>-<length>.<suffix>
//
// where prefix is an alphanumeric/underscore/colon/dash token, start is a
// 10-digit epoch timestamp, length is a 1-4 digit duration in seconds with
// no leading zero, and suffix is one of the supported format tags
// ("hdf5" or "gwf"). A file named this way covers the half-open interval
// [start, start+length).
//
// The selector keeps any file whose covered interval intersects the query
// window (overlap semantics, not containment) and returns survivors sorted
// ascending by start time. Filenames that do not match the convention are
// silently excluded; they carry no timestamp to filter or sort by.
package archive
