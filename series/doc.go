// Package series holds multi-channel sample buffers in transit between the
// archive layer and its callers.
//
// A Series is one named channel: a float buffer tagged with its start time
// and sample rate. A Dict is an insertion-ordered collection of channels;
// the insertion order defines the row order when the dict is stacked into a
// rectangular array. Stacking requires every channel to share the same
// start time, sample rate and length, which Validate enforces before any
// reshaping or writing proceeds.
package series
