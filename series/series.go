package series

// Series is a single named channel with a uniform sample period.
// It is owned by the caller for the duration of one read or write call;
// nothing in this module retains it.
type Series struct {
	Name string
	// T0 is the time of the first sample, in epoch seconds.
	T0 float64
	// SampleRate is the number of samples per second.
	SampleRate float64
	Values     []float64
}

// Len returns the number of samples.
func (s Series) Len() int {
	return len(s.Values)
}

// Dt returns the sample period in seconds.
func (s Series) Dt() float64 {
	return 1 / s.SampleRate
}

// EndTime returns the exclusive end of the covered span: the time one
// sample period past the last sample.
func (s Series) EndTime() float64 {
	return s.T0 + float64(len(s.Values))/s.SampleRate
}

// Times returns the per-sample time coordinates, T0 + i/SampleRate.
func (s Series) Times() []float64 {
	times := make([]float64, len(s.Values))
	for i := range times {
		times[i] = s.T0 + float64(i)/s.SampleRate
	}

	return times
}

// Column is a named buffer before a time axis is attached, used as write
// input. The writer derives the shared start time and sample rate from the
// caller's time axis and promotes each column to a Series.
type Column struct {
	Name   string
	Values []float64
}
