// Package remote fetches channel data from network-backed archive stores.
//
// The core pipeline treats the network source as an opaque collaborator: a
// Provider returns named channels for a time range, and any concurrency,
// caching or retry policy lives behind that interface. The shipped provider
// reads convention-named archives from an S3 bucket.
package remote

import (
	"context"

	"github.com/strainkit/datafind/series"
)

// Provider fetches the named channels covering [t0, tf).
// Implementations fail when a channel is unavailable or the range is not
// fully covered; partial results are never returned.
type Provider interface {
	Fetch(ctx context.Context, channels []string, t0, tf float64, opts ...FetchOption) (*series.Dict, error)
}

// Logger receives progress messages from a fetch. Implementations are
// supplied by the consumer; by default messages go nowhere.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Error(msg string, err error)
}

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Debug(msg string)            {}
func (NopLogger) Info(msg string)             {}
func (NopLogger) Error(msg string, err error) {}

type fetchConfig struct {
	concurrency int
	logger      Logger
}

// FetchOption configures a single fetch call.
type FetchOption func(*fetchConfig)

// WithConcurrency sets the number of concurrent archive downloads.
// The default is 1. The knob is interpreted by the provider only; the core
// pipeline passes it through opaquely.
func WithConcurrency(n int) FetchOption {
	return func(c *fetchConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger routes fetch progress to l.
func WithLogger(l Logger) FetchOption {
	return func(c *fetchConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func newFetchConfig(opts ...FetchOption) fetchConfig {
	cfg := fetchConfig{concurrency: 1, logger: NopLogger{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
