package remote

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/cockroachdb/errors"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/strainkit/datafind/archive"
	"github.com/strainkit/datafind/codec"
	"github.com/strainkit/datafind/errs"
	"github.com/strainkit/datafind/series"
)

// ObjectStore is the narrow seam between the fetch logic and the object
// storage backend. Keys follow the archive naming convention in their
// terminal segment.
type ObjectStore interface {
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// s3Store adapts the AWS SDK client to ObjectStore.
type s3Store struct {
	client *s3.Client
	bucket string
}

func (s *s3Store) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "list s3://%s/%s", s.bucket, prefix)
		}
		for _, obj := range page.Contents {
			keys = append(keys, *obj.Key)
		}
	}

	return keys, nil
}

func (s *s3Store) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, errors.Wrapf(fs.ErrNotExist, "s3://%s/%s", s.bucket, key)
		}

		return nil, errors.Wrapf(err, "get s3://%s/%s", s.bucket, key)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read s3://%s/%s", s.bucket, key)
	}

	return data, nil
}

// S3Provider fetches convention-named archives from an object store.
// Archive objects are immutable once written, so fetched bytes are cached
// by key with a TTL; the cache never outlives the provider.
type S3Provider struct {
	store     ObjectStore
	keyPrefix string
	format    archive.Format
	cache     *gocache.Cache
}

// NewS3Provider returns a provider reading archives with the given format
// under keyPrefix in bucket.
func NewS3Provider(client *s3.Client, bucket, keyPrefix string, f archive.Format) *S3Provider {
	return &S3Provider{
		store:     &s3Store{client: client, bucket: bucket},
		keyPrefix: keyPrefix,
		format:    f,
		cache:     gocache.New(10*time.Minute, 30*time.Minute),
	}
}

// Fetch lists the keys under the provider's prefix, selects the archives
// overlapping [t0, tf), downloads them with bounded concurrency, and decodes
// the requested channels.
func (p *S3Provider) Fetch(ctx context.Context, channels []string, t0, tf float64, opts ...FetchOption) (*series.Dict, error) {
	cfg := newFetchConfig(opts...)

	keys, err := p.store.ListKeys(ctx, p.keyPrefix)
	if err != nil {
		return nil, err
	}

	recs, err := archive.FilterRecords(keys, archive.Between(t0, tf))
	if err != nil {
		return nil, err
	}
	recs = withFormat(recs, p.format)
	if len(recs) == 0 {
		return nil, errors.Wrapf(errs.ErrDataGap, "no %s archives overlap [%v, %v)", p.format, t0, tf)
	}

	bufs := make([][]byte, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for i, r := range recs {
		g.Go(func() error {
			if cached, ok := p.cache.Get(r.Path); ok {
				cfg.logger.Debug("cache hit: " + r.Path)
				bufs[i] = cached.([]byte)

				return nil
			}
			data, err := p.store.Get(gctx, r.Path)
			if err != nil {
				cfg.logger.Error("download failed: "+r.Path, err)

				return err
			}
			cfg.logger.Debug(fmt.Sprintf("downloaded %s (%d bytes)", r.Path, len(data)))
			p.cache.Set(r.Path, data, gocache.DefaultExpiration)
			bufs[i] = data

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c, err := codec.ForFormat(p.format)
	if err != nil {
		return nil, err
	}
	d, err := c.DecodeBuffers(bufs, channels, archive.Between(t0, tf))
	if err != nil {
		return nil, err
	}
	cfg.logger.Info(fmt.Sprintf("fetched %d channels from %d archives", d.Len(), len(recs)))

	return d, nil
}

// withFormat keeps only records carrying the provider's archive format.
func withFormat(recs []archive.Record, f archive.Format) []archive.Record {
	out := recs[:0]
	for _, r := range recs {
		if r.Format == f {
			out = append(out, r)
		}
	}

	return out
}
