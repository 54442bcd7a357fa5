package services

import (
	"context"
	"fmt"
	"time"

	"github.com/IannnnnW/ambso-site/pkg/content"
	"github.com/IannnnnW/ambso-site/pkg/logger"
)

// Querier runs a content query. SanityClient is the production Querier.
type Querier interface {
	Query(ctx context.Context, query string, params map[string]any) (content.Value, error)
}

// Fetcher looks up content by query key and never fails: any error from the
// content source is logged and reported as content.Null, so a page falls
// back to its static content instead of breaking.
type Fetcher struct {
	querier Querier
	queries map[string]string
	timeout time.Duration
	log     *logger.Logger
}

// NewFetcher returns a Fetcher. A nil querier disables the CMS and every
// fetch yields Null.
func NewFetcher(q Querier, queries map[string]string, timeout time.Duration, log *logger.Logger) *Fetcher {
	if log == nil {
		log = logger.NewNop()
	}
	return &Fetcher{
		querier: q,
		queries: queries,
		timeout: timeout,
		log:     log.With("service", "ContentFetcher"),
	}
}

// Fetch runs the query registered under key exactly once.
func (f *Fetcher) Fetch(ctx context.Context, key string, params map[string]any) (v content.Value) {
	if f == nil || f.querier == nil {
		return content.Null()
	}
	query, ok := f.queries[key]
	if !ok {
		f.log.Warn("unknown content query", "key", key)
		return content.Null()
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			f.log.Error("content fetch panicked", "key", key, "panic", fmt.Sprint(r))
			v = content.Null()
		}
	}()

	v, err := f.querier.Query(ctx, query, params)
	if err != nil {
		f.log.Warn("content fetch failed",
			"key", key,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return content.Null()
	}
	f.log.Debug("content fetched",
		"key", key,
		"kind", v.Kind().String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return v
}
