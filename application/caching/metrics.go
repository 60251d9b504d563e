package caching

import "context"

// MetricsRecorder receives cache outcome events. The caches hold a no-op
// recorder until one is attached, so instrumentation is optional.
type MetricsRecorder interface {
	RecordCacheHit(ctx context.Context, kind string)
	RecordCacheMiss(ctx context.Context, kind string)
	RecordCacheInvalidation(ctx context.Context, kind string)
}

type nopRecorder struct{}

func (nopRecorder) RecordCacheHit(context.Context, string)          {}
func (nopRecorder) RecordCacheMiss(context.Context, string)         {}
func (nopRecorder) RecordCacheInvalidation(context.Context, string) {}
