package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes cache and request metrics to CloudWatch. A nil client
// turns every method into a no-op so callers never need to guard.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordCacheHit records a cache hit for the given key kind
func (m *Metrics) RecordCacheHit(ctx context.Context, kind string) {
	m.putCount(ctx, "CacheHits", kind)
}

// RecordCacheMiss records a cache miss for the given key kind
func (m *Metrics) RecordCacheMiss(ctx context.Context, kind string) {
	m.putCount(ctx, "CacheMisses", kind)
}

// RecordCacheInvalidation records an invalidation for the given key kind
func (m *Metrics) RecordCacheInvalidation(ctx context.Context, kind string) {
	m.putCount(ctx, "CacheInvalidations", kind)
}

// RecordRequestLatency records HTTP request latency for a route
func (m *Metrics) RecordRequestLatency(ctx context.Context, route string, latency time.Duration) {
	if m.client == nil {
		return
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("RequestLatency"),
				Dimensions: []types.Dimension{
					{
						Name:  aws.String("Route"),
						Value: aws.String(route),
					},
				},
				Value:     aws.Float64(float64(latency.Milliseconds())),
				Unit:      types.StandardUnitMilliseconds,
				Timestamp: aws.Time(time.Now()),
			},
		},
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Warn("failed to publish latency metric", zap.Error(err))
	}
}

func (m *Metrics) putCount(ctx context.Context, metricName, kind string) {
	if m.client == nil {
		return
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Dimensions: []types.Dimension{
					{
						Name:  aws.String("Kind"),
						Value: aws.String(kind),
					},
				},
				Value:     aws.Float64(1),
				Unit:      types.StandardUnitCount,
				Timestamp: aws.Time(time.Now()),
			},
		},
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Warn("failed to publish cache metric",
			zap.String("metric", metricName),
			zap.Error(err),
		)
	}
}
