package leadsearch

import (
	"context"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var searchTracer = otel.Tracer("clientsearch.internal.leadsearch")

// PipelineRecorder receives per-search pipeline measurements.
type PipelineRecorder interface {
	ObservePipeline(poolSize, returned int, seconds float64)
}

// SeedFunc returns the two PCG seed words for one request's random source.
type SeedFunc func() (uint64, uint64)

func randomSeed() (uint64, uint64) {
	return rand.Uint64(), rand.Uint64()
}

// Service runs generate, filter and rank for a single query.
type Service struct {
	generator *Generator
	seed      SeedFunc
	metrics   PipelineRecorder
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithSeed fixes how each request's random source is seeded.
func WithSeed(seed SeedFunc) ServiceOption {
	return func(s *Service) {
		if seed != nil {
			s.seed = seed
		}
	}
}

// WithPipelineMetrics records pool and result sizes for every search.
func WithPipelineMetrics(m PipelineRecorder) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService wires a generator into the pipeline.
func NewService(generator *Generator, opts ...ServiceOption) *Service {
	if generator == nil {
		panic("leadsearch: generator required")
	}
	s := &Service{
		generator: generator,
		seed:      randomSeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search generates a pool using q.MinScore as the score floor, then filters
// and ranks it. Each call gets its own random source, so concurrent calls
// share nothing.
func (s *Service) Search(ctx context.Context, q FilterQuery) Result {
	_, span := searchTracer.Start(ctx, "leadsearch.search", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(
		attribute.String("leadsearch.industry", q.Industry),
		attribute.Int("leadsearch.min_score", q.MinScore),
		attribute.Bool("leadsearch.has_query", q.Text != ""),
	)

	start := time.Now()
	rng := rand.New(rand.NewPCG(s.seed()))
	pool := s.generator.Generate(rng, q.MinScore)
	clients := Rank(Filter(pool, q))

	span.SetAttributes(
		attribute.Int("leadsearch.pool_size", len(pool)),
		attribute.Int("leadsearch.total", len(clients)),
	)
	if s.metrics != nil {
		s.metrics.ObservePipeline(len(pool), len(clients), time.Since(start).Seconds())
	}
	return Result{Clients: clients, PoolSize: len(pool)}
}
