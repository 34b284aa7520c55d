package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// SearchMetrics exposes counters/histograms for client search flows.
type SearchMetrics struct {
	requestsTotal   *prometheus.CounterVec
	poolSize        prometheus.Histogram
	resultsReturned prometheus.Histogram
	pipelineLatency prometheus.Histogram
}

func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	m := &SearchMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clientsearch",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total client search requests by method and status",
		}, []string{"method", "status"}),
		poolSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clientsearch",
			Subsystem: "pipeline",
			Name:      "pool_size",
			Help:      "Leads generated per search before filtering",
			Buckets:   prometheus.LinearBuckets(2, 2, 10),
		}),
		resultsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clientsearch",
			Subsystem: "pipeline",
			Name:      "results_returned",
			Help:      "Leads returned per search after filtering",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		}),
		pipelineLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clientsearch",
			Subsystem: "pipeline",
			Name:      "latency_seconds",
			Help:      "Latency of generate, filter and rank",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.poolSize, m.resultsReturned, m.pipelineLatency)
	return m
}

func (m *SearchMetrics) ObserveRequest(method string, status int) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *SearchMetrics) ObservePipeline(poolSize, returned int, seconds float64) {
	if m == nil {
		return
	}
	m.poolSize.Observe(float64(poolSize))
	m.resultsReturned.Observe(float64(returned))
	m.pipelineLatency.Observe(seconds)
}
