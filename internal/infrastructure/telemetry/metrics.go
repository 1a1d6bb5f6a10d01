package telemetry

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	logger "github.com/sirupsen/logrus"
)

// metricsMining holds the Prometheus collectors of a mining pass.
type metricsMining struct {
	once sync.Once

	filesProcessed  prometheus.Counter
	commitsWalked   prometheus.Counter
	tokensEmbedded  prometheus.Counter
	vectorsStored   prometheus.Counter
	failures        *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
	embedBatchCalls *prometheus.CounterVec
}

//nolint:gochecknoglobals // process-wide collectors
var miningMetrics metricsMining

func (m *metricsMining) init() {
	m.once.Do(func() {
		m.filesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "repominer_files_processed_total", Help: "Source files added to the registry",
		})
		m.commitsWalked = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "repominer_commits_walked_total", Help: "Commits visited by the history walk",
		})
		m.tokensEmbedded = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "repominer_tokens_embedded_total", Help: "Tokens sent to the embedding provider",
		})
		m.vectorsStored = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "repominer_vectors_stored_total", Help: "Vectors persisted to the vector store",
		})
		m.failures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "repominer_failures_total", Help: "Aborted passes by failing stage",
		}, []string{"stage"})
		m.embedBatchCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "repominer_embedding_requests_total", Help: "Requests issued to embedding providers",
		}, []string{"provider"})

		buckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
		m.stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "repominer_stage_seconds", Help: "Duration of each pipeline stage", Buckets: buckets,
		}, []string{"stage"})

		prometheus.MustRegister(
			m.filesProcessed, m.commitsWalked, m.tokensEmbedded, m.vectorsStored,
			m.failures, m.embedBatchCalls, m.stageDuration,
		)
	})
}

// RecordFiles adds n registry files.
func RecordFiles(n int) { miningMetrics.init(); miningMetrics.filesProcessed.Add(float64(n)) }

// RecordCommits adds n walked commits.
func RecordCommits(n int) { miningMetrics.init(); miningMetrics.commitsWalked.Add(float64(n)) }

// RecordTokens adds n embedded tokens.
func RecordTokens(n int) { miningMetrics.init(); miningMetrics.tokensEmbedded.Add(float64(n)) }

// RecordVectors adds n stored vectors.
func RecordVectors(n int) { miningMetrics.init(); miningMetrics.vectorsStored.Add(float64(n)) }

// RecordFailure counts an aborted pass under its stage label.
func RecordFailure(stage string) {
	miningMetrics.init()
	miningMetrics.failures.WithLabelValues(stage).Inc()
}

// RecordEmbeddingRequest counts one request sent to the named provider.
func RecordEmbeddingRequest(provider string) {
	miningMetrics.init()
	miningMetrics.embedBatchCalls.WithLabelValues(provider).Inc()
}

// ObserveStage records the time elapsed since start under the stage label.
func ObserveStage(stage string, start time.Time) {
	miningMetrics.init()
	miningMetrics.stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Serve exposes /metrics on addr in the background. An empty addr is a no-op.
func Serve(addr string) {
	if addr == "" {
		return
	}
	miningMetrics.init()
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		//nolint:exhaustruct // Minimal Server initialization with required fields only
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		logger.Infof("Serving metrics on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warnf("Metrics listener stopped: %v", err)
		}
	}()
}
