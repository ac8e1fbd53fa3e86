package metrics

import (
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success Outcome = "success"
	Error   Outcome = "error"
)

func (O Outcome) String() string {
	return string(O)
}

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

// Collectors are created eagerly so that recording before Init is a no-op
// rather than a nil dereference. Init registers them.
var (
	once          sync.Once
	metricsRouter *chi.Mux

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"endpoint", "status"},
	)
	vaultOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vault_operation_duration_seconds",
			Help:    "Histogram of vault operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "outcome"},
	)
	vaultOperationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_operation_errors_total",
			Help: "Vault operations that failed, by error code.",
		},
		[]string{"operation", "error_code"},
	)
	withdrawalsSettled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vault_withdrawals_settled_total",
			Help: "Unstake requests paid out by drain.",
		},
	)
	poolAmount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vault_pool_amount_motes",
			Help: "Pool accumulators in motes.",
		},
		[]string{"field"},
	)
	unstakeQueueLength = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vault_unstake_queue_length",
			Help: "Number of unstake requests awaiting payout.",
		},
	)
	eventPublishFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_event_publish_failures_total",
			Help: "Events the broker did not accept and that were stored for replay.",
		},
		[]string{"event_type"},
	)
	clientRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"client", "endpoint", "status"},
	)
	keeperJobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_keeper_job_runs_total",
			Help: "Keeper job executions by outcome.",
		},
		[]string{"job", "outcome"},
	)
)

// Init starts the metrics server on addr and registers the collectors.
func Init(addr string) {
	once.Do(func() {
		initMetricsRouter(addr)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsAddr string) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	go func() {
		err := http.ListenAndServe(metricsAddr, metricsRouter)
		if err != nil {
			log.Fatal().Err(err).Msgf("error starting metrics server on %s", metricsAddr)
		}
	}()
}

func registerMetrics() {
	prometheus.MustRegister(
		httpRequestDurationHistogram,
		vaultOperationDuration,
		vaultOperationErrors,
		withdrawalsSettled,
		poolAmount,
		unstakeQueueLength,
		eventPublishFailures,
		clientRequestLatency,
		keeperJobRuns,
	)
}

// StartHttpRequestDurationTimer starts a timer to measure http request handling duration.
func StartHttpRequestDurationTimer(endpoint string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		httpRequestDurationHistogram.WithLabelValues(endpoint, fmt.Sprintf("%d", statusCode)).Observe(duration)
	}
}

// StartVaultOperationTimer starts a timer for a vault operation. The returned
// function records the outcome, errorCode is ignored on success.
func StartVaultOperationTimer(operation string) func(outcome Outcome, errorCode string) {
	startTime := time.Now()
	return func(outcome Outcome, errorCode string) {
		vaultOperationDuration.WithLabelValues(operation, outcome.String()).Observe(time.Since(startTime).Seconds())
		if outcome == Error {
			vaultOperationErrors.WithLabelValues(operation, errorCode).Inc()
		}
	}
}

func RecordWithdrawalsSettled(count uint64) {
	withdrawalsSettled.Add(float64(count))
}

// RecordPoolAmount exports an accumulator. Values past float64 precision are
// rounded.
func RecordPoolAmount(field string, amount *uint256.Int) {
	value, _ := new(big.Float).SetInt(amount.ToBig()).Float64()
	poolAmount.WithLabelValues(field).Set(value)
}

func RecordUnstakeQueueLength(length uint64) {
	unstakeQueueLength.Set(float64(length))
}

func RecordEventPublishFailure(eventType string) {
	eventPublishFailures.WithLabelValues(eventType).Inc()
}

// ObserveClientRequestLatency records the latency of a request to an
// external service.
func ObserveClientRequestLatency(client, endpoint string, status int, duration time.Duration) {
	clientRequestLatency.WithLabelValues(client, endpoint, fmt.Sprintf("%d", status)).Observe(duration.Seconds())
}

func RecordKeeperJobRun(job string, outcome Outcome) {
	keeperJobRuns.WithLabelValues(job, outcome.String()).Inc()
}
