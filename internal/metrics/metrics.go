// Package metrics exposes Prometheus counters for fee calculation, ledger
// appends, settlement runs, imports and report rendering.
package metrics

import (
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "condo_"

	ResultSuccess = "success"
	ResultError   = "error"
	ResultBusy    = "busy"
)

var (
	registerOnce sync.Once

	feeCalculationTotal   *prometheus.CounterVec
	feeCalculationLatency *prometheus.HistogramVec

	ledgerAppendTotal *prometheus.CounterVec

	settlementRunTotal    *prometheus.CounterVec
	settlementRunLatency  prometheus.Histogram
	settlementUnitsTotal  *prometheus.CounterVec
	readingsImportedTotal prometheus.Counter

	reportRenderTotal   *prometheus.CounterVec
	reportRenderLatency *prometheus.HistogramVec

	httpRequestsTotal  *prometheus.CounterVec
	httpRequestLatency *prometheus.HistogramVec

	liveSubscribers   *prometheus.GaugeVec
	droppedSubscriber prometheus.Counter
)

// Init registers all collectors once. pool may be nil, in which case the
// connection pool gauges are skipped.
func Init(pool *pgxpool.Pool) {
	registerOnce.Do(func() {
		feeCalculationTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "fee_calculation_total",
				Help: "Total fee calculations by result",
			},
			[]string{"result"},
		)
		feeCalculationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "fee_calculation_latency_seconds",
				Help:    "Fee calculation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		ledgerAppendTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ledger_append_total",
				Help: "Total ledger appends by scope and result",
			},
			[]string{"scope", "result"},
		)

		settlementRunTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "settlement_run_total",
				Help: "Total settlement runs by result",
			},
			[]string{"result"},
		)
		settlementRunLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "settlement_run_latency_seconds",
				Help:    "Settlement run latency in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		)
		settlementUnitsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "settlement_units_total",
				Help: "Units processed by settlement runs by status",
			},
			[]string{"status"},
		)
		readingsImportedTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "readings_imported_total",
				Help: "Meter readings created from spreadsheet imports",
			},
		)

		reportRenderTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_render_total",
				Help: "Total rendered reports by format and result",
			},
			[]string{"format", "result"},
		)
		reportRenderLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_render_latency_seconds",
				Help:    "Report render latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		)

		httpRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpRequestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		liveSubscribers = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "live_subscribers",
				Help: "Connected websocket subscribers by audience",
			},
			[]string{"audience"},
		)
		droppedSubscriber = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "live_subscribers_dropped_total",
				Help: "Websocket subscribers disconnected for falling behind",
			},
		)

		prometheus.MustRegister(
			feeCalculationTotal,
			feeCalculationLatency,
			ledgerAppendTotal,
			settlementRunTotal,
			settlementRunLatency,
			settlementUnitsTotal,
			readingsImportedTotal,
			reportRenderTotal,
			reportRenderLatency,
			httpRequestsTotal,
			httpRequestLatency,
			liveSubscribers,
			droppedSubscriber,
		)

		if pool != nil {
			registerPoolMetrics(pool)
		}
	})
}

// ObserveFeeCalculation records one fee calculation
func ObserveFeeCalculation(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if feeCalculationTotal != nil {
		feeCalculationTotal.WithLabelValues(result).Inc()
	}
	if feeCalculationLatency != nil {
		feeCalculationLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncLedgerAppend counts one append attempt
func IncLedgerAppend(scope, result string) {
	if scope == "" {
		scope = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if ledgerAppendTotal != nil {
		ledgerAppendTotal.WithLabelValues(scope, result).Inc()
	}
}

// ObserveSettlementRun records a finished run and its per-unit outcome
func ObserveSettlementRun(result string, succeeded, failed int, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if settlementRunTotal != nil {
		settlementRunTotal.WithLabelValues(result).Inc()
	}
	if settlementRunLatency != nil {
		settlementRunLatency.Observe(duration.Seconds())
	}
	if settlementUnitsTotal != nil {
		settlementUnitsTotal.WithLabelValues("settled").Add(float64(succeeded))
		settlementUnitsTotal.WithLabelValues("failed").Add(float64(failed))
	}
}

// AddReadingsImported counts readings created by an import
func AddReadingsImported(count int) {
	if count <= 0 {
		return
	}
	if readingsImportedTotal != nil {
		readingsImportedTotal.Add(float64(count))
	}
}

// ObserveReportRender records report rendering latency and result
func ObserveReportRender(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if reportRenderTotal != nil {
		reportRenderTotal.WithLabelValues(format, result).Inc()
	}
	if reportRenderLatency != nil {
		reportRenderLatency.WithLabelValues(format).Observe(duration.Seconds())
	}
}

// SetLiveSubscribers publishes the current subscriber count for an audience
// ("admin" or "resident")
func SetLiveSubscribers(audience string, n int) {
	if liveSubscribers != nil {
		liveSubscribers.WithLabelValues(audience).Set(float64(n))
	}
}

// IncDroppedSubscriber counts a subscriber evicted for a full send buffer
func IncDroppedSubscriber() {
	if droppedSubscriber != nil {
		droppedSubscriber.Inc()
	}
}

// Result maps an error to a result label
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
