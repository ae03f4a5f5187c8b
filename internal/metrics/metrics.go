// Package metrics provides the centralized Prometheus metrics registry for
// the prediction pipeline.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GamesFeaturizedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharpline",
		Name:      "games_featurized_total",
		Help:      "Total number of games turned into feature vectors",
	}, []string{"sport", "market"})
	TrainingRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharpline",
		Name:      "training_runs_total",
		Help:      "Total number of training runs by outcome",
	}, []string{"sport", "outcome"})
	CalibrationSkipsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sharpline",
		Name:      "calibration_skips_total",
		Help:      "Total number of calibration fits skipped for thin samples",
	})
	BacktestWagersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharpline",
		Name:      "backtest_wagers_total",
		Help:      "Total number of simulated wagers placed during replays",
	}, []string{"sport", "market", "outcome"})
	MalformedOddsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sharpline",
		Name:      "malformed_odds_skipped_total",
		Help:      "Total number of games skipped for incomplete odds",
	})
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharpline",
		Name:      "predictions_total",
		Help:      "Total number of predictions served",
	}, []string{"sport", "market", "calibrated"})
)

// Gauge metrics
var (
	LastBacktestROI = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "sharpline",
		Name:      "last_backtest_roi",
		Help:      "ROI of the most recent backtest run",
	}, []string{"sport", "market"})
	LastBacktestECE = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "sharpline",
		Name:      "last_backtest_ece",
		Help:      "Expected calibration error of the most recent backtest run",
	}, []string{"sport", "market"})
	ProductionReady = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "sharpline",
		Name:      "production_ready",
		Help:      "Whether the latest backtest cleared the production gate (1 or 0)",
	}, []string{"sport", "market"})
)

// Histogram metrics
var (
	TrainingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sharpline",
		Name:      "training_duration_seconds",
		Help:      "Duration of full training runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sharpline",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest replays in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(GamesFeaturizedTotal)
		registry.MustRegister(TrainingRunsTotal)
		registry.MustRegister(CalibrationSkipsTotal)
		registry.MustRegister(BacktestWagersTotal)
		registry.MustRegister(MalformedOddsSkippedTotal)
		registry.MustRegister(PredictionsTotal)

		registry.MustRegister(LastBacktestROI)
		registry.MustRegister(LastBacktestECE)
		registry.MustRegister(ProductionReady)

		registry.MustRegister(TrainingDuration)
		registry.MustRegister(BacktestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// ObserveTrainingRun records the outcome and duration of one training run.
func ObserveTrainingRun(sport, outcome string, elapsed time.Duration) {
	TrainingRunsTotal.WithLabelValues(sport, outcome).Inc()
	TrainingDuration.Observe(elapsed.Seconds())
}

// ObserveBacktest records the headline numbers of one backtest run.
func ObserveBacktest(sport, market string, roi, ece float64, ready bool, elapsed time.Duration) {
	LastBacktestROI.WithLabelValues(sport, market).Set(roi)
	LastBacktestECE.WithLabelValues(sport, market).Set(ece)
	readyVal := 0.0
	if ready {
		readyVal = 1.0
	}
	ProductionReady.WithLabelValues(sport, market).Set(readyVal)
	BacktestDuration.Observe(elapsed.Seconds())
}
