package api

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"onlinerf/internal/models"
)

type Metrics struct {
	Trained     prometheus.Counter
	Predictions *prometheus.CounterVec
	Resets      *prometheus.CounterVec
	PercentDone prometheus.Gauge
	OOBError    prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Trained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "onlinerf",
			Name:      "trained_items_total",
			Help:      "Items ingested by the forest.",
		}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onlinerf",
			Name:      "predictions_total",
			Help:      "Prediction requests by kind.",
		}, []string{"kind"}),
		Resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onlinerf",
			Name:      "tree_resets_total",
			Help:      "Drift resets by tree.",
		}, []string{"tree"}),
		PercentDone: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "onlinerf",
			Name:      "percent_done",
			Help:      "Share of trees that finished their last batch pass.",
		}),
		OOBError: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "onlinerf",
			Name:      "oob_error_ratio",
			Help:      "Out-of-bag error ratio pooled over all trees.",
		}),
	}
	reg.MustRegister(m.Trained, m.Predictions, m.Resets, m.PercentDone, m.OOBError)
	return m
}

// ObserveReset is meant for models.WithResetHook.
func (m *Metrics) ObserveReset(ev models.ResetEvent) {
	m.Resets.WithLabelValues(strconv.Itoa(ev.Tree)).Inc()
}

func (m *Metrics) observeStats(percentDone float64, stats []models.TreeStats) {
	m.PercentDone.Set(percentDone)
	errs, tested := 0, 0
	for _, s := range stats {
		errs += s.OOBErrors
		tested += s.OOBTested
	}
	if tested > 0 {
		m.OOBError.Set(float64(errs) / float64(tested))
	}
}
