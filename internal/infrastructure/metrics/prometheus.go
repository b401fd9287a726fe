// Package metrics expone las métricas del cálculo de alertas en formato Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stock-alerts/internal/application/alerts"
)

const namespace = "stockalerts"

var _ alerts.MetricsRecorder = (*Recorder)(nil)

// Recorder registra cada cálculo de alertas en un registry propio.
type Recorder struct {
	registry     *prometheus.Registry
	computations *prometheus.CounterVec
	emitted      prometheus.Counter
	duration     prometheus.Histogram
}

// NewRecorder crea el registry con las métricas del servicio más las de proceso y runtime de Go.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Cálculos de alertas de bajo stock por resultado.",
		}, []string{"outcome"}),
		emitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_emitted_total",
			Help:      "Alertas de bajo stock devueltas.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "computation_duration_seconds",
			Help:      "Duración del cálculo de alertas, incluida la lectura del snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	r.registry.MustRegister(
		r.computations,
		r.emitted,
		r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveComputation implementa alerts.MetricsRecorder.
func (r *Recorder) ObserveComputation(outcome string, n int, elapsed time.Duration) {
	r.computations.WithLabelValues(outcome).Inc()
	if n > 0 {
		r.emitted.Add(float64(n))
	}
	r.duration.Observe(elapsed.Seconds())
}

// Handler sirve el registry en formato de exposición de Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry devuelve el registry subyacente.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
