package uksim

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes runtime numbers as a prometheus histogram and counters,
// supplementing the per-tick CountRecord stream with operational
// numbers (tick duration, exposures drawn, deaths applied) that are
// about the simulator's own performance rather than the simulated
// population. None of the teacher's dependencies cover this concern;
// prometheus/client_golang is pulled in fresh, the ecosystem-standard
// choice rather than a hand-rolled stdlib timer log.
type Metrics struct {
	tickDuration prometheus.Histogram
	exposures    prometheus.Counter
	deaths       prometheus.Counter
	registry     *prometheus.Registry
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "uksim",
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock duration of a single simulation tick.",
			Buckets:   prometheus.DefBuckets,
		}),
		exposures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uksim",
			Name:      "exposures_total",
			Help:      "Total number of successful exposure draws across the run.",
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uksim",
			Name:      "deaths_total",
			Help:      "Total number of citizens who transitioned to Dead.",
		}),
	}
	reg.MustRegister(m.tickDuration, m.exposures, m.deaths)
	return m
}

// Registry exposes the underlying prometheus registry so a driver can
// wire it to an HTTP handler if it wants live scraping.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) StartTick() time.Time { return time.Now() }

func (m *Metrics) EndTick(start time.Time) {
	m.tickDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveExposures(n int) {
	m.exposures.Add(float64(n))
}

func (m *Metrics) ObserveDeaths(n int) {
	m.deaths.Add(float64(n))
}
