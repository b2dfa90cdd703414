// Package metrics counts controller notifications with prometheus collectors.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/younwookim/spinner/internal/application/event"
)

const labelEvent = "event"

// Metrics holds the spinner collectors
type Metrics struct {
	events *prometheus.CounterVec
	spins  prometheus.Gauge
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spinner_events_total",
			Help: "Notifications published by the game controller",
		}, []string{labelEvent}),
		spins: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spinner_successful_spins",
			Help: "Successful spins since the last game over",
		}),
	}
	for _, c := range []prometheus.Collector{m.events, m.spins} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	// Pre-create every series so scrapes show zeros instead of gaps
	for _, t := range event.Types {
		m.events.WithLabelValues(string(t))
	}
	return m, nil
}

// Track counts every event published on d and samples spins after each one
func (m *Metrics) Track(d *event.Dispatcher, spins func() int) (unsubscribe func()) {
	return d.SubscribeAll(event.ListenerFunc(func(e event.Event) {
		m.events.WithLabelValues(string(e.Type)).Inc()
		m.spins.Set(float64(spins()))
	}))
}

// Events returns the counter for one notification type
func (m *Metrics) Events(t event.Type) prometheus.Counter {
	return m.events.WithLabelValues(string(t))
}

// SuccessfulSpins returns the spin gauge
func (m *Metrics) SuccessfulSpins() prometheus.Gauge {
	return m.spins
}
