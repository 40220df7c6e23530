package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ReplayCollector exposes replay-specific Prometheus metrics.
type ReplayCollector struct {
	gatherer prometheus.Gatherer

	TicksTotal     prometheus.Counter
	WindowsEmitted prometheus.Counter
	LastWindowKn   prometheus.Gauge
	LastWindowMass prometheus.Gauge
}

// NewReplayCollector registers replay metrics against the provided registerer.
func NewReplayCollector(reg prometheus.Registerer) (*ReplayCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "replay_ticks_total",
		Help: "Cumulative number of replay clock ticks processed.",
	})
	ticks, err := registerCounter(reg, ticks, "replay_ticks_total")
	if err != nil {
		return nil, err
	}

	windows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "replay_windows_emitted_total",
		Help: "Cumulative number of completed evaluation windows emitted during replay.",
	})
	windows, err = registerCounter(reg, windows, "replay_windows_emitted_total")
	if err != nil {
		return nil, err
	}

	lastKn := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "replay_last_window_kn",
		Help: "Kn of the most recently emitted replay window.",
	})
	lastKn, err = registerGauge(reg, lastKn, "replay_last_window_kn")
	if err != nil {
		return nil, err
	}

	lastMass := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "replay_last_window_mass_load",
		Help: "Integrated mass load of the most recently emitted replay window.",
	})
	lastMass, err = registerGauge(reg, lastMass, "replay_last_window_mass_load")
	if err != nil {
		return nil, err
	}

	return &ReplayCollector{
		gatherer:       gatherer,
		TicksTotal:     ticks,
		WindowsEmitted: windows,
		LastWindowKn:   lastKn,
		LastWindowMass: lastMass,
	}, nil
}

// RecordTick counts one replay clock tick.
func (c *ReplayCollector) RecordTick() {
	if c == nil || c.TicksTotal == nil {
		return
	}
	c.TicksTotal.Inc()
}

// RecordWindow counts one emitted window and updates the last-window gauges.
func (c *ReplayCollector) RecordWindow(kn, massLoad float64) {
	if c == nil {
		return
	}
	if c.WindowsEmitted != nil {
		c.WindowsEmitted.Inc()
	}
	if c.LastWindowKn != nil {
		c.LastWindowKn.Set(kn)
	}
	if c.LastWindowMass != nil {
		c.LastWindowMass.Set(massLoad)
	}
}
