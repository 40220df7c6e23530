// core/replay.go
package core

import "github.com/hydrosignals/econet-linker/model"

// WindowImpact is one completed evaluation window emitted during replay.
// Start and End are sample-time bounds in seconds since the epoch; the
// window covers [Start, End).
type WindowImpact struct {
	Start  float64
	End    float64
	Impact model.SeriesImpact
}

// Replayer walks one node:contaminant time series in sample-time order and
// emits fixed-width windowed integration results as replay time advances.
// It holds a cursor into the series and never revisits consumed samples,
// so a driver (e.g. a timectrl listener) can call Advance on every tick.
type Replayer struct {
	nodeID model.NodeID
	cfg    model.ContaminantConfig
	series model.TimeSeries
	window float64

	cursor   int
	winStart float64
	started  bool
}

// NewReplayer constructs a replayer over series with the given evaluation
// window width in seconds. The series is expected in ascending sample
// order, as produced by LoadTimeSeries for well-formed telemetry.
func NewReplayer(nodeID model.NodeID, cfg model.ContaminantConfig, series model.TimeSeries, windowSeconds float64) *Replayer {
	return &Replayer{
		nodeID: nodeID,
		cfg:    cfg,
		series: series,
		window: windowSeconds,
	}
}

// Advance consumes every window ending at or before now (sample time) and
// returns their impacts in order. Windows with no samples integrate to
// zero but are still emitted, keeping the output cadence regular.
func (r *Replayer) Advance(now float64) []WindowImpact {
	if len(r.series) == 0 || r.window <= 0 {
		return nil
	}
	if !r.started {
		r.winStart = r.series[0].T
		r.started = true
	}

	var out []WindowImpact
	for now >= r.winStart+r.window {
		winEnd := r.winStart + r.window

		hi := r.cursor
		for hi < len(r.series) && r.series[hi].T < winEnd {
			hi++
		}

		out = append(out, WindowImpact{
			Start:  r.winStart,
			End:    winEnd,
			Impact: IntegrateSeriesImpact(r.nodeID, r.cfg, r.series[r.cursor:hi]),
		})

		r.cursor = hi
		r.winStart = winEnd
	}
	return out
}

// Flush integrates any unconsumed tail of the series as a final partial
// window. It reports false when nothing remains.
func (r *Replayer) Flush() (WindowImpact, bool) {
	if !r.started || r.cursor >= len(r.series) {
		return WindowImpact{}, false
	}
	tail := r.series[r.cursor:]
	w := WindowImpact{
		Start:  r.winStart,
		End:    tail[len(tail)-1].T,
		Impact: IntegrateSeriesImpact(r.nodeID, r.cfg, tail),
	}
	r.cursor = len(r.series)
	return w, true
}
