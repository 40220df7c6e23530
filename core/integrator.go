package core

import "github.com/hydrosignals/econet-linker/model"

// IntegrateSeriesImpact discretely integrates a measurement series for one
// node and contaminant:
//
//	MassLoad = sum (Cin - Cout) * Q * dt
//	Kn       = w * sum ((Cin - Cout) / Cref) * Q * dt
//
// using left-rectangle steps between consecutive samples. Samples that do
// not advance time (dt <= 0) contribute nothing but still move the step
// origin. An empty series or a non-positive Cref yields a zero result.
func IntegrateSeriesImpact(nodeID model.NodeID, cfg model.ContaminantConfig, series model.TimeSeries) model.SeriesImpact {
	out := model.SeriesImpact{
		NodeID:        nodeID,
		ContaminantID: cfg.ID,
	}
	if len(series) == 0 || cfg.Cref <= 0 {
		return out
	}

	lastT := series[0].T
	for _, s := range series {
		dt := s.T - lastT
		if dt <= 0 {
			lastT = s.T
			continue
		}

		deltaC := s.Cin - s.Cout
		dM := deltaC * s.Q * dt
		out.MassLoad += dM
		out.Kn += cfg.Weight * (deltaC / cfg.Cref) * s.Q * dt

		lastT = s.T
	}
	return out
}
