package model

// ImpactResult is the outcome of evaluating one node at a proposed outlet
// concentration over its configured horizon.
type ImpactResult struct {
	// MassAvoided is M = max(C_in - C_out, 0) * Q * t, in the units of
	// the inputs (no conversion is applied). Non-negative by construction.
	MassAvoided float64

	// EcoImpactScore is the node's score clamped to [0,1].
	EcoImpactScore float64

	// KarmaGain = EcoImpactScore * MassAvoided * KarmaPerUnit. Its sign
	// follows KarmaPerUnit.
	KarmaGain float64
}

// SeriesImpact is the outcome of integrating a measurement time series for
// one node and contaminant.
type SeriesImpact struct {
	NodeID        NodeID
	ContaminantID string

	// Kn is the dimensionless node impact score
	// w * sum((Cin - Cout) / Cref * Q * dt) over the series.
	Kn float64

	// MassLoad is the integrated mass delta sum((Cin - Cout) * Q * dt).
	MassLoad float64
}
