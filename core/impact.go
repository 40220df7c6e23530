package core

import "github.com/hydrosignals/econet-linker/model"

// ComputeMassAvoided returns M = max(cin - cout, 0) * q * horizonSeconds.
// An outlet concentration at or above baseline yields zero: worsening the
// outlet earns no negative credit here and is not flagged as an error.
// Units are whatever the caller stored; no conversion is applied.
func ComputeMassAvoided(cin, cout, q, horizonSeconds float64) float64 {
	deltaC := cin - cout
	if deltaC < 0 {
		deltaC = 0
	}
	return deltaC * q * horizonSeconds
}

// EvaluateNode scores a proposed outlet concentration against a bound node
// configuration. It is a total pure function: the score is clamped to
// [0,1] rather than rejected, and the flow magnitude is used as stored
// even under an unrecognized flow unit (upstream is expected to have
// normalized nonstandard units).
func EvaluateNode(cfg model.NodeConfig, cout float64) model.ImpactResult {
	meta := cfg.Meta

	massAvoided := ComputeMassAvoided(meta.CinBaseline, cout, meta.QAvg, meta.HorizonSeconds)
	score := clamp01(meta.EcoImpactScore)

	return model.ImpactResult{
		MassAvoided:    massAvoided,
		EcoImpactScore: score,
		KarmaGain:      score * massAvoided * meta.KarmaPerUnit,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
