package core

import (
	"math"

	"github.com/hydrosignals/econet-linker/model"
)

// DeriveSafetyConfig computes a node's safety envelope from its metadata
// and global defaults. The default rule caps the safe threshold at
// min(baseline, reference); a fuller governance stack would fold in
// regulatory benchmarks (EPA, EU, WHO) and could only lower it further.
// This layer validates nothing: numeric-range policy belongs to callers.
func DeriveSafetyConfig(meta model.NodeMeta, crefDefault, lambdaCLF, muCBF float64) model.SafetyConfig {
	return model.SafetyConfig{
		SafeThreshold: math.Min(meta.CinBaseline, crefDefault),
		Cref:          crefDefault,
		LambdaCLF:     lambdaCLF,
		MuCBF:         muCBF,
	}
}

// BindNodeConfig pairs metadata with its derived safety envelope. It is a
// pure function and always succeeds.
func BindNodeConfig(meta model.NodeMeta, crefDefault, lambdaCLF, muCBF float64) model.NodeConfig {
	return model.NodeConfig{
		Meta:   meta,
		Safety: DeriveSafetyConfig(meta, crefDefault, lambdaCLF, muCBF),
	}
}
