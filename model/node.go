package model

import "strings"

// NodeID identifies a physical or virtual water-network asset
// (e.g. "CAP-LP", "GILA-ESTRELLA"). Uniqueness across a shard is not
// enforced here; the kb registry rejects duplicates on registration.
type NodeID string

// AssetType categorizes a water-network asset. The recognized taxonomy is
// the constant set below; any other label is carried verbatim so that
// unknown asset classes survive a round trip through the shard loader
// instead of being reclassified or rejected.
type AssetType string

const (
	AssetReservoir        AssetType = "Reservoir"
	AssetPlant            AssetType = "Plant"
	AssetRiverReach       AssetType = "RiverReach"
	AssetBasin            AssetType = "Basin"
	AssetWatershedCluster AssetType = "WatershedCluster"
)

// ParseAssetType resolves a raw shard token into an AssetType. Matching is
// exact and case-sensitive after trimming surrounding whitespace;
// unrecognized tokens become the fallback value carrying the trimmed text.
func ParseAssetType(s string) AssetType {
	return AssetType(strings.TrimSpace(s))
}

// Known reports whether the value is one of the recognized asset classes.
func (a AssetType) Known() bool {
	switch a {
	case AssetReservoir, AssetPlant, AssetRiverReach, AssetBasin, AssetWatershedCluster:
		return true
	}
	return false
}

// NodeMeta is one decoded shard row: identity, baseline environmental
// state, and the scoring coefficients for a single asset node.
type NodeMeta struct {
	NodeID    NodeID
	AssetType AssetType
	Waterbody string
	Region    string

	// Profile names the control/scoring profile, e.g. "PFAS_PFBS_LP_v1".
	Profile string

	// CinBaseline is the baseline inlet concentration C_in, in CinUnit.
	CinBaseline float64
	CinUnit     ConcentrationUnit

	// QAvg is the average discharge Q, in QUnit.
	QAvg  float64
	QUnit FlowUnit

	// HorizonSeconds is the eco-impact integration horizon [s].
	HorizonSeconds float64

	// EcoImpactScore is the normalized impact score; clamped to [0,1]
	// at evaluation time, stored here as decoded.
	EcoImpactScore float64

	// KarmaPerUnit is the credit coefficient per unit of canonical impact.
	KarmaPerUnit float64

	Notes string
}
