package model

// SafetyConfig holds the derived per-node safety envelope. It is computed
// from shard metadata plus global defaults, never read from the shard
// directly.
type SafetyConfig struct {
	// SafeThreshold is the safe concentration ceiling C_safe. Under the
	// default derivation rule it is min(CinBaseline, Cref), so it never
	// exceeds either input.
	SafeThreshold float64

	// Cref is the reference concentration used for normalization.
	Cref float64

	// LambdaCLF weights Lyapunov-type long-run viability violations.
	LambdaCLF float64

	// MuCBF weights barrier-type instantaneous safety violations.
	MuCBF float64
}

// NodeConfig pairs a decoded shard row with its derived safety envelope.
// It is immutable once bound; evaluation call sites own their copies and
// nothing in this module mutates one after construction.
type NodeConfig struct {
	Meta   NodeMeta
	Safety SafetyConfig
}
