package model

import "strings"

// ConcentrationUnit tags a concentration value. Units are metadata only:
// nothing in this module converts between them, so callers comparing
// values across units must normalize first.
type ConcentrationUnit string

const (
	NanogramsPerLitre  ConcentrationUnit = "ng/L"
	MilligramsPerLitre ConcentrationUnit = "mg/L"
	MPNPer100mL        ConcentrationUnit = "MPN/100mL"
)

// ParseConcentrationUnit resolves a raw unit token. Trim, then exact
// case-sensitive match; anything else is carried through unchanged.
func ParseConcentrationUnit(s string) ConcentrationUnit {
	return ConcentrationUnit(strings.TrimSpace(s))
}

// Known reports whether the unit is one of the recognized concentration units.
func (u ConcentrationUnit) Known() bool {
	switch u {
	case NanogramsPerLitre, MilligramsPerLitre, MPNPer100mL:
		return true
	}
	return false
}

// FlowUnit tags a discharge value. Like ConcentrationUnit it is carried as
// metadata only; the evaluator uses the stored magnitude regardless of tag.
type FlowUnit string

const CubicMetresPerSecond FlowUnit = "m3/s"

// ParseFlowUnit resolves a raw flow-unit token, trimming surrounding
// whitespace and carrying unrecognized tokens through unchanged.
func ParseFlowUnit(s string) FlowUnit {
	return FlowUnit(strings.TrimSpace(s))
}

// Known reports whether the unit is the recognized flow unit.
func (u FlowUnit) Known() bool { return u == CubicMetresPerSecond }
