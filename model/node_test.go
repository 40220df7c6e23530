package model

import "testing"

func TestParseAssetType_Recognized(t *testing.T) {
	cases := map[string]AssetType{
		"Reservoir":          AssetReservoir,
		" Plant ":            AssetPlant,
		"RiverReach":         AssetRiverReach,
		"Basin":              AssetBasin,
		"WatershedCluster\t": AssetWatershedCluster,
	}
	for raw, want := range cases {
		got := ParseAssetType(raw)
		if got != want {
			t.Errorf("ParseAssetType(%q) = %q, want %q", raw, got, want)
		}
		if !got.Known() {
			t.Errorf("ParseAssetType(%q).Known() = false, want true", raw)
		}
	}
}

func TestParseAssetType_FallbackCarriesTrimmedText(t *testing.T) {
	got := ParseAssetType("  AquiferRecharge  ")
	if got != AssetType("AquiferRecharge") {
		t.Fatalf("ParseAssetType fallback = %q, want %q", got, "AquiferRecharge")
	}
	if got.Known() {
		t.Fatalf("unrecognized asset type reported as known")
	}
}

func TestParseAssetType_CaseSensitive(t *testing.T) {
	// "reservoir" must not be silently reclassified as AssetReservoir.
	got := ParseAssetType("reservoir")
	if got.Known() {
		t.Fatalf("ParseAssetType(%q) matched a recognized class", "reservoir")
	}
}

func TestParseUnits(t *testing.T) {
	if u := ParseConcentrationUnit(" ng/L "); u != NanogramsPerLitre || !u.Known() {
		t.Errorf("ParseConcentrationUnit(ng/L) = %q known=%v", u, u.Known())
	}
	if u := ParseConcentrationUnit("ug/L"); u.Known() {
		t.Errorf("unexpected recognized unit for ug/L")
	}
	if u := ParseFlowUnit("m3/s"); u != CubicMetresPerSecond {
		t.Errorf("ParseFlowUnit(m3/s) = %q", u)
	}
	if u := ParseFlowUnit("cfs"); u.Known() || u != FlowUnit("cfs") {
		t.Errorf("ParseFlowUnit(cfs) = %q known=%v, want fallback carrying original", u, u.Known())
	}
}
