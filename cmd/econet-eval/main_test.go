package main

import (
	"testing"
	"time"

	"github.com/hydrosignals/econet-linker/catalog"
	"github.com/hydrosignals/econet-linker/core"
	"github.com/hydrosignals/econet-linker/model"
)

func evalTestConfig(id model.NodeID) model.NodeConfig {
	return model.NodeConfig{
		Meta: model.NodeMeta{
			NodeID:         id,
			AssetType:      model.AssetReservoir,
			CinBaseline:    10,
			CinUnit:        model.NanogramsPerLitre,
			QAvg:           2,
			QUnit:          model.CubicMetresPerSecond,
			HorizonSeconds: 100,
			EcoImpactScore: 1,
			KarmaPerUnit:   1,
		},
		Safety: model.SafetyConfig{
			SafeThreshold: 5,
			Cref:          5,
			LambdaCLF:     10,
			MuCBF:         100,
		},
	}
}

func TestResolveDefaultsAppliesOnlySetFlags(t *testing.T) {
	base := catalog.Defaults{CrefDefault: 5, LambdaCLF: 10, MuCBF: 100}

	got := resolveDefaults(base, map[string]bool{"cref": true}, 2.5, 99, 99)
	if got.CrefDefault != 2.5 {
		t.Fatalf("CrefDefault = %v, want 2.5", got.CrefDefault)
	}
	if got.LambdaCLF != 10 || got.MuCBF != 100 {
		t.Fatalf("unset flags overrode defaults: %+v", got)
	}

	got = resolveDefaults(base, map[string]bool{"lambda": true, "mu": true}, 0, 20, 200)
	if got.CrefDefault != 5 || got.LambdaCLF != 20 || got.MuCBF != 200 {
		t.Fatalf("resolveDefaults = %+v, want {5 20 200}", got)
	}
}

func TestEvaluateFixedScoresEveryNode(t *testing.T) {
	configs := []model.NodeConfig{
		evalTestConfig("CAP-LP"),
		evalTestConfig("CRB-SALINITY"),
	}

	entries := evaluateFixed(configs, 5)
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Cout != 5 {
			t.Fatalf("Cout = %v, want 5", e.Cout)
		}
		// (10-5) * 2 * 100 with score 1 and coefficient 1.
		if e.Result.MassAvoided != 1000 {
			t.Fatalf("MassAvoided = %v, want 1000", e.Result.MassAvoided)
		}
		if e.Result.KarmaGain != 1000 {
			t.Fatalf("KarmaGain = %v, want 1000", e.Result.KarmaGain)
		}
	}
}

func TestEvaluateSeriesSkipsPairsWithoutSamples(t *testing.T) {
	configs := []model.NodeConfig{
		evalTestConfig("CAP-LP"),
		evalTestConfig("GILA-ESTRELLA"),
	}
	contaminants := []model.ContaminantConfig{
		{ID: "PFBS", Weight: 1, Cref: 10, Unit: model.NanogramsPerLitre},
		{ID: "Ecoli", Weight: 3, Cref: 235, Unit: model.MPNPer100mL},
	}
	byKey := map[string]model.TimeSeries{
		core.SeriesKey("CAP-LP", "PFBS"): {
			{T: 0, Cin: 10, Cout: 5, Q: 2},
			{T: 3600, Cin: 10, Cout: 5, Q: 2},
		},
	}

	entries := evaluateSeries(configs, contaminants, byKey)
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Node.Meta.NodeID != "CAP-LP" || e.Contaminant.ID != "PFBS" {
		t.Fatalf("entry pair = %s:%s, want CAP-LP:PFBS", e.Node.Meta.NodeID, e.Contaminant.ID)
	}
	// dC=5, Q=2, dt=3600: mass 36000, Kn = (5/10)*2*3600 = 3600.
	if e.Impact.MassLoad != 36000 {
		t.Fatalf("MassLoad = %v, want 36000", e.Impact.MassLoad)
	}
	if e.Impact.Kn != 3600 {
		t.Fatalf("Kn = %v, want 3600", e.Impact.Kn)
	}
}

func TestSeriesWindowCoversSampleBounds(t *testing.T) {
	series := model.TimeSeries{
		{T: 3600},
		{T: 0},
		{T: 7200},
	}

	start, end := seriesWindow(series)
	if want := time.Unix(0, 0).UTC(); !start.Equal(want) {
		t.Fatalf("start = %v, want %v", start, want)
	}
	if want := time.Unix(7200, 0).UTC(); !end.Equal(want) {
		t.Fatalf("end = %v, want %v", end, want)
	}
}
