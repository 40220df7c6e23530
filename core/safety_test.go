package core

import (
	"testing"

	"github.com/hydrosignals/econet-linker/model"
)

func TestDeriveSafetyConfig_ThresholdIsMin(t *testing.T) {
	for _, tc := range []struct{ baseline, cref, want float64 }{
		{10, 5, 5},
		{3, 5, 3},
		{5, 5, 5},
		{0, 4, 0},
	} {
		meta := model.NodeMeta{CinBaseline: tc.baseline}
		sc := DeriveSafetyConfig(meta, tc.cref, 10, 100)
		if sc.SafeThreshold != tc.want {
			t.Errorf("baseline %v cref %v: SafeThreshold = %v, want %v",
				tc.baseline, tc.cref, sc.SafeThreshold, tc.want)
		}
	}
}

func TestDeriveSafetyConfig_PackagesWeights(t *testing.T) {
	sc := DeriveSafetyConfig(model.NodeMeta{CinBaseline: 1}, 4.0, 10.0, 100.0)
	if sc.Cref != 4.0 || sc.LambdaCLF != 10.0 || sc.MuCBF != 100.0 {
		t.Fatalf("SafetyConfig = %+v", sc)
	}
}

func TestBindNodeConfig_PairsMetaUnchanged(t *testing.T) {
	meta := model.NodeMeta{
		NodeID:      "CAP-LP",
		CinBaseline: 3.9,
		Notes:       "untouched",
	}
	cfg := BindNodeConfig(meta, 5.0, 10.0, 100.0)
	if cfg.Meta != meta {
		t.Fatalf("bound meta differs from input: %+v", cfg.Meta)
	}
	if cfg.Safety.SafeThreshold != 3.9 {
		t.Fatalf("SafeThreshold = %v, want 3.9", cfg.Safety.SafeThreshold)
	}
}
